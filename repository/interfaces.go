package repository

import (
	"github.com/ymlibrary/ymlibrarybackend/database"
	"github.com/ymlibrary/ymlibrarybackend/models"
)

// UserRepository defines the methods for user data operations. There is no
// delete: accounts are deactivated by flipping the deleted flag out-of-band.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetActiveByNickname(nickname string) (*models.User, error)
	ListActive() ([]models.User, error)
	CountAll() (int64, error)
}

// StorageCatalogRepository defines the methods for storage catalog data
// operations. Delete is a physical delete.
type StorageCatalogRepository interface {
	Create(catalog *models.StorageCatalog) error
	GetByID(id uint) (*models.StorageCatalog, error)
	List(skip, limit int, storage, category string, year int) ([]models.StorageCatalog, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// BackupStatusRepository defines the methods for backup status data
// operations. Every read, update, and soft-delete path applies the
// not-deleted predicate, so a soft-deleted id behaves exactly like a missing
// one.
type BackupStatusRepository interface {
	Create(status *models.BackupStatus) error
	GetByID(id uint) (*models.BackupStatus, error)
	List(skip, limit int, eventName string) ([]database.BackupListEntry, error)
	Update(id uint, updates map[string]interface{}) error
	SoftDelete(id, deletedBy uint) error
	SyncProducers(backupStatusID uint, userIDs []uint, createdBy uint) error
	GetProducerNames(backupStatusID uint) ([]string, error)
}
