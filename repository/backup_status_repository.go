package repository

import (
	"database/sql"
	"fmt"

	"github.com/ymlibrary/ymlibrarybackend/database"
	"github.com/ymlibrary/ymlibrarybackend/models"
	"gorm.io/gorm"
)

// GormBackupStatusRepository persists backup statuses through GORM and runs
// the enriched list queries through the underlying sql.DB (same pool, same
// session semantics).
type GormBackupStatusRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewGormBackupStatusRepository(db *gorm.DB) (BackupStatusRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return &GormBackupStatusRepository{db: db, sqlDB: sqlDB}, nil
}

func (r *GormBackupStatusRepository) Create(status *models.BackupStatus) error {
	return r.db.Create(status).Error
}

func (r *GormBackupStatusRepository) GetByID(id uint) (*models.BackupStatus, error) {
	var status models.BackupStatus
	if err := r.db.Where("deleted = ?", false).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormBackupStatusRepository) List(skip, limit int, eventName string) ([]database.BackupListEntry, error) {
	entries, err := database.ListBackupStatuses(r.sqlDB, skip, limit, eventName)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		producers, err := database.ListProducerNames(r.sqlDB, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Producers = producers
	}
	return entries, nil
}

// Update applies the given column values to a non-deleted row. Values may be
// nil to clear nullable columns; keys are column names. Only columns present
// in the map are touched.
func (r *GormBackupStatusRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.Model(&models.BackupStatus{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips the deleted flag and records the acting user. Producer
// mappings are left untouched.
func (r *GormBackupStatusRepository) SoftDelete(id, deletedBy uint) error {
	result := r.db.Model(&models.BackupStatus{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]interface{}{"deleted": true, "deleted_by": deletedBy})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SyncProducers replaces the full producer set of a backup item: every
// existing mapping row is deleted, then one row per entry of userIDs is
// inserted with createdBy as creator. Duplicates in userIDs produce duplicate
// rows. The delete and the inserts commit together, but separately from any
// preceding row write; a failure between the two commits leaves the row
// updated with a stale producer set.
func (r *GormBackupStatusRepository) SyncProducers(backupStatusID uint, userIDs []uint, createdBy uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("backup_status_id = ?", backupStatusID).
			Delete(&models.UserBackupMapping{}).Error; err != nil {
			return err
		}
		for _, userID := range userIDs {
			mapping := models.UserBackupMapping{
				UserID:         userID,
				BackupStatusID: backupStatusID,
				CreatedBy:      createdBy,
			}
			if err := tx.Create(&mapping).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormBackupStatusRepository) GetProducerNames(backupStatusID uint) ([]string, error) {
	return database.ListProducerNames(r.sqlDB, backupStatusID)
}
