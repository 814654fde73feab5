package repository

import (
	"github.com/ymlibrary/ymlibrarybackend/models"
	"gorm.io/gorm"
)

type GormStorageCatalogRepository struct {
	db *gorm.DB
}

func NewGormStorageCatalogRepository(db *gorm.DB) StorageCatalogRepository {
	return &GormStorageCatalogRepository{db: db}
}

func (r *GormStorageCatalogRepository) Create(catalog *models.StorageCatalog) error {
	return r.db.Create(catalog).Error
}

func (r *GormStorageCatalogRepository) GetByID(id uint) (*models.StorageCatalog, error) {
	var catalog models.StorageCatalog
	if err := r.db.First(&catalog, id).Error; err != nil {
		return nil, err
	}
	return &catalog, nil
}

// List applies exact-match filters for storage, category, and year; a zero
// value disables the corresponding filter. Rows are ordered by id so paging
// is repeatable.
func (r *GormStorageCatalogRepository) List(skip, limit int, storage, category string, year int) ([]models.StorageCatalog, error) {
	query := r.db.Model(&models.StorageCatalog{})

	if storage != "" {
		query = query.Where("storage = ?", storage)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if year != 0 {
		query = query.Where("year = ?", year)
	}

	var catalogs []models.StorageCatalog
	err := query.Order("id ASC").Offset(skip).Limit(limit).Find(&catalogs).Error
	return catalogs, err
}

// Update applies the given column values to an existing row. Values may be
// nil to clear nullable columns. Keys are column names.
func (r *GormStorageCatalogRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.Model(&models.StorageCatalog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the row permanently; catalog entries carry no soft-delete
// flag.
func (r *GormStorageCatalogRepository) Delete(id uint) error {
	result := r.db.Delete(&models.StorageCatalog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
