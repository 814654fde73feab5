package repository

import (
	"github.com/ymlibrary/ymlibrarybackend/models"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Where("deleted = ?", false).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByNickname resolves the first non-deleted user with the given
// nickname. Nicknames are not unique; ties resolve to the lowest id, and
// callers must not rely on any stronger guarantee.
func (r *GormUserRepository) GetActiveByNickname(nickname string) (*models.User, error) {
	var user models.User
	err := r.db.Where("nickname = ? AND deleted = ?", nickname, false).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) ListActive() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("deleted = ?", false).Find(&users).Error
	return users, err
}

// CountAll counts every user row, deleted ones included. Used to decide
// whether the first-run seed account is needed.
func (r *GormUserRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
