package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ymlibrary/ymlibrarybackend/models"
)

func deactivateUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Update("deleted", true).Error)
}

func TestGetActiveByNickname_FirstNonDeletedMatch(t *testing.T) {
	db := setupDB(t)
	repo := NewGormUserRepository(db)

	first := seedUser(t, db, "kim", "shared")
	second := seedUser(t, db, "lee", "shared")

	// duplicates resolve to the lowest id
	got, err := repo.GetActiveByNickname("shared")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	deactivateUser(t, db, first.ID)

	got, err = repo.GetActiveByNickname("shared")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	deactivateUser(t, db, second.ID)

	_, err = repo.GetActiveByNickname("shared")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListActive_ExcludesDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewGormUserRepository(db)

	active := seedUser(t, db, "kim", "kim")
	gone := seedUser(t, db, "lee", "lee")
	deactivateUser(t, db, gone.ID)

	users, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, active.ID, users[0].ID)
}

func TestCountAll_IncludesDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewGormUserRepository(db)

	seedUser(t, db, "kim", "kim")
	gone := seedUser(t, db, "lee", "lee")
	deactivateUser(t, db, gone.ID)

	count, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
