package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ymlibrary/ymlibrarybackend/database"
	"github.com/ymlibrary/ymlibrarybackend/models"
	"github.com/ymlibrary/ymlibrarybackend/repository"
)

// newTestRouter wires the full route tree against a private in-memory
// database, the same shape main constructs at startup.
func newTestRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrateModels(db))

	userRepo := repository.NewGormUserRepository(db)
	catalogRepo := repository.NewGormStorageCatalogRepository(db)
	backupRepo, err := repository.NewGormBackupStatusRepository(db)
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r,
		NewAuthHandler(userRepo),
		&StorageCatalogHandler{Repo: catalogRepo},
		&BackupStatusHandler{Repo: backupRepo},
		"test")
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, name, nickname, password string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Nickname: nickname, Password: password}
	require.NoError(t, db.Create(user).Error)
	return user
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
