package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCatalog(t *testing.T, router http.Handler, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/storage-catalogs", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeMap(t, rec)
}

func TestCreateStorageCatalog_DefaultsCategory(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createCatalog(t, router, map[string]interface{}{
		"storage":       "NAS1",
		"activity_name": "Spring Camp",
	})
	assert.Equal(t, "ACTIVITY", created["category"])

	id := uint(created["id"].(float64))
	rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/storage-catalogs/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeMap(t, rec)
	assert.Equal(t, "NAS1", got["storage"])
	assert.Equal(t, "ACTIVITY", got["category"])
	assert.Nil(t, got["year"])
	assert.Nil(t, got["description"])
}

func TestCreateStorageCatalog_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/storage-catalogs",
		map[string]interface{}{"activity_name": "Spring Camp"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/storage-catalogs",
		map[string]interface{}{"storage": "NAS1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/storage-catalogs",
		map[string]interface{}{"storage": "NAS1", "activity_name": "Trip", "month": 13})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetStorageCatalog_NotFoundAndBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/storage-catalogs/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/storage-catalogs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStorageCatalog_PartialAndExplicitNull(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createCatalog(t, router, map[string]interface{}{
		"storage":       "NAS1",
		"activity_name": "Trip",
		"year":          2024,
		"description":   "raw footage",
	})
	id := uint(created["id"].(float64))

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/storage-catalogs/%d", id),
		map[string]interface{}{"storage": "NAS2", "description": nil})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeMap(t, rec)
	assert.Equal(t, "NAS2", got["storage"])
	assert.Nil(t, got["description"])
	// untouched fields survive the partial update
	assert.Equal(t, float64(2024), got["year"])
	assert.Equal(t, "Trip", got["activity_name"])
}

func TestUpdateStorageCatalog_RejectsNullOnRequiredField(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createCatalog(t, router, map[string]interface{}{
		"storage":       "NAS1",
		"activity_name": "Trip",
	})
	id := uint(created["id"].(float64))

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/storage-catalogs/%d", id),
		map[string]interface{}{"storage": nil})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/v1/storage-catalogs/9999",
		map[string]interface{}{"storage": "NAS2"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStorageCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createCatalog(t, router, map[string]interface{}{
		"storage":       "NAS1",
		"activity_name": "Trip",
	})
	id := uint(created["id"].(float64))

	rec := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/storage-catalogs/%d", id), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/storage-catalogs/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/storage-catalogs/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListStorageCatalogs_Filters(t *testing.T) {
	router, _ := newTestRouter(t)

	createCatalog(t, router, map[string]interface{}{
		"storage": "NAS1", "activity_name": "Spring Camp", "year": 2023,
	})
	createCatalog(t, router, map[string]interface{}{
		"storage": "NAS1", "activity_name": "Winter Camp", "category": "ARCHIVE", "year": 2024,
	})
	createCatalog(t, router, map[string]interface{}{
		"storage": "CLOUD", "activity_name": "Summer Trip", "year": 2024,
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/storage-catalogs?storage=NAS1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 2)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/storage-catalogs?category=ACTIVITY&year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeList(t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "Summer Trip", entries[0]["activity_name"])

	rec = doRequest(t, router, http.MethodGet, "/api/v1/storage-catalogs?year=banana", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
