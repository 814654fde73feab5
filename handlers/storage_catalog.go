package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ymlibrary/ymlibrarybackend/models"
	"github.com/ymlibrary/ymlibrarybackend/repository"
	"gorm.io/gorm"
)

const defaultCatalogCategory = "ACTIVITY"

type StorageCatalogHandler struct {
	Repo repository.StorageCatalogRepository
}

type storageCatalogPayload struct {
	Storage      *string `json:"storage"`
	Category     *string `json:"category"`
	Year         *int    `json:"year"`
	Month        *int    `json:"month"`
	ActivityName *string `json:"activity_name"`
	Description  *string `json:"description"`
}

func validateCatalogYear(year *int) error {
	if year != nil && (*year < 1900 || *year > 2100) {
		return fmt.Errorf("year must be between 1900 and 2100")
	}
	return nil
}

func validateCatalogMonth(month *int) error {
	if month != nil && (*month < 1 || *month > 12) {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (sh *StorageCatalogHandler) CreateStorageCatalog(w http.ResponseWriter, r *http.Request) {
	var payload storageCatalogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_payload", "Invalid request body: "+err.Error())
		return
	}

	if payload.Storage == nil || strings.TrimSpace(*payload.Storage) == "" {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Missing required field: storage")
		return
	}
	if payload.ActivityName == nil || strings.TrimSpace(*payload.ActivityName) == "" {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Missing required field: activity_name")
		return
	}

	category := defaultCatalogCategory
	if payload.Category != nil && *payload.Category != "" {
		category = *payload.Category
	}

	if utf8.RuneCountInString(*payload.Storage) > 20 ||
		utf8.RuneCountInString(category) > 20 ||
		utf8.RuneCountInString(*payload.ActivityName) > 250 ||
		(payload.Description != nil && utf8.RuneCountInString(*payload.Description) > 500) {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "One or more fields exceed their maximum length")
		return
	}
	if err := validateCatalogYear(payload.Year); err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	if err := validateCatalogMonth(payload.Month); err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	catalog := models.StorageCatalog{
		Storage:      *payload.Storage,
		Category:     category,
		Year:         payload.Year,
		Month:        payload.Month,
		ActivityName: *payload.ActivityName,
		Description:  payload.Description,
	}
	if err := sh.Repo.Create(&catalog); err != nil {
		log.Printf("Error creating storage catalog: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create storage catalog")
		return
	}

	writeJSON(w, http.StatusCreated, catalog)
}

func (sh *StorageCatalogHandler) ListStorageCatalogs(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	q := r.URL.Query()

	year := 0
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Invalid year filter: "+v)
			return
		}
		year = n
	}

	catalogs, err := sh.Repo.List(skip, limit, q.Get("storage"), q.Get("category"), year)
	if err != nil {
		log.Printf("Error listing storage catalogs: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve storage catalogs")
		return
	}
	if catalogs == nil {
		catalogs = []models.StorageCatalog{}
	}
	writeJSON(w, http.StatusOK, catalogs)
}

func (sh *StorageCatalogHandler) GetStorageCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "catalog_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid catalog ID format")
		return
	}

	catalog, err := sh.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("storage catalog with ID %d not found", id))
		} else {
			log.Printf("Error getting storage catalog %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve storage catalog")
		}
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (sh *StorageCatalogHandler) UpdateStorageCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "catalog_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid catalog ID format")
		return
	}

	present, payload, errResp := decodeCatalogUpdate(r)
	if errResp != "" {
		WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_payload", errResp)
		return
	}

	if _, err := sh.Repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("storage catalog with ID %d not found", id))
		} else {
			log.Printf("Error fetching storage catalog %d before update: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve storage catalog")
		}
		return
	}

	updates := map[string]interface{}{}
	if _, ok := present["storage"]; ok {
		if payload.Storage == nil || strings.TrimSpace(*payload.Storage) == "" || utf8.RuneCountInString(*payload.Storage) > 20 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "storage must be a non-empty string of at most 20 characters")
			return
		}
		updates["storage"] = *payload.Storage
	}
	if _, ok := present["category"]; ok {
		if payload.Category == nil || *payload.Category == "" || utf8.RuneCountInString(*payload.Category) > 20 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "category must be a non-empty string of at most 20 characters")
			return
		}
		updates["category"] = *payload.Category
	}
	if _, ok := present["year"]; ok {
		if err := validateCatalogYear(payload.Year); err != nil {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
		updates["year"] = payload.Year
	}
	if _, ok := present["month"]; ok {
		if err := validateCatalogMonth(payload.Month); err != nil {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
		updates["month"] = payload.Month
	}
	if _, ok := present["activity_name"]; ok {
		if payload.ActivityName == nil || strings.TrimSpace(*payload.ActivityName) == "" || utf8.RuneCountInString(*payload.ActivityName) > 250 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "activity_name must be a non-empty string of at most 250 characters")
			return
		}
		updates["activity_name"] = *payload.ActivityName
	}
	if _, ok := present["description"]; ok {
		if payload.Description != nil && utf8.RuneCountInString(*payload.Description) > 500 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "description must be at most 500 characters")
			return
		}
		updates["description"] = payload.Description
	}

	if err := sh.Repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("storage catalog with ID %d not found", id))
		} else {
			log.Printf("Error updating storage catalog %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update storage catalog")
		}
		return
	}

	updated, err := sh.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching updated storage catalog %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve updated storage catalog")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (sh *StorageCatalogHandler) DeleteStorageCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "catalog_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid catalog ID format")
		return
	}

	if err := sh.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", fmt.Sprintf("storage catalog with ID %d not found", id))
		} else {
			log.Printf("Error deleting storage catalog %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to delete storage catalog")
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// decodeCatalogUpdate decodes the body twice: once into a raw key map so an
// omitted field can be told apart from one explicitly set to null, and once
// into the typed payload.
func decodeCatalogUpdate(r *http.Request) (map[string]json.RawMessage, storageCatalogPayload, string) {
	var payload storageCatalogPayload
	present := map[string]json.RawMessage{}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&present); err != nil {
		return nil, payload, "Invalid request body: " + err.Error()
	}
	for key, raw := range present {
		if err := unmarshalCatalogField(&payload, key, raw); err != nil {
			return nil, payload, "Invalid value for field " + key + ": " + err.Error()
		}
	}
	return present, payload, ""
}

func unmarshalCatalogField(payload *storageCatalogPayload, key string, raw json.RawMessage) error {
	switch key {
	case "storage":
		return json.Unmarshal(raw, &payload.Storage)
	case "category":
		return json.Unmarshal(raw, &payload.Category)
	case "year":
		return json.Unmarshal(raw, &payload.Year)
	case "month":
		return json.Unmarshal(raw, &payload.Month)
	case "activity_name":
		return json.Unmarshal(raw, &payload.ActivityName)
	case "description":
		return json.Unmarshal(raw, &payload.Description)
	}
	// unknown keys are ignored, matching the lenient decode on create
	return nil
}
