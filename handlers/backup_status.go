package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ymlibrary/ymlibrarybackend/models"
	"github.com/ymlibrary/ymlibrarybackend/repository"
	"gorm.io/gorm"
)

type BackupStatusHandler struct {
	Repo repository.BackupStatusRepository
}

type backupStatusCreatePayload struct {
	EventName           *string    `json:"event_name"`
	DisplayedDate       *time.Time `json:"displayed_date"`
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	Cam                 *bool      `json:"cam"`
	CamChecker          *uint      `json:"cam_checker"`
	Master              *bool      `json:"master"`
	MasterChecker       *uint      `json:"master_checker"`
	Clean               *bool      `json:"clean"`
	CleanChecker        *uint      `json:"clean_checker"`
	FinalProduct        *bool      `json:"final_product"`
	FinalProductChecker *uint      `json:"final_product_checker"`
	UserIDs             []uint     `json:"user_ids"`
	CreatedBy           *uint      `json:"created_by"`
}

// backupStatusUpdatePayload shares the create field set but swaps created_by
// for updated_by, which is only required when user_ids is supplied.
type backupStatusUpdatePayload struct {
	EventName           *string    `json:"event_name"`
	DisplayedDate       *time.Time `json:"displayed_date"`
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	Cam                 *bool      `json:"cam"`
	CamChecker          *uint      `json:"cam_checker"`
	Master              *bool      `json:"master"`
	MasterChecker       *uint      `json:"master_checker"`
	Clean               *bool      `json:"clean"`
	CleanChecker        *uint      `json:"clean_checker"`
	FinalProduct        *bool      `json:"final_product"`
	FinalProductChecker *uint      `json:"final_product_checker"`
	UserIDs             []uint     `json:"user_ids"`
	UpdatedBy           *uint      `json:"updated_by"`
}

func backupNotFoundDetail(id uint) string {
	return fmt.Sprintf("backup status with ID %d not found", id)
}

func (bh *BackupStatusHandler) ListBackupStatuses(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	eventName := r.URL.Query().Get("event_name")

	entries, err := bh.Repo.List(skip, limit, eventName)
	if err != nil {
		log.Printf("Error listing backup statuses: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve backup statuses")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (bh *BackupStatusHandler) GetBackupStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "backup_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid backup status ID format")
		return
	}

	status, err := bh.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", backupNotFoundDetail(id))
		} else {
			log.Printf("Error getting backup status %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve backup status")
		}
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (bh *BackupStatusHandler) CreateBackupStatus(w http.ResponseWriter, r *http.Request) {
	var payload backupStatusCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_payload", "Invalid request body: "+err.Error())
		return
	}

	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Missing required field: name")
		return
	}
	if payload.CreatedBy == nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Missing required field: created_by")
		return
	}
	if utf8.RuneCountInString(*payload.Name) > 100 ||
		(payload.EventName != nil && utf8.RuneCountInString(*payload.EventName) > 100) ||
		(payload.Description != nil && utf8.RuneCountInString(*payload.Description) > 1000) {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "One or more fields exceed their maximum length")
		return
	}

	// user_ids and created_by feed the producer mapping only; they are not
	// columns of the row itself
	status := models.BackupStatus{
		EventName:           payload.EventName,
		DisplayedDate:       payload.DisplayedDate,
		Name:                *payload.Name,
		Description:         payload.Description,
		Cam:                 payload.Cam,
		CamChecker:          payload.CamChecker,
		Master:              payload.Master,
		MasterChecker:       payload.MasterChecker,
		Clean:               payload.Clean,
		CleanChecker:        payload.CleanChecker,
		FinalProduct:        payload.FinalProduct,
		FinalProductChecker: payload.FinalProductChecker,
	}
	if err := bh.Repo.Create(&status); err != nil {
		log.Printf("Error creating backup status: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create backup status")
		return
	}

	// separate commit from the row insert; see SyncProducers
	if len(payload.UserIDs) > 0 {
		if err := bh.Repo.SyncProducers(status.ID, payload.UserIDs, *payload.CreatedBy); err != nil {
			log.Printf("Error syncing producers for new backup status %d: %v", status.ID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Backup status created but producer mapping failed")
			return
		}
	}

	writeJSON(w, http.StatusCreated, status)
}

func (bh *BackupStatusHandler) UpdateBackupStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "backup_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid backup status ID format")
		return
	}

	present, payload, decodeErr := decodeBackupUpdate(r)
	if decodeErr != "" {
		WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_payload", decodeErr)
		return
	}

	if _, err := bh.Repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", backupNotFoundDetail(id))
		} else {
			log.Printf("Error fetching backup status %d before update: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve backup status")
		}
		return
	}

	// an explicit null user_ids counts as "not supplied"; an empty list is a
	// real request to clear the producer set and needs updated_by
	syncRequested := false
	if _, ok := present["user_ids"]; ok && payload.UserIDs != nil {
		syncRequested = true
	}
	if syncRequested && payload.UpdatedBy == nil {
		WriteAPIError(w, http.StatusBadRequest, "validation_error", "updated_by is required when user_ids is supplied")
		return
	}

	updates := map[string]interface{}{}
	if _, ok := present["event_name"]; ok {
		if payload.EventName != nil && utf8.RuneCountInString(*payload.EventName) > 100 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "event_name must be at most 100 characters")
			return
		}
		updates["event_name"] = payload.EventName
	}
	if _, ok := present["displayed_date"]; ok {
		updates["displayed_date"] = payload.DisplayedDate
	}
	if _, ok := present["name"]; ok {
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" || utf8.RuneCountInString(*payload.Name) > 100 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "name must be a non-empty string of at most 100 characters")
			return
		}
		updates["name"] = *payload.Name
	}
	if _, ok := present["description"]; ok {
		if payload.Description != nil && utf8.RuneCountInString(*payload.Description) > 1000 {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "description must be at most 1000 characters")
			return
		}
		updates["description"] = payload.Description
	}
	if _, ok := present["cam"]; ok {
		updates["cam"] = payload.Cam
	}
	if _, ok := present["cam_checker"]; ok {
		updates["cam_checker"] = payload.CamChecker
	}
	if _, ok := present["master"]; ok {
		updates["master"] = payload.Master
	}
	if _, ok := present["master_checker"]; ok {
		updates["master_checker"] = payload.MasterChecker
	}
	if _, ok := present["clean"]; ok {
		updates["clean"] = payload.Clean
	}
	if _, ok := present["clean_checker"]; ok {
		updates["clean_checker"] = payload.CleanChecker
	}
	if _, ok := present["final_product"]; ok {
		updates["final_product"] = payload.FinalProduct
	}
	if _, ok := present["final_product_checker"]; ok {
		updates["final_product_checker"] = payload.FinalProductChecker
	}

	if err := bh.Repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", backupNotFoundDetail(id))
		} else {
			log.Printf("Error updating backup status %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update backup status")
		}
		return
	}

	// separate commit from the row update; see SyncProducers
	if syncRequested {
		if err := bh.Repo.SyncProducers(id, payload.UserIDs, *payload.UpdatedBy); err != nil {
			log.Printf("Error syncing producers for backup status %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Backup status updated but producer mapping failed")
			return
		}
	}

	updated, err := bh.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching updated backup status %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve updated backup status")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// MarkBackupComplete updates any subset of the four stage flags and checker
// references, each taken from an optional query parameter. Stages are
// independent; there is no cross-stage ordering rule.
func (bh *BackupStatusHandler) MarkBackupComplete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "backup_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid backup status ID format")
		return
	}

	q := r.URL.Query()
	updates := map[string]interface{}{}

	flagParam := func(name string) error {
		if !q.Has(name) {
			return nil
		}
		val, err := strconv.ParseBool(q.Get(name))
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %q", name, q.Get(name))
		}
		updates[name] = val
		return nil
	}
	checkerParam := func(name string) error {
		if !q.Has(name) {
			return nil
		}
		val, err := strconv.ParseUint(q.Get(name), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID for %s: %q", name, q.Get(name))
		}
		updates[name] = uint(val)
		return nil
	}

	for _, parse := range []func() error{
		func() error { return flagParam("cam") },
		func() error { return checkerParam("cam_checker") },
		func() error { return flagParam("master") },
		func() error { return checkerParam("master_checker") },
		func() error { return flagParam("clean") },
		func() error { return checkerParam("clean_checker") },
		func() error { return flagParam("final_product") },
		func() error { return checkerParam("final_product_checker") },
	} {
		if err := parse(); err != nil {
			WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
	}

	if _, err := bh.Repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", backupNotFoundDetail(id))
		} else {
			log.Printf("Error fetching backup status %d before mark-complete: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve backup status")
		}
		return
	}

	if err := bh.Repo.Update(id, updates); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error marking backup status %d complete: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update backup status")
		return
	}

	updated, err := bh.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching backup status %d after mark-complete: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve updated backup status")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBackupStatus soft-deletes a backup item. The deleted_by query
// parameter is mandatory: the identity of who deleted is always recorded.
// Producer mappings are left in place.
func (bh *BackupStatusHandler) DeleteBackupStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "backup_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid backup status ID format")
		return
	}

	q := r.URL.Query()
	if !q.Has("deleted_by") {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Missing required query parameter: deleted_by")
		return
	}
	deletedBy, err := strconv.ParseUint(q.Get("deleted_by"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "validation_error", "Invalid user ID for deleted_by: "+q.Get("deleted_by"))
		return
	}

	if err := bh.Repo.SoftDelete(id, uint(deletedBy)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", backupNotFoundDetail(id))
		} else {
			log.Printf("Error soft-deleting backup status %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to delete backup status")
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// decodeBackupUpdate decodes the body twice: once into a raw key map so an
// omitted field can be told apart from one explicitly set to null, and once
// into the typed payload.
func decodeBackupUpdate(r *http.Request) (map[string]json.RawMessage, backupStatusUpdatePayload, string) {
	var payload backupStatusUpdatePayload
	present := map[string]json.RawMessage{}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&present); err != nil {
		return nil, payload, "Invalid request body: " + err.Error()
	}
	for key, raw := range present {
		if err := unmarshalBackupField(&payload, key, raw); err != nil {
			return nil, payload, "Invalid value for field " + key + ": " + err.Error()
		}
	}
	return present, payload, ""
}

func unmarshalBackupField(payload *backupStatusUpdatePayload, key string, raw json.RawMessage) error {
	switch key {
	case "event_name":
		return json.Unmarshal(raw, &payload.EventName)
	case "displayed_date":
		return json.Unmarshal(raw, &payload.DisplayedDate)
	case "name":
		return json.Unmarshal(raw, &payload.Name)
	case "description":
		return json.Unmarshal(raw, &payload.Description)
	case "cam":
		return json.Unmarshal(raw, &payload.Cam)
	case "cam_checker":
		return json.Unmarshal(raw, &payload.CamChecker)
	case "master":
		return json.Unmarshal(raw, &payload.Master)
	case "master_checker":
		return json.Unmarshal(raw, &payload.MasterChecker)
	case "clean":
		return json.Unmarshal(raw, &payload.Clean)
	case "clean_checker":
		return json.Unmarshal(raw, &payload.CleanChecker)
	case "final_product":
		return json.Unmarshal(raw, &payload.FinalProduct)
	case "final_product_checker":
		return json.Unmarshal(raw, &payload.FinalProductChecker)
	case "user_ids":
		return json.Unmarshal(raw, &payload.UserIDs)
	case "updated_by":
		return json.Unmarshal(raw, &payload.UpdatedBy)
	}
	// unknown keys are ignored, matching the lenient decode on create
	return nil
}
