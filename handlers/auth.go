package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ymlibrary/ymlibrarybackend/models"
	"github.com/ymlibrary/ymlibrarybackend/repository"
	"gorm.io/gorm"
)

type AuthHandler struct {
	UserRepo repository.UserRepository
}

func NewAuthHandler(userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{UserRepo: userRepo}
}

type LoginPayload struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// The detail is deliberately identical for an unknown nickname and a wrong
// password so the two cases cannot be told apart.
const loginFailedDetail = "invalid nickname or password"

// Login authenticates a user by nickname and password and returns the user
// record (password excluded). Stored passwords are opaque strings compared
// verbatim.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusUnprocessableEntity, "invalid_payload", "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.UserRepo.GetActiveByNickname(payload.Nickname)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error resolving nickname during login: %v", err)
		}
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", loginFailedDetail)
		return
	}

	if user.Password != payload.Password {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", loginFailedDetail)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListUsers returns every non-deleted user, passwords excluded.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.ListActive()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
