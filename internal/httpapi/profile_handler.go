package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/egorv/homebook/internal/credentials"
)

type ProfileHandler struct {
	store   credentials.Store
	timeout time.Duration
}

func NewProfileHandler(store credentials.Store, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{
		store:   store,
		timeout: timeout,
	}
}

type ProfileDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

type UpdateProfileRequestDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	ProfilePic string `json:"profile_pic"`
}

// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto ProfileDTO
	var err error
	// The password never leaves the store.
	if dto.Name, err = h.getOrEmpty(ctx, credentials.KeyUserName); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}
	if dto.Email, err = h.getOrEmpty(ctx, credentials.KeyUserEmail); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}
	if dto.Mobile, err = h.getOrEmpty(ctx, credentials.KeyUserMobile); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}
	if dto.ProfilePic, err = h.getOrEmpty(ctx, credentials.KeyUserProfilePic); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updates := map[string]string{
		credentials.KeyUserName:       req.Name,
		credentials.KeyUserEmail:      req.Email,
		credentials.KeyUserPassword:   req.Password,
		credentials.KeyUserMobile:     req.Mobile,
		credentials.KeyUserProfilePic: req.ProfilePic,
	}
	for key, value := range updates {
		if value == "" {
			continue
		}
		if err := h.store.Set(ctx, key, value); err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to save profile")
			return
		}
	}

	h.GetProfile(w, r)
}

// DELETE /api/v1/profile — logout, drops all stored credentials.
func (h *ProfileHandler) ClearProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Clear(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *ProfileHandler) getOrEmpty(ctx context.Context, key string) (string, error) {
	value, err := h.store.Get(ctx, key)
	if errors.Is(err, credentials.ErrNotFound) {
		return "", nil
	}
	return value, err
}
