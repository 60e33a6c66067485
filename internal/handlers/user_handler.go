package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"corteBack/internal/models"
	"corteBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

// SignIn authenticates against the identity provider. An unknown account gets
// a 404 with offer_sign_up set so the client can prompt for registration
// instead of showing a generic error.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	tokens, err := h.Service.SignIn(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":         "user_not_found",
			"offer_sign_up": true,
		})
		return
	case errors.Is(err, models.ErrEmptyField):
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	case errors.Is(err, models.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	json.NewEncoder(w).Encode(tokens)
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	tokens, err := h.Service.SignUp(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, models.ErrEmptyField):
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	case errors.Is(err, models.ErrDuplicateEmail):
		writeError(w, http.StatusUnprocessableEntity, "email already registered")
		return
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tokens)
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	userID := userIDFromContext(r)
	if err := h.Service.SignOut(r.Context(), userID, body.RefreshToken); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
