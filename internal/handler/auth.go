// Package handler implements the HTTP handlers for the assistant API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kerjahub/mea-go/internal/keystore"
	"github.com/kerjahub/mea-go/internal/model"
	"github.com/kerjahub/mea-go/internal/service"
)

// AuthHandler exchanges API keys for bearer tokens.
type AuthHandler struct {
	store   *keystore.Store
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *keystore.Store, authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{
		store:   store,
		authSvc: authSvc,
	}
}

// Token handles POST /v1/auth/token. A valid API key yields a signed
// JWT; the key's usage counter is bumped like any other use.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "api_key is required")
		return
	}

	rec, err := h.store.Verify(req.APIKey)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid API key")
		return
	}
	if err := h.store.Touch(rec.ID); err != nil {
		slog.Error("failed to record key usage", "error", err, "key_id", rec.ID)
	}

	token, err := h.authSvc.SignToken(rec.ID, rec.Name)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "token issuance failed")
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{
		Token:   token,
		KeyName: rec.Name,
	})
}
