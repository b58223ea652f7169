// Package middleware provides HTTP middleware for the assistant API.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kerjahub/mea-go/internal/keystore"
	"github.com/kerjahub/mea-go/internal/model"
	"github.com/kerjahub/mea-go/internal/service"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ContextKeyKeyID is the context key for the authenticated API key ID.
	ContextKeyKeyID contextKey = "key_id"
	// ContextKeyKeyName is the context key for the API key's display name.
	ContextKeyKeyName contextKey = "key_name"
)

// KeyIDFromContext extracts the authenticated key ID from the request
// context. Returns empty string if not present.
func KeyIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ContextKeyKeyID).(string)
	return v
}

// KeyNameFromContext extracts the key display name from the request context.
func KeyNameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ContextKeyKeyName).(string)
	return v
}

// AuthMiddleware authenticates requests against the key store.
//
// Two credential forms are accepted:
//   - X-API-Key: <key> — verified against the store; each use bumps the
//     key's request counter and last-used timestamp
//   - Authorization: Bearer <jwt> — a token previously issued by
//     POST /v1/auth/token
//
// When authEnabled=false (local dev), requests pass through with a
// placeholder identity.
func AuthMiddleware(store *keystore.Store, authSvc *service.AuthService, authEnabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authEnabled {
				ctx := context.WithValue(r.Context(), ContextKeyKeyID, "dev")
				ctx = context.WithValue(ctx, ContextKeyKeyName, "dev")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
				rec, err := store.Verify(apiKey)
				if err != nil {
					writeAuthError(w, http.StatusUnauthorized, "invalid API key")
					return
				}
				if err := store.Touch(rec.ID); err != nil {
					slog.Error("failed to record key usage", "error", err, "key_id", rec.ID)
				}

				ctx := context.WithValue(r.Context(), ContextKeyKeyID, rec.ID)
				ctx = context.WithValue(ctx, ContextKeyKeyName, rec.Name)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			authz := r.Header.Get("Authorization")
			if strings.HasPrefix(authz, "Bearer ") {
				claims, err := authSvc.VerifyToken(strings.TrimPrefix(authz, "Bearer "))
				if err != nil {
					writeAuthError(w, http.StatusUnauthorized, "invalid token")
					return
				}

				ctx := context.WithValue(r.Context(), ContextKeyKeyID, claims.KeyID)
				ctx = context.WithValue(ctx, ContextKeyKeyName, claims.KeyName)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			writeAuthError(w, http.StatusUnauthorized, "missing credentials: use X-API-Key or Authorization: Bearer")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
