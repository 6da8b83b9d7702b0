package httpapi

import (
	"context"
	"net/http"
	"strings"

	"bistro-backend/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// requireRole verifies the bearer token and, when roles are given, checks
// the embedded role against them. Claims are only trusted after signature
// verification.
func (h *Handler) requireRole(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			respondError(w, http.StatusUnauthorized, "bearer token required")
			return
		}

		claims, err := h.Auth.Verify(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if role == claims.Role {
					allowed = true
					break
				}
			}
			if !allowed {
				respondError(w, http.StatusForbidden, "access denied")
				return
			}
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

func claimsFrom(r *http.Request) *service.Claims {
	claims, _ := r.Context().Value(claimsKey).(*service.Claims)
	return claims
}
