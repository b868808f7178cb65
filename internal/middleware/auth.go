package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/paywise/paywise-backend/internal/api/httpx"
	"github.com/paywise/paywise-backend/internal/auth"
)

type ctxKey string

const ctxUserIDKey ctxKey = "uid"

// UserID returns the identity the auth middleware resolved for this request.
func UserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(string)
	return v, ok
}

type AuthMiddleware struct {
	tm *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tm: tm}
}

// Auth fails closed: no identity reaches a handler unless the bearer token
// verifies. Missing or invalid credentials are both 403.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteMessage(w, http.StatusForbidden, "Unauthorized access, token missing")
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.tm.Parse(token)
		if err != nil {
			httpx.WriteMessage(w, http.StatusForbidden, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
