package middleware

import (
	"log/slog"
	"net/http"

	"github.com/paywise/paywise-backend/internal/api/httpx"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "request_id", RequestIDFrom(r.Context()))
				httpx.WriteMessage(w, http.StatusInternalServerError, "Server error. Please try again later.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
