package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/paywise/paywise-backend/internal/api/handlers"
	"github.com/paywise/paywise-backend/internal/auth"
	"github.com/paywise/paywise-backend/internal/config"
	"github.com/paywise/paywise-backend/internal/metrics"
	"github.com/paywise/paywise-backend/internal/middleware"
	"github.com/paywise/paywise-backend/internal/services"
)

func NewRouter(cfg config.Config, tm *auth.TokenManager, us *services.UserService, as *services.AccountService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	uh := handlers.NewUserHandler(us)
	ah := handlers.NewAccountHandler(as)
	authmw := middleware.NewAuthMiddleware(tm)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", uh.Signup)
			r.Post("/signin", uh.Signin)
			r.Get("/bulk", uh.Bulk)
			r.With(authmw.Auth).Put("/", uh.Update)
			r.With(authmw.Auth).Get("/me", uh.Me)
		})
		r.Route("/account", func(r chi.Router) {
			r.Use(authmw.Auth)
			r.Get("/balance", ah.Balance)
			r.Post("/transfer", ah.Transfer)
		})
	})

	return r
}
