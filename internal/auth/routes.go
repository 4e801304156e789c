package auth

import (
	"net/http"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	// Credential endpoints are rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rate.Every(time.Second), 10))
		r.Post("/register", RegisterHandler)
		r.Post("/login", LoginHandler)
		r.Post("/password-reset/request", RequestPasswordResetHandler)
		r.Post("/password-reset/confirm", ResetPasswordHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
		r.Post("/password", UpdatePasswordHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleAdmin))
		r.Post("/companies/{user_id}/approve", ApproveCompanyHandler)
	})

	return r
}
