package applications

import (
	"net/http"

	"github.com/CareerPrix/CP-Backend/internal/auth"
	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleStudent))
		r.Post("/", ApplyHandler)
		r.Get("/mine", ListMyApplicationsHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleCompany))
		r.Get("/", ListForJobHandler)
		r.Patch("/{application_id}/status", UpdateStatusHandler)
	})

	return r
}
