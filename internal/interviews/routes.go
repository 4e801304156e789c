package interviews

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
		r.Get("/", ListByApplicationHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleStudent))
		r.Post("/propose", ProposeHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleCompany))
		r.Post("/{schedule_id}/confirm", ConfirmHandler)
	})

	return r
}
