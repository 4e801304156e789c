package jobs

import (
	"net/http"

	"github.com/CareerPrix/CP-Backend/internal/auth"
	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes returns the public job-board routes.
func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", ListJobsHandler)
	r.Get("/{job_id}", GetJobHandler)

	return r
}

// SetupCompanyRoutes returns the company-side management routes.
func SetupCompanyRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Use(middleware.SessionMiddleware(sessionFetcher))
	r.Use(middleware.RequireRole(gate.RoleCompany))

	r.Get("/", ListMyJobsHandler)
	r.Post("/", CreateJobHandler)
	r.Patch("/{job_id}", UpdateJobHandler)
	r.Post("/{job_id}/close", CloseJobHandler)

	return r
}
