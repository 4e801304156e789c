package grandprix

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

	r.Get("/", ListContestsHandler)
	r.Get("/{contest_id}/leaderboard", LeaderboardHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.RequireRole(gate.RoleStudent))
		r.Post("/{contest_id}/entries", SubmitEntryHandler)
	})

	return r
}
