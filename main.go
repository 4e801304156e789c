package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/CareerPrix/CP-Backend/internal/applications"
	"github.com/CareerPrix/CP-Backend/internal/auth"
	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/events"
	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/grandprix"
	"github.com/CareerPrix/CP-Backend/internal/interviews"
	"github.com/CareerPrix/CP-Backend/internal/jobs"
	"github.com/CareerPrix/CP-Backend/internal/messages"
	"github.com/CareerPrix/CP-Backend/internal/middleware"
	"github.com/CareerPrix/CP-Backend/internal/notify"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	jobs.Init()
	applications.Init()
	interviews.Init()
	messages.Init()
	notify.Init()
	grandprix.Init()
	events.Init()

	paths, err := gate.LoadPathsFromEnv()
	if err != nil {
		log.Fatal("Failed to load gate path tables: ", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(gate.Middleware(paths, auth.SessionInfo{}))

	r.Get("/", RootHandler)
	r.Get("/healthz", HealthHandler)

	// The gate passes /api through untouched; each sub-router carries its
	// own session/role middleware.
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", auth.SetupRoutes())
		r.Mount("/jobs", jobs.SetupRoutes())
		r.Mount("/company/jobs", jobs.SetupCompanyRoutes())
		r.Mount("/applications", applications.SetupRoutes())
		r.Mount("/interviews", interviews.SetupRoutes())
		r.Mount("/messages", messages.SetupRoutes())
		r.Mount("/notifications", notify.SetupRoutes())
		r.Mount("/grandprix", grandprix.SetupRoutes())
	})

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
