package messages

import (
	"encoding/json"
	"net/http"

	"github.com/CareerPrix/CP-Backend/internal/applications"
	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/jobs"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// partyApplication loads an application and verifies the caller is one of
// its two parties. Outsiders get a 404, not a 403, so thread existence
// leaks nothing.
func partyApplication(w http.ResponseWriter, r *http.Request, appID string) (*applications.Application, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return nil, false
	}

	var app applications.Application
	if err := db.DB.First(&app, "id = ?", appID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return nil, false
	}

	if app.StudentID == userID {
		return &app, true
	}
	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND company_id = ?", app.JobID, userID).Error; err == nil {
		return &app, true
	}

	http.Error(w, "Application not found", http.StatusNotFound)
	return nil, false
}

// SendHandler appends a message to an application thread
func SendHandler(w http.ResponseWriter, r *http.Request) {
	app, ok := partyApplication(w, r, chi.URLParam(r, "application_id"))
	if !ok {
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}
	if len(input.Body) > MaxBodyLength {
		http.Error(w, "body is too long", http.StatusBadRequest)
		return
	}

	senderID, _ := utils.GetUserIDFromContext(r.Context())
	msg := Message{
		ApplicationID: app.ID,
		SenderID:      senderID,
		Body:          input.Body,
	}
	if err := db.DB.Create(&msg).Error; err != nil {
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// ListHandler returns an application thread, oldest first
func ListHandler(w http.ResponseWriter, r *http.Request) {
	app, ok := partyApplication(w, r, chi.URLParam(r, "application_id"))
	if !ok {
		return
	}

	var msgs []Message
	if err := db.DB.Where("application_id = ?", app.ID).
		Order("created_at ASC").Find(&msgs).Error; err != nil {
		http.Error(w, "Failed to fetch messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msgs)
}
