package applications

import (
	"encoding/json"
	"net/http"

	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/events"
	"github.com/CareerPrix/CP-Backend/internal/jobs"
	"github.com/CareerPrix/CP-Backend/internal/notify"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ApplyHandler files an application for the calling student against one
// published job. A student may apply to a job once.
func ApplyHandler(w http.ResponseWriter, r *http.Request) {
	studentID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.JobID == "" {
		http.Error(w, "job_id is required", http.StatusBadRequest)
		return
	}

	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND status = ?", input.JobID, jobs.StatusPublished).Error; err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	var existing Application
	err := db.DB.First(&existing, "student_id = ? AND job_id = ?", studentID, job.ID).Error
	if err == nil {
		http.Error(w, "Already applied to this job", http.StatusConflict)
		return
	}
	if err != gorm.ErrRecordNotFound {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	app := Application{
		StudentID: studentID,
		JobID:     job.ID,
		Status:    StatusApplied,
	}
	if err := db.DB.Create(&app).Error; err != nil {
		http.Error(w, "Failed to create application", http.StatusInternalServerError)
		return
	}

	notify.Create(job.CompanyID, notify.KindNewApplication, "New application for "+job.Title)
	events.Publish(studentID, events.ApplicationSubmittedEvent{
		Kind:          events.KindApplicationSubmitted,
		ApplicationID: app.ID.String(),
		JobID:         job.ID.String(),
		StudentID:     studentID,
		CompanyID:     job.CompanyID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(app)
}

// ListMyApplicationsHandler returns the calling student's applications,
// newest first, with the job preloaded.
func ListMyApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	studentID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var apps []Application
	if err := db.DB.Preload("Job").Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&apps).Error; err != nil {
		http.Error(w, "Failed to fetch applications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apps)
}

// ListForJobHandler returns all applications to one job owned by the calling company
func ListForJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		http.Error(w, "job_id query parameter is required", http.StatusBadRequest)
		return
	}

	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND company_id = ?", jobID, companyID).Error; err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	var apps []Application
	if err := db.DB.Where("job_id = ?", job.ID).Order("created_at ASC").Find(&apps).Error; err != nil {
		http.Error(w, "Failed to fetch applications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apps)
}

// UpdateStatusHandler moves an application along the pipeline. Only the
// company owning the job may move it, and only along valid transitions.
func UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	appID := chi.URLParam(r, "application_id")
	var app Application
	if err := db.DB.First(&app, "id = ?", appID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND company_id = ?", app.JobID, companyID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	if !CanTransition(app.Status, input.Status) {
		http.Error(w, "Cannot move from '"+app.Status+"' to '"+input.Status+"'", http.StatusConflict)
		return
	}

	if err := db.DB.Model(&app).Update("status", input.Status).Error; err != nil {
		http.Error(w, "Failed to update application", http.StatusInternalServerError)
		return
	}

	notify.Create(app.StudentID, notify.KindApplicationUpdate, "Your application moved to "+input.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app)
}
