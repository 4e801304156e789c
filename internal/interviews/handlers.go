package interviews

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/applications"
	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/events"
	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/jobs"
	"github.com/CareerPrix/CP-Backend/internal/notify"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ProposeHandler accepts 1-3 candidate meeting times from the student who
// owns the application and stores them as pending. The batch is inserted in
// one transaction: all rows commit or none do.
func ProposeHandler(w http.ResponseWriter, r *http.Request) {
	studentID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		ApplicationID string      `json:"application_id"`
		Slots         []SlotInput `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ApplicationID == "" {
		http.Error(w, "application_id is required", http.StatusBadRequest)
		return
	}

	rows, err := ValidateSlots(input.Slots, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Ownership: the application must belong to the requesting student.
	var app applications.Application
	if err := db.DB.First(&app, "id = ? AND student_id = ?", input.ApplicationID, studentID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	// Once a slot is confirmed the scheduling flow is over for this application.
	var confirmed int64
	db.DB.Model(&InterviewSchedule{}).
		Where("application_id = ? AND status = ?", app.ID, StatusConfirmed).
		Count(&confirmed)
	if confirmed > 0 {
		http.Error(w, "An interview is already confirmed for this application", http.StatusConflict)
		return
	}

	var pending int64
	db.DB.Model(&InterviewSchedule{}).
		Where("application_id = ? AND status = ?", app.ID, StatusPending).
		Count(&pending)
	if pending+int64(len(rows)) > MaxProposedSlots {
		http.Error(w, "Too many pending slots for this application", http.StatusConflict)
		return
	}

	for i := range rows {
		rows[i].ApplicationID = app.ID
		rows[i].StudentID = studentID
	}

	if err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}); err != nil {
		http.Error(w, "Failed to save slots", http.StatusInternalServerError)
		return
	}

	var job jobs.Job
	if err := db.DB.First(&job, "id = ?", app.JobID).Error; err == nil {
		notify.Create(job.CompanyID, notify.KindInterviewProposed, "Interview times proposed for "+job.Title)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rows)
}

// ConfirmHandler lets the company owning the application's job confirm one
// pending slot. The status flip is a single conditional UPDATE guarded
// against a sibling already being confirmed, so two concurrent confirmations
// cannot both land.
func ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	scheduleID := chi.URLParam(r, "schedule_id")

	var schedule InterviewSchedule
	if err := db.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	var app applications.Application
	if err := db.DB.First(&app, "id = ?", schedule.ApplicationID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}
	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND company_id = ?", app.JobID, companyID).Error; err != nil {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	// Conditional flip: only while this row is still pending and no sibling
	// for the same application is confirmed yet.
	result := db.DB.Model(&InterviewSchedule{}).
		Where("id = ? AND status = ?", schedule.ID, StatusPending).
		Where("NOT EXISTS (SELECT 1 FROM interviews.schedules c WHERE c.application_id = ? AND c.status = ?)",
			schedule.ApplicationID, StatusConfirmed).
		Updates(map[string]interface{}{"status": StatusConfirmed, "updated_at": time.Now()})
	if result.Error != nil {
		http.Error(w, "Failed to confirm schedule", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Slot is no longer pending or another slot is already confirmed", http.StatusConflict)
		return
	}

	// Re-read so the response reflects persisted state, not what we hope
	// was written.
	if err := db.DB.First(&schedule, "id = ?", schedule.ID).Error; err != nil {
		http.Error(w, "Failed to reload schedule", http.StatusInternalServerError)
		return
	}

	notify.Create(schedule.StudentID, notify.KindInterviewConfirm, "Your interview for "+job.Title+" is confirmed")
	events.Publish(schedule.StudentID, events.InterviewConfirmedEvent{
		Kind:          events.KindInterviewConfirmed,
		ScheduleID:    schedule.ID.String(),
		ApplicationID: schedule.ApplicationID.String(),
		StudentID:     schedule.StudentID,
		ScheduledAt:   schedule.ScheduledAt.Format(time.RFC3339),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

// ListByApplicationHandler returns every schedule row for one application,
// visible only to the application's two parties (or an admin).
func ListByApplicationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	appID := r.URL.Query().Get("application_id")
	if appID == "" {
		http.Error(w, "application_id query parameter is required", http.StatusBadRequest)
		return
	}

	var app applications.Application
	if err := db.DB.First(&app, "id = ?", appID).Error; err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	if !isParty(app, userID, role) {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	var schedules []InterviewSchedule
	if err := db.DB.Where("application_id = ?", app.ID).
		Order("scheduled_at ASC").Find(&schedules).Error; err != nil {
		http.Error(w, "Failed to fetch schedules: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

// isParty reports whether userID is the applying student, the company owning
// the job, or an admin.
func isParty(app applications.Application, userID, role string) bool {
	if parsed, err := gate.ParseRole(role); err == nil && parsed == gate.RoleAdmin {
		return true
	}
	if app.StudentID == userID {
		return true
	}
	var job jobs.Job
	if err := db.DB.First(&job, "id = ? AND company_id = ?", app.JobID, userID).Error; err == nil {
		return true
	}
	return false
}
