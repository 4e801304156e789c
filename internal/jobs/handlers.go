package jobs

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CareerPrix/CP-Backend/internal/auth"
	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// ListJobsHandler returns published jobs, optionally filtered by keyword and tag
func ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Job{}).Where("status = ?", StatusPublished)

	if q := r.URL.Query().Get("q"); q != "" {
		pattern := "%" + FoldKeyword(q) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		query = query.Where("? = ANY(tags)", FoldKeyword(tag))
	}

	var jobs []Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		http.Error(w, "Failed to fetch jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetJobHandler returns a single published job by ID
func GetJobHandler(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")

	var job Job
	if err := db.DB.First(&job, "id = ? AND status = ?", jobID, StatusPublished).Error; err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// CreateJobHandler creates a posting for the calling company. Unapproved
// companies can save drafts but not publish.
func CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var job Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if job.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	switch job.Status {
	case "", StatusDraft:
		job.Status = StatusDraft
	case StatusPublished:
		var company auth.User
		if err := db.DB.First(&company, "user_id = ?", companyID).Error; err != nil || !company.Approved {
			http.Error(w, "Company account is pending approval", http.StatusForbidden)
			return
		}
	default:
		http.Error(w, "Status must be 'draft' or 'published'", http.StatusBadRequest)
		return
	}

	job.CompanyID = companyID
	job.Tags = FoldTags(job.Tags)

	if err := db.DB.Create(&job).Error; err != nil {
		http.Error(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// ListMyJobsHandler returns all postings owned by the calling company
func ListMyJobsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var jobs []Job
	if err := db.DB.Where("company_id = ?", companyID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		http.Error(w, "Failed to fetch jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// ownedJob loads a job and verifies it belongs to the calling company.
func ownedJob(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	companyID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return nil, false
	}

	jobID := chi.URLParam(r, "job_id")
	var job Job
	if err := db.DB.First(&job, "id = ?", jobID).Error; err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return nil, false
	}
	if job.CompanyID != companyID {
		http.Error(w, "Job not found", http.StatusNotFound)
		return nil, false
	}
	return &job, true
}

// UpdateJobHandler edits an owned posting's content fields
func UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := ownedJob(w, r)
	if !ok {
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Location    *string  `json:"location"`
		Tags        []string `json:"tags"`
		SalaryMin   *int     `json:"salary_min"`
		SalaryMax   *int     `json:"salary_max"`
		Status      *string  `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Tags != nil {
		updates["tags"] = FoldTags(input.Tags)
	}
	if input.SalaryMin != nil {
		updates["salary_min"] = *input.SalaryMin
	}
	if input.SalaryMax != nil {
		updates["salary_max"] = *input.SalaryMax
	}
	if input.Status != nil {
		if *input.Status != StatusDraft && *input.Status != StatusPublished {
			http.Error(w, "Status must be 'draft' or 'published'", http.StatusBadRequest)
			return
		}
		if job.Status == StatusClosed {
			http.Error(w, "Closed jobs cannot be reopened", http.StatusConflict)
			return
		}
		if *input.Status == StatusPublished {
			var company auth.User
			if err := db.DB.First(&company, "user_id = ?", job.CompanyID).Error; err != nil || !company.Approved {
				http.Error(w, "Company account is pending approval", http.StatusForbidden)
				return
			}
		}
		updates["status"] = *input.Status
	}

	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(job).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to update job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// CloseJobHandler marks an owned posting closed; closed is terminal
func CloseJobHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := ownedJob(w, r)
	if !ok {
		return
	}

	if err := db.DB.Model(job).Update("status", StatusClosed).Error; err != nil {
		http.Error(w, "Failed to close job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Job closed")
}
