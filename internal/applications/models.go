package applications

import (
	"time"

	"github.com/CareerPrix/CP-Backend/internal/jobs"
	"github.com/google/uuid"
)

const (
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// Application is a student's application to one job. Rows are an audit
// trail: status moves forward, rows are never deleted.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	StudentID string    `gorm:"not null;index:idx_app_student_job,unique" json:"student_id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index:idx_app_student_job,unique" json:"job_id"`
	Status    string    `gorm:"not null;default:'applied'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Job jobs.Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (Application) TableName() string { return "applications.applications" }

// validNext lists the allowed status transitions on the company side.
var validNext = map[string][]string{
	StatusApplied:   {StatusScreening, StatusRejected},
	StatusScreening: {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {},
	StatusRejected:  {},
}

func CanTransition(from, to string) bool {
	for _, next := range validNext[from] {
		if next == to {
			return true
		}
	}
	return false
}
