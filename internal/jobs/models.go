package jobs

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

// Job is a company's posting. Students only ever see published jobs.
type Job struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID   string         `gorm:"not null;index" json:"company_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	SalaryMin   int            `json:"salary_min"`
	SalaryMax   int            `json:"salary_max"`
	Status      string         `gorm:"not null;default:'draft'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Job) TableName() string { return "jobs.jobs" }
