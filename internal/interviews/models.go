package interviews

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// MaxProposedSlots caps how many pending slots one application may carry.
const MaxProposedSlots = 3

// InterviewSchedule is one proposed or confirmed meeting time for an
// application. Students create them in batches of 1-3; the company confirms
// exactly one. Confirmation is terminal: a confirmed row never goes back to
// pending, and siblings stay pending as an audit trail.
type InterviewSchedule struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ApplicationID   uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	StudentID       string    `gorm:"not null;index" json:"student_id"`
	ScheduledAt     time.Time `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	Location        string    `json:"location"`
	MeetingLink     string    `json:"meeting_link"`
	Notes           string    `json:"notes"`
	Status          string    `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (InterviewSchedule) TableName() string { return "interviews.schedules" }
