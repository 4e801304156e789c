package grandprix

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Contest is one skill assessment round. Contests are public; entering one
// requires a student account.
type Contest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	StartsAt    time.Time      `gorm:"not null" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	CreatedAt   time.Time      `json:"created_at"`

	Entries []Entry `gorm:"foreignKey:ContestID" json:"entries,omitempty"`
}

// Entry is a student's result in one contest. One row per student per
// contest; resubmitting keeps the best score.
type Entry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ContestID   uuid.UUID `gorm:"type:uuid;not null;index:idx_entry_contest_student,unique" json:"contest_id"`
	StudentID   string    `gorm:"not null;index:idx_entry_contest_student,unique" json:"student_id"`
	Score       int       `gorm:"not null" json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

func (Contest) TableName() string { return "grandprix.contests" }
func (Entry) TableName() string   { return "grandprix.entries" }
