package notify

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindNewApplication    = "new_application"
	KindApplicationUpdate = "application_update"
	KindInterviewProposed = "interview_proposed"
	KindInterviewConfirm  = "interview_confirmed"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    string     `gorm:"not null;index" json:"user_id"`
	Kind      string     `gorm:"not null" json:"kind"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string { return "notify.notifications" }
