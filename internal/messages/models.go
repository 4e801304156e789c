package messages

import (
	"time"

	"github.com/google/uuid"
)

// MaxBodyLength caps one message body.
const MaxBodyLength = 4000

// Message is one line in an application's thread between the student and
// the company.
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	SenderID      string    `gorm:"not null" json:"sender_id"`
	Body          string    `gorm:"not null" json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages.messages" }
