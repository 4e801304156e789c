package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string  `gorm:"primaryKey" json:"user_id"`
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	Username       string  `json:"username"`
	Password       string  `json:"password" gorm:"-"`
	HashedPassword string  `json:"-"`
	Role           string  `gorm:"default:'student'" json:"role"`
	Approved       bool    `gorm:"default:false" json:"approved"` // company vetting flag, meaningless for students
	AvatarURL      string  `json:"avatar_url"`
	Session        Session `gorm:"foreignKey:UserID" json:"-"`
}

// PasswordReset is a single-use, expiring reset token. Delivery of the token
// is the mail worker's job; this service only mints and redeems them.
type PasswordReset struct {
	Token     string     `gorm:"primaryKey" json:"-"`
	UserID    string     `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time `json:"-"`
}

func (Session) TableName() string       { return "app_auth.sessions" }
func (User) TableName() string          { return "app_auth.users" }
func (PasswordReset) TableName() string { return "app_auth.password_resets" }
