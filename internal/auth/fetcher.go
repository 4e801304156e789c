package auth

import (
	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/utils"
)

// SessionInfo satisfies both middleware.SessionFetcher and gate.SessionFetcher.
type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	var user User
	err = db.DB.First(&user, "user_id = ?", session.UserID).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
