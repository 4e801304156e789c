package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Create inserts a notification row. A failed insert is logged and dropped;
// notifications are never worth failing the triggering request over.
func Create(userID, kind, body string) {
	n := Notification{UserID: userID, Kind: kind, Body: body}
	if err := db.DB.Create(&n).Error; err != nil {
		log.Printf("[notify] failed to create notification for %s: %v", userID, err)
	}
}

// ListHandler returns the calling user's notifications, newest first
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("user_id = ?", userID)
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var notifications []Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		http.Error(w, "Failed to fetch notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

// MarkReadHandler marks one of the caller's notifications read
func MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	notificationID := chi.URLParam(r, "notification_id")
	now := time.Now()

	result := db.DB.Model(&Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", &now)
	if result.Error != nil {
		http.Error(w, "Failed to update notification", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Notification marked read")
}
