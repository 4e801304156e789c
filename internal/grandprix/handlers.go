package grandprix

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ListContestsHandler returns all contests, current first
func ListContestsHandler(w http.ResponseWriter, r *http.Request) {
	var contests []Contest
	if err := db.DB.Order("starts_at DESC").Find(&contests).Error; err != nil {
		http.Error(w, "Failed to fetch contests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contests)
}

// LeaderboardHandler returns the top entries for one contest
func LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	contestID := chi.URLParam(r, "contest_id")

	var contest Contest
	if err := db.DB.First(&contest, "id = ?", contestID).Error; err != nil {
		http.Error(w, "Contest not found", http.StatusNotFound)
		return
	}

	var entries []Entry
	if err := db.DB.Where("contest_id = ?", contest.ID).
		Order("score DESC, completed_at ASC").Limit(50).Find(&entries).Error; err != nil {
		http.Error(w, "Failed to fetch leaderboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// SubmitEntryHandler records the calling student's score for a contest that
// is currently open. Resubmissions only ever raise the stored score.
func SubmitEntryHandler(w http.ResponseWriter, r *http.Request) {
	studentID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var input struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Score < 0 {
		http.Error(w, "score is required", http.StatusBadRequest)
		return
	}

	contestID := chi.URLParam(r, "contest_id")
	var contest Contest
	if err := db.DB.First(&contest, "id = ?", contestID).Error; err != nil {
		http.Error(w, "Contest not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	if now.Before(contest.StartsAt) || now.After(contest.EndsAt) {
		http.Error(w, "Contest is not open", http.StatusConflict)
		return
	}

	var entry Entry
	err := db.DB.First(&entry, "contest_id = ? AND student_id = ?", contest.ID, studentID).Error
	switch {
	case err == nil:
		if input.Score > entry.Score {
			if err := db.DB.Model(&entry).
				Updates(map[string]interface{}{"score": input.Score, "completed_at": now}).Error; err != nil {
				http.Error(w, "Failed to update entry", http.StatusInternalServerError)
				return
			}
		}
	case err == gorm.ErrRecordNotFound:
		entry = Entry{
			ContestID:   contest.ID,
			StudentID:   studentID,
			Score:       input.Score,
			CompletedAt: now,
		}
		if err := db.DB.Create(&entry).Error; err != nil {
			http.Error(w, "Failed to create entry", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
