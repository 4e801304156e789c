package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/db"
	"github.com/CareerPrix/CP-Backend/internal/events"
	"github.com/CareerPrix/CP-Backend/internal/gate"
	"github.com/CareerPrix/CP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 6 * time.Hour

// sessionCookie builds the session cookie. Local dev runs over plain HTTP,
// so Secure is only set in production.
func sessionCookie(value string, maxAge int) *http.Cookie {
	secure := os.Getenv("ENV") == "production"
	return &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if user.Email == "" || user.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	// Signups pick student or company. Admin accounts are provisioned
	// directly, never self-assigned.
	role, err := gate.ParseRole(user.Role)
	if err != nil || role == gate.RoleAdmin {
		http.Error(w, "Role must be 'student' or 'company'", http.StatusBadRequest)
		return
	}

	// Check if email is taken
	var existing User
	err = db.DB.First(&existing, "email = ?", user.Email).Error
	if err == nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}
	user.HashedPassword = string(hashed)
	user.UserID = utils.GenerateUUID()

	// Students are usable immediately; companies wait for admin approval.
	user.Approved = role == gate.RoleStudent

	// Clear user password
	user.Password = ""

	// Save to DB
	if err := db.DB.Create(&user).Error; err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id": user.UserID,
		"email":   user.Email,
		"role":    user.Role,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var user User
	var session Session
	var existing Session

	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	password := user.Password

	// Search for matching email
	err = db.DB.First(&user, "email = ?", user.Email).Error
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	// Compare hashed password with plaintext password
	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password))
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	// Passwords matched, set cookie
	uuid := utils.GenerateUUID()
	http.SetCookie(w, sessionCookie(uuid, int(sessionTTL.Seconds())))

	// Search db to see if a session already exists for this user, rotate it if so
	db.DB.Where("user_id = ?", user.UserID).First(&existing)
	if existing.UserID != "" {
		db.DB.Model(&existing).Updates(Session{
			SessionID: uuid,
			ExpiresAt: time.Now().Add(sessionTTL),
		})
	} else {
		session.SessionID = uuid
		session.UserID = user.UserID
		session.ExpiresAt = time.Now().Add(sessionTTL)
		db.DB.Create(&session)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"user_id": user.UserID,
		"role":    user.Role,
	})
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var session Session

	// Get session_id from cookie
	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	// search sessions for session_id
	err = db.DB.First(&session, "session_id = ?", cookie.Value).Error
	if err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	// If no err, delete session record
	db.DB.Delete(&session)

	// Replace the cookie with new expired/empty cookie
	http.SetCookie(w, sessionCookie("", -1))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Approved  bool   `json:"approved"`
	AvatarURL string `json:"avatar_url"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Failed converting ID to string", http.StatusInternalServerError)
		return
	}

	err := db.DB.First(&user, "user_id = ?", userID).Error
	if err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	response := MeResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		Approved:  user.Approved,
		AvatarURL: user.AvatarURL,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	// We ask user to enter current password, hash it & compare to current hashed pass
	// We then take the user's new password, hash it & update it in the user records

	type UpdatePassword struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var user User
	var updatepass UpdatePassword

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := db.DB.First(&user, "user_id = ?", userID).Error
	if err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	// Check we have both old & new password
	err = json.NewDecoder(r.Body).Decode(&updatepass)
	if err != nil || updatepass.NewPassword == "" {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	// Make sure user's current password matches stored hash before updating
	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(updatepass.CurrentPassword))
	if err != nil {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	// Hash new password
	hashed, err := bcrypt.GenerateFromPassword([]byte(updatepass.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	// Update stored hashed_password
	db.DB.Model(&user).Update("hashed_password", string(hashed))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}

func RequestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	// Always answer 200 so the endpoint can't be used to probe for accounts.
	var user User
	if err := db.DB.First(&user, "email = ?", input.Email).Error; err == nil {
		reset := PasswordReset{
			Token:     utils.GenerateUUID(),
			UserID:    user.UserID,
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		if err := db.DB.Create(&reset).Error; err == nil {
			events.Publish(user.UserID, events.PasswordResetEvent{
				Kind:      events.KindPasswordReset,
				UserID:    user.UserID,
				Email:     user.Email,
				Token:     reset.Token,
				ExpiresAt: reset.ExpiresAt.Format(time.RFC3339),
			})
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "If that email exists, a reset link has been sent")
}

func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" || input.NewPassword == "" {
		http.Error(w, "Token and new password are required", http.StatusBadRequest)
		return
	}

	var reset PasswordReset
	if err := db.DB.First(&reset, "token = ?", input.Token).Error; err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}
	if reset.UsedAt != nil || reset.ExpiresAt.Before(time.Now()) {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).Where("user_id = ?", reset.UserID).
			Update("hashed_password", string(hashed)).Error; err != nil {
			return err
		}
		if err := tx.Model(&reset).Update("used_at", &now).Error; err != nil {
			return err
		}
		// Revoke any live session; the user must sign in again.
		return tx.Where("user_id = ?", reset.UserID).Delete(&Session{}).Error
	})
	if err != nil {
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password reset")
}

// ApproveCompanyHandler flips a company account's vetting flag. Admin only.
func ApproveCompanyHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if user.Role != string(gate.RoleCompany) {
		http.Error(w, "Only company accounts need approval", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&user).Update("approved", true).Error; err != nil {
		http.Error(w, "Failed to approve company", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Company approved")
}
