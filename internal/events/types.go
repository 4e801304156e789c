package events

// Event kinds consumed by the mail worker.
const (
	KindApplicationSubmitted = "application_submitted"
	KindInterviewConfirmed   = "interview_confirmed"
	KindPasswordReset        = "password_reset"
)

type ApplicationSubmittedEvent struct {
	Kind          string `json:"kind"`
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	StudentID     string `json:"student_id"`
	CompanyID     string `json:"company_id"`
}

type InterviewConfirmedEvent struct {
	Kind          string `json:"kind"`
	ScheduleID    string `json:"schedule_id"`
	ApplicationID string `json:"application_id"`
	StudentID     string `json:"student_id"`
	ScheduledAt   string `json:"scheduled_at"`
}

type PasswordResetEvent struct {
	Kind      string `json:"kind"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
