package interviews

import (
	"errors"
	"fmt"
	"time"
)

// SlotInput is one proposed meeting time as submitted by the student.
// ScheduledAt is RFC 3339.
type SlotInput struct {
	ScheduledAt     string `json:"scheduled_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location"`
	MeetingLink     string `json:"meeting_link"`
	Notes           string `json:"notes"`
}

const (
	defaultDurationMinutes = 30
	maxDurationMinutes     = 8 * 60
)

var (
	ErrNoSlots       = errors.New("at least one slot is required")
	ErrTooManySlots  = fmt.Errorf("at most %d slots may be proposed", MaxProposedSlots)
	ErrDuplicateSlot = errors.New("duplicate slot timestamps")
)

// ValidateSlots parses and checks a proposed batch: 1-3 slots, every
// timestamp parseable, in the future, and distinct. It returns the slots as
// unsaved schedule rows.
func ValidateSlots(slots []SlotInput, now time.Time) ([]InterviewSchedule, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	if len(slots) > MaxProposedSlots {
		return nil, ErrTooManySlots
	}

	seen := make(map[int64]struct{}, len(slots))
	out := make([]InterviewSchedule, 0, len(slots))

	for i, slot := range slots {
		if slot.ScheduledAt == "" {
			return nil, fmt.Errorf("slot %d: scheduled_at is required", i+1)
		}
		at, err := time.Parse(time.RFC3339, slot.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("slot %d: invalid scheduled_at: %w", i+1, err)
		}
		if !at.After(now) {
			return nil, fmt.Errorf("slot %d: scheduled_at must be in the future", i+1)
		}

		key := at.Unix()
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateSlot
		}
		seen[key] = struct{}{}

		duration := slot.DurationMinutes
		if duration == 0 {
			duration = defaultDurationMinutes
		}
		if duration < 0 || duration > maxDurationMinutes {
			return nil, fmt.Errorf("slot %d: duration must be between 1 and %d minutes", i+1, maxDurationMinutes)
		}

		out = append(out, InterviewSchedule{
			ScheduledAt:     at,
			DurationMinutes: duration,
			Location:        slot.Location,
			MeetingLink:     slot.MeetingLink,
			Notes:           slot.Notes,
			Status:          StatusPending,
		})
	}

	return out, nil
}
