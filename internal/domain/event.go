package domain

import (
	"fmt"
	"time"

	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// CommunityEvent is a scheduled restoration gathering. Location stays a general
// area description, never a specific venue. Events are immutable after creation.
type CommunityEvent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	DateTime    time.Time     `json:"date_time"`
	Duration    int           `json:"duration"` // minutes
	TypeFocus   ActionType    `json:"type_focus"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	ContextHint ActionContext `json:"context_hint,omitempty"`
}

func (ev *CommunityEvent) Validate() error {
	if ev.ID == "" {
		return fmt.Errorf("event id is required: %w", e.ErrInvalidInput)
	}
	if ev.Name == "" {
		return fmt.Errorf("event name is required: %w", e.ErrInvalidInput)
	}
	if ev.Location == "" {
		return fmt.Errorf("event location is required: %w", e.ErrInvalidInput)
	}
	if ev.DateTime.IsZero() {
		return fmt.Errorf("event date and time is required: %w", e.ErrInvalidInput)
	}
	if ev.Duration <= 0 {
		return fmt.Errorf("duration must be positive: %w", e.ErrInvalidInput)
	}
	if !ev.TypeFocus.Valid() {
		return fmt.Errorf("type focus must be vape, smoke or both: %w", e.ErrInvalidType)
	}
	if ev.ContextHint != "" && !ev.ContextHint.Valid() {
		return fmt.Errorf("context hint must be indoor or outdoor: %w", e.ErrInvalidInput)
	}
	if ev.Description == "" {
		return fmt.Errorf("event description is required: %w", e.ErrInvalidInput)
	}
	return nil
}
