package domain

import (
	"fmt"
	"time"

	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// CompletedAction is an append-only record of one finished restoration action.
type CompletedAction struct {
	ActionID  string     `json:"action_id"`
	Timestamp time.Time  `json:"timestamp"`
	Points    int        `json:"points"`
	Type      ActionType `json:"type"`
	ZoneID    string     `json:"zone_id"`
}

func (a CompletedAction) Validate() error {
	if a.ActionID == "" {
		return fmt.Errorf("action id is required: %w", e.ErrInvalidInput)
	}
	if a.Points < 0 {
		return fmt.Errorf("points cannot be negative: %w", e.ErrInvalidInput)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("action type must be vape, smoke or both: %w", e.ErrInvalidType)
	}
	if a.ZoneID == "" {
		return fmt.Errorf("zone id is required: %w", e.ErrInvalidInput)
	}
	return nil
}

// UserPoints is the community's daily ledger. One instance per day; replaced
// wholesale when the date rolls over.
type UserPoints struct {
	Date             string            `json:"date"` // YYYY-MM-DD
	TotalPoints      int               `json:"total_points"`
	ActionsCompleted int               `json:"actions_completed"`
	VapePoints       int               `json:"vape_points"`
	SmokePoints      int               `json:"smoke_points"`
	Actions          []CompletedAction `json:"actions"`
}

func NewUserPoints(date string) *UserPoints {
	return &UserPoints{Date: date, Actions: []CompletedAction{}}
}

// Credit applies the ledger rule for one completed action: the total and the
// action count grow once, while a "both" action credits the full amount to the
// vape and smoke sub-totals simultaneously.
func (p *UserPoints) Credit(a CompletedAction) {
	p.TotalPoints += a.Points
	p.ActionsCompleted++
	if a.Type == ActionVape || a.Type == ActionBoth {
		p.VapePoints += a.Points
	}
	if a.Type == ActionSmoke || a.Type == ActionBoth {
		p.SmokePoints += a.Points
	}
	p.Actions = append(p.Actions, a)
}

func (p *UserPoints) Validate() error {
	if p.Date == "" {
		return fmt.Errorf("date is required: %w", e.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", e.ErrInvalidInput)
	}
	if p.TotalPoints < 0 || p.ActionsCompleted < 0 || p.VapePoints < 0 || p.SmokePoints < 0 {
		return fmt.Errorf("point totals cannot be negative: %w", e.ErrInvalidInput)
	}
	// "both" actions count toward both sub-totals, so their sum can exceed the
	// total but never undercut it.
	if p.VapePoints+p.SmokePoints < p.TotalPoints {
		return fmt.Errorf("vape + smoke points cannot be less than total points: %w", e.ErrInvalidInput)
	}
	if len(p.Actions) != p.ActionsCompleted {
		return fmt.Errorf("actions completed must match actions list length: %w", e.ErrInvalidInput)
	}
	for _, a := range p.Actions {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
