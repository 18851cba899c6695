package domain

import (
	"fmt"
	"time"

	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// GeoBounds is the rectangle covered by a zone, in degrees.
type GeoBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

func (b GeoBounds) Validate() error {
	if b.South < -90 || b.South > 90 || b.North < -90 || b.North > 90 {
		return fmt.Errorf("bounds latitude out of range: %w", e.ErrInvalidCoordinates)
	}
	if b.West < -180 || b.West > 180 || b.East < -180 || b.East > 180 {
		return fmt.Errorf("bounds longitude out of range: %w", e.ErrInvalidCoordinates)
	}
	if b.South > b.North {
		return fmt.Errorf("south must not exceed north: %w", e.ErrInvalidInput)
	}
	return nil
}

// Zone aggregates anonymous air-impact signals for one grid cell.
//
// Only aggregated debt/restore scores are kept. No per-report data, no report
// context and no user identity ever lands here.
type Zone struct {
	ID           string    `json:"id"`
	Bounds       GeoBounds `json:"bounds"`
	VapeDebt     float64   `json:"vape_debt"`
	VapeRestore  float64   `json:"vape_restore"`
	SmokeDebt    float64   `json:"smoke_debt"`
	SmokeRestore float64   `json:"smoke_restore"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (z *Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("zone id is required: %w", e.ErrInvalidInput)
	}
	if err := z.Bounds.Validate(); err != nil {
		return err
	}
	if z.VapeDebt < 0 || z.VapeRestore < 0 || z.SmokeDebt < 0 || z.SmokeRestore < 0 {
		return fmt.Errorf("zone scores must be non-negative: %w", e.ErrInvalidInput)
	}
	return nil
}

// ZoneView is the only shape a zone leaves the service in: aggregated scores
// plus states derived per track.
type ZoneView struct {
	Zone
	VapeState    RestorationState `json:"vape_state"`
	VapeColor    string           `json:"vape_color"`
	VapeMessage  string           `json:"vape_message"`
	SmokeState   RestorationState `json:"smoke_state"`
	SmokeColor   string           `json:"smoke_color"`
	SmokeMessage string           `json:"smoke_message"`
}
