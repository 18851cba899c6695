package domain

import (
	"fmt"
	"time"

	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// Coordinates is a validated latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %v: %w", c.Latitude, e.ErrInvalidCoordinates)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %v: %w", c.Longitude, e.ErrInvalidCoordinates)
	}
	return nil
}

// AirImpactReport is transient. It lives for one request, is never persisted,
// and its Context is consumed only to pick action suggestions.
type AirImpactReport struct {
	Type      ImpactType
	Location  Coordinates
	Timestamp time.Time
	Context   ActionContext // empty when the reporter gave none
}

func NewAirImpactReport(typ ImpactType, loc Coordinates, context ActionContext) (AirImpactReport, error) {
	r := AirImpactReport{
		Type:      typ,
		Location:  loc,
		Timestamp: time.Now().UTC(),
		Context:   context,
	}
	if err := r.Validate(); err != nil {
		return AirImpactReport{}, err
	}
	return r, nil
}

func (r AirImpactReport) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("report type must be vape or smoke: %w", e.ErrInvalidType)
	}
	if err := r.Location.Validate(); err != nil {
		return err
	}
	if r.Context != "" && !r.Context.Valid() {
		return fmt.Errorf("context must be indoor or outdoor: %w", e.ErrInvalidInput)
	}
	return nil
}
