package service

import (
	"fmt"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

const (
	// DebtIncrement is added to a zone's debt for every accepted report.
	DebtIncrement = 10.0

	// Net score strictly above RecoveredThreshold classifies as recovered;
	// strictly above HealingThreshold as healing; anything else needs
	// restoration. Both comparisons are strict, so exactly 20 is still
	// healing and exactly -20 still needs restoration.
	RecoveredThreshold = 20.0
	HealingThreshold   = -20.0
)

// ClassifyZone derives the restoration state for one pollutant track. The
// debt/restore pair is selected per branch so the vape computation can never
// touch smoke fields and vice versa.
func ClassifyZone(z domain.Zone, typ domain.ImpactType) (domain.RestorationState, error) {
	switch typ {
	case domain.ImpactVape:
		return classifyNet(z.VapeRestore - z.VapeDebt), nil
	case domain.ImpactSmoke:
		return classifyNet(z.SmokeRestore - z.SmokeDebt), nil
	default:
		return "", fmt.Errorf("service.ClassifyZone: %q: %w", typ, e.ErrInvalidType)
	}
}

func classifyNet(net float64) domain.RestorationState {
	switch {
	case net > RecoveredThreshold:
		return domain.StateRecovered
	case net > HealingThreshold:
		return domain.StateHealing
	default:
		return domain.StateNeedsRestoration
	}
}

// StateColor returns the map color for a restoration state.
func StateColor(state domain.RestorationState) (string, error) {
	switch state {
	case domain.StateNeedsRestoration:
		return "#F4D03F", nil
	case domain.StateHealing:
		return "#52BE80", nil
	case domain.StateRecovered:
		return "#5DADE2", nil
	default:
		return "", fmt.Errorf("service.StateColor: %q: %w", state, e.ErrInvalidState)
	}
}

// StateMessage returns the supportive, non-accusatory message for a state.
func StateMessage(state domain.RestorationState) (string, error) {
	switch state {
	case domain.StateNeedsRestoration:
		return "This space needs care", nil
	case domain.StateHealing:
		return "This space is healing", nil
	case domain.StateRecovered:
		return "This space has recovered", nil
	default:
		return "", fmt.Errorf("service.StateMessage: %q: %w", state, e.ErrInvalidState)
	}
}
