package service

import (
	"math/rand"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

var indoorActions = []domain.RestorationAction{
	{ID: "indoor_1", Title: "Open a window", Description: "Let fresh air in for 5 minutes", Points: 10, Context: "indoor"},
	{ID: "indoor_2", Title: "Move near ventilation", Description: "Find a spot with better air flow", Points: 5, Context: "indoor"},
	{ID: "indoor_3", Title: "Relocate to open area", Description: "Step into a more spacious zone", Points: 8, Context: "indoor"},
	{ID: "indoor_4", Title: "Use a fan", Description: "Improve air circulation", Points: 7, Context: "indoor"},
}

var outdoorActions = []domain.RestorationAction{
	{ID: "outdoor_1", Title: "Step away", Description: "Move from dense areas", Points: 5, Context: "outdoor"},
	{ID: "outdoor_2", Title: "Choose open air", Description: "Find a well-ventilated spot", Points: 8, Context: "outdoor"},
	{ID: "outdoor_3", Title: "Move upwind", Description: "Position yourself upwind", Points: 10, Context: "outdoor"},
	{ID: "outdoor_4", Title: "Find fresh air", Description: "Locate a clearer space", Points: 7, Context: "outdoor"},
}

var universalActions = []domain.RestorationAction{
	{ID: "universal_1", Title: "Wear a face mask", Description: "Breathe cleaner air", Points: 5, Context: "both"},
	{ID: "universal_2", Title: "Encourage others", Description: "Share air restoration tips", Points: 10, Context: "both"},
}

// SuggestActions returns 3-5 restoration actions, shuffled for variety.
// Context-specific actions are included when a context is known; universal
// actions are always candidates. With no context the whole pool is eligible.
// The impact type is accepted for future differentiation but does not narrow
// the pool today.
func SuggestActions(context domain.ActionContext, _ domain.ImpactType) []domain.RestorationAction {
	var candidates []domain.RestorationAction

	switch context {
	case domain.ContextIndoor:
		candidates = append(candidates, indoorActions...)
	case domain.ContextOutdoor:
		candidates = append(candidates, outdoorActions...)
	}
	candidates = append(candidates, universalActions...)
	if context == "" {
		candidates = append(candidates, indoorActions...)
		candidates = append(candidates, outdoorActions...)
	}

	shuffled := make([]domain.RestorationAction, len(candidates))
	copy(shuffled, candidates)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	if n > 5 {
		n = 5
	}
	if n < 3 {
		n = len(shuffled) // pools guarantee at least 3 in practice
	}
	return shuffled[:n]
}
