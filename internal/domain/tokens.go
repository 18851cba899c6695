package domain

// ImpactType is a pollutant track. Zones keep fully separate accumulators per track.
type ImpactType string

const (
	ImpactVape  ImpactType = "vape"
	ImpactSmoke ImpactType = "smoke"
)

func (t ImpactType) Valid() bool {
	return t == ImpactVape || t == ImpactSmoke
}

// ActionType is the focus of a restoration action. "both" credits both tracks in full.
type ActionType string

const (
	ActionVape  ActionType = "vape"
	ActionSmoke ActionType = "smoke"
	ActionBoth  ActionType = "both"
)

func (t ActionType) Valid() bool {
	return t == ActionVape || t == ActionSmoke || t == ActionBoth
}

// ActionContext narrows suggestions to the reporter's surroundings. It is consumed
// for suggestion selection only and must never reach persisted state.
type ActionContext string

const (
	ContextIndoor  ActionContext = "indoor"
	ContextOutdoor ActionContext = "outdoor"
)

func (c ActionContext) Valid() bool {
	return c == ContextIndoor || c == ContextOutdoor
}

// RestorationState is derived from a zone's accumulators on every read; it is
// never stored.
type RestorationState string

const (
	StateNeedsRestoration RestorationState = "needs_restoration"
	StateHealing          RestorationState = "healing"
	StateRecovered        RestorationState = "recovered"
)
