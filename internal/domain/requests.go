package domain

import "time"

type SubmitReportRequest struct {
	Type     ImpactType  `json:"type" validate:"required,oneof=vape smoke"`
	Location Coordinates `json:"location"`
	Context  string      `json:"context" validate:"omitempty,oneof=indoor outdoor"`
}

type SubmitReportResponse struct {
	ZoneID      string              `json:"zone_id"`
	Suggestions []RestorationAction `json:"suggestions"`
	Message     string              `json:"message"`
}

type CompleteActionRequest struct {
	ActionID string     `json:"action_id" validate:"required"`
	Points   int        `json:"points" validate:"min=0"`
	Type     ActionType `json:"type" validate:"required,oneof=vape smoke both"`
	ZoneID   string     `json:"zone_id" validate:"required"`
}

type CompleteActionResponse struct {
	TotalPoints      int    `json:"total_points"`
	ActionsCompleted int    `json:"actions_completed"`
	Feedback         string `json:"feedback"`
	Message          string `json:"message"`
}

type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	DateTime    time.Time  `json:"date_time" validate:"required"`
	Duration    int        `json:"duration" validate:"required,min=1"`
	TypeFocus   ActionType `json:"type_focus" validate:"required,oneof=vape smoke both"`
	ContextHint string     `json:"context_hint" validate:"omitempty,oneof=indoor outdoor"`
	Description string     `json:"description"`
}

type CreateEventResponse struct {
	Event   CommunityEvent `json:"event"`
	Message string         `json:"message"`
}

type ZoneActionsResponse struct {
	ZoneID       string              `json:"zone_id"`
	Zone         Zone                `json:"zone"`
	VapeState    RestorationState    `json:"vape_state"`
	VapeColor    string              `json:"vape_color"`
	VapeMessage  string              `json:"vape_message"`
	SmokeState   RestorationState    `json:"smoke_state"`
	SmokeColor   string              `json:"smoke_color"`
	SmokeMessage string              `json:"smoke_message"`
	Suggestions  []RestorationAction `json:"suggestions"`
}

type SeedDemoRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,lat"`
	Longitude *float64 `json:"longitude" validate:"omitempty,lng"`
}

type SeedDemoResponse struct {
	Message      string      `json:"message"`
	ZonesCreated int         `json:"zones_created"`
	Center       Coordinates `json:"center"`
}
