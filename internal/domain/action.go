package domain

// RestorationAction is a suggested step a user can take to help a zone heal.
type RestorationAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Context     string `json:"context"` // indoor, outdoor or both
}
