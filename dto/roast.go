package dto

import (
	"time"

	"roastedin/models"
)

// RoastRequest is the POST body for requesting a roast
type RoastRequest struct {
	ProfileURL string `json:"profile_url" binding:"required"`
}

// RoastDTO exposes the minimal fields needed for API consumers
// ID is a hex string to keep transport simple; internal status flags
// and timing counters are intentionally hidden.
type RoastDTO struct {
	ID          string    `json:"id"`
	ProfileURL  string    `json:"profile_url"`
	ProfileSlug string    `json:"profile_slug"`
	ProfileName string    `json:"profile_name"`
	Headline    string    `json:"headline"`
	Roast       string    `json:"roast"`
	ModelName   string    `json:"model_name"`
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
}

// NewRoastDTO constructs RoastDTO from models.Roast
func NewRoastDTO(m models.Roast) RoastDTO {
	return RoastDTO{
		ID:          m.ID.Hex(),
		ProfileURL:  m.ProfileURL,
		ProfileSlug: m.ProfileSlug,
		ProfileName: m.ProfileName,
		Headline:    m.Headline,
		Roast:       m.RoastText,
		ModelName:   m.ModelName,
		GeneratedAt: m.GeneratedAt,
	}
}
