package route

import (
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

// Route sources, in resolution priority order.
const (
	SourceCustom   = "custom"
	SourceProvider = "provider"
	SourceDirect   = "direct"
)

// Info is a resolved route. It is immutable once attached to a navigation
// session; recalculation replaces it wholesale.
type Info struct {
	Points          []geo.Point `json:"points"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationMinutes int         `json:"duration_minutes"`
	Accessible      bool        `json:"accessible"`
	Difficulty      string      `json:"difficulty,omitempty"`
	Notes           []string    `json:"notes,omitempty"`
	Source          string      `json:"source"`
}

type Preferences struct {
	Mode       string `json:"mode,omitempty"`
	Accessible bool   `json:"accessible,omitempty"`
}

// CustomRoute is an admin-curated path between two known places.
type CustomRoute struct {
	ID              string      `json:"id"`
	FromPlaceID     string      `json:"from_place_id"`
	ToPlaceID       string      `json:"to_place_id"`
	Points          []geo.Point `json:"points"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationMinutes int         `json:"duration_minutes"`
	Accessible      bool        `json:"accessible"`
	Difficulty      string      `json:"difficulty,omitempty"`
	Notes           []string    `json:"notes,omitempty"`
	CreatedBy       string      `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
}
