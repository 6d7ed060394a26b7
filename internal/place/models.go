package place

import (
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Building    string    `json:"building,omitempty"`
	Floor       string    `json:"floor,omitempty"`
	Type        string    `json:"type"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location returns the place coordinate as a geo point.
func (p Place) Location() geo.Point {
	return geo.Point{Lat: p.Lat, Lng: p.Lng}
}

// WithDistance is a place annotated with its distance from a reference
// coordinate and the estimated walking time to cover it.
type WithDistance struct {
	Place
	DistanceMeters float64 `json:"distance_meters"`
	WalkingMinutes int     `json:"walking_minutes"`
}
