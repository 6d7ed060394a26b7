package geo

import "math"

const earthRadiusMeters = 6371000

// Walking pace used for ETA estimates, roughly 5 km/h.
const walkingPaceMetersPerMinute = 83.33

// Point is an immutable WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies in the WGS84 coordinate range.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the haversine great-circle distance between two points in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WalkingMinutes estimates walking time for a distance in meters, rounded up.
func WalkingMinutes(distanceMeters float64) int {
	if distanceMeters <= 0 {
		return 0
	}
	return int(math.Ceil(distanceMeters / walkingPaceMetersPerMinute))
}

var compassSectors = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// BearingDirection buckets the bearing from origin to dest into one of eight
// 45-degree sectors centered on the cardinal points (sector edges at 22.5
// degree offsets). Identical points resolve to "N".
func BearingDirection(origin, dest Point) string {
	deltaLat := dest.Lat - origin.Lat
	deltaLng := dest.Lng - origin.Lng

	angle := math.Atan2(deltaLng, deltaLat) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	sector := int(math.Mod(angle+22.5, 360) / 45)
	return compassSectors[sector]
}
