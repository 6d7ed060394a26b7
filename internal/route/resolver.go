package route

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

const (
	// A custom route is eligible when a known place sits this close to the
	// user's position.
	customOriginSearchRadiusM = 100
	customOriginSnapRadiusM   = 50

	directLineMinutesPerKm = 12
)

// PlaceFinder is the slice of place lookup the resolver needs.
type PlaceFinder interface {
	Nearest(ctx context.Context, from geo.Point, radiusMeters float64) ([]place.WithDistance, error)
}

// Resolver obtains a route for a navigation session by trying, in order:
// an admin-curated custom route, the external directions provider, and a
// two-point direct line. Provider failures are recovered by the next
// strategy and never surfaced.
type Resolver struct {
	places   PlaceFinder
	store    Store
	provider Provider
	timeout  time.Duration
}

func NewResolver(places PlaceFinder, store Store, provider Provider, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{places: places, store: store, provider: provider, timeout: timeout}
}

func (r *Resolver) Resolve(ctx context.Context, origin geo.Point, dest place.Place, prefs Preferences) (Info, error) {
	strategies := []func(context.Context, geo.Point, place.Place, Preferences) (Info, bool){
		r.customRoute,
		r.providerRoute,
	}
	for _, strategy := range strategies {
		if info, ok := strategy(ctx, origin, dest, prefs); ok {
			return info, nil
		}
	}
	return r.directLine(origin, dest, prefs), nil
}

// customRoute applies when the user stands within customOriginSnapRadiusM of
// a known place that has a stored route to the destination. It never calls
// the external provider.
func (r *Resolver) customRoute(ctx context.Context, origin geo.Point, dest place.Place, _ Preferences) (Info, bool) {
	if r.places == nil || r.store == nil {
		return Info{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	nearby, err := r.places.Nearest(ctx, origin, customOriginSearchRadiusM)
	if err != nil || len(nearby) == 0 {
		return Info{}, false
	}
	start := nearby[0]
	if start.DistanceMeters > customOriginSnapRadiusM {
		return Info{}, false
	}

	info, _, err := r.store.FindBetween(ctx, start.ID, dest.ID)
	if err != nil {
		if !errors.Is(err, ErrNoCustomRoute) {
			log.Printf("custom route lookup failed: %v", err)
		}
		return Info{}, false
	}

	info.Points = append([]geo.Point{origin}, info.Points...)
	return info, true
}

func (r *Resolver) providerRoute(ctx context.Context, origin geo.Point, dest place.Place, prefs Preferences) (Info, bool) {
	if r.provider == nil {
		return Info{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	info, err := r.provider.Directions(ctx, origin, dest.Location(), prefs.Mode)
	if err != nil {
		log.Printf("route provider failed, falling back: %v", err)
		return Info{}, false
	}
	info.Accessible = prefs.Accessible
	return info, true
}

func (r *Resolver) directLine(origin geo.Point, dest place.Place, prefs Preferences) Info {
	dist := geo.Distance(origin, dest.Location())
	return Info{
		Points:          []geo.Point{origin, dest.Location()},
		DistanceMeters:  dist,
		DurationMinutes: int(math.Ceil(dist / 1000 * directLineMinutesPerKm)),
		Accessible:      prefs.Accessible,
		Source:          SourceDirect,
	}
}
