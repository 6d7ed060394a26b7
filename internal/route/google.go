package route

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"

	maps "googlemaps.github.io/maps"
)

// Provider obtains a route from an external directions service.
type Provider interface {
	Directions(ctx context.Context, origin, dest geo.Point, mode string) (Info, error)
}

// GoogleProvider resolves routes through the Google Directions API.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleProvider{client: client}, nil
}

func (g *GoogleProvider) Directions(ctx context.Context, origin, dest geo.Point, mode string) (Info, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", dest.Lat, dest.Lng),
		Mode:        travelMode(mode),
		Optimize:    true,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return Info{}, err
	}
	if len(routes) == 0 {
		return Info{}, errors.New("provider returned no routes")
	}

	best := routes[0]
	info := Info{Source: SourceProvider}
	var totalMeters int
	var totalMinutes float64
	for _, leg := range best.Legs {
		for _, step := range leg.Steps {
			info.Points = append(info.Points, geo.Point{Lat: step.StartLocation.Lat, Lng: step.StartLocation.Lng})
		}
		info.Points = append(info.Points, geo.Point{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng})
		totalMeters += leg.Distance.Meters
		totalMinutes += leg.Duration.Minutes()
	}
	if len(info.Points) < 2 {
		return Info{}, errors.New("provider route has too few points")
	}

	info.DistanceMeters = float64(totalMeters)
	info.DurationMinutes = int(math.Ceil(totalMinutes))
	return info, nil
}

func travelMode(mode string) maps.Mode {
	if mode == "driving" {
		return maps.TravelModeDriving
	}
	return maps.TravelModeWalking
}
