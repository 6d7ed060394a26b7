package route

import (
	"fmt"

	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

// Instructions renders best-effort textual guidance for a resolved route.
// The text is advisory only; the route points are the authoritative data.
func Instructions(info Info, origin geo.Point, dest place.Place) []string {
	switch info.Source {
	case SourceCustom:
		return customInstructions(info, dest)
	case SourceProvider:
		return providerInstructions(info, dest)
	default:
		return directInstructions(info, origin, dest)
	}
}

func customInstructions(info Info, dest place.Place) []string {
	var lines []string
	lines = append(lines, info.Notes...)
	if info.Accessible {
		lines = append(lines, "This route is wheelchair accessible.")
	}
	if info.Difficulty != "" {
		lines = append(lines, fmt.Sprintf("Difficulty: %s.", info.Difficulty))
	}
	lines = append(lines,
		fmt.Sprintf("Follow the marked path to %s.", dest.Name),
		fmt.Sprintf("Estimated time: %d min (%.0f m).", info.DurationMinutes, info.DistanceMeters),
	)
	return lines
}

func providerInstructions(info Info, dest place.Place) []string {
	return []string{
		fmt.Sprintf("Head toward %s.", dest.Name),
		"Follow the suggested route on your map.",
		"Stay on campus walkways where possible.",
		fmt.Sprintf("Estimated time: %d min.", info.DurationMinutes),
		fmt.Sprintf("Total distance: %.0f m.", info.DistanceMeters),
	}
}

func directInstructions(info Info, origin geo.Point, dest place.Place) []string {
	direction := geo.BearingDirection(origin, dest.Location())
	lines := []string{
		fmt.Sprintf("Head %s for about %.0f m (%d min).", direction, info.DistanceMeters, info.DurationMinutes),
	}
	if dest.Building != "" {
		lines = append(lines, fmt.Sprintf("Building: %s.", dest.Building))
	}
	if dest.Floor != "" {
		lines = append(lines, fmt.Sprintf("Floor: %s.", dest.Floor))
	}
	return lines
}
