package route

import (
	"strings"
	"testing"

	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

func TestCustomInstructions(t *testing.T) {
	info := Info{
		Source:          SourceCustom,
		Accessible:      true,
		Difficulty:      "medium",
		Notes:           []string{"Cross the main plaza"},
		DistanceMeters:  250,
		DurationMinutes: 4,
	}
	dest := place.Place{Name: "Biblioteca"}

	lines := Instructions(info, geo.Point{}, dest)
	if lines[0] != "Cross the main plaza" {
		t.Fatalf("expected notes first, got %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "accessible") || !strings.Contains(joined, "medium") {
		t.Fatalf("expected accessibility and difficulty lines: %v", lines)
	}
	if !strings.Contains(joined, "Biblioteca") {
		t.Fatalf("expected destination name: %v", lines)
	}
}

func TestProviderInstructionsFiveLines(t *testing.T) {
	info := Info{Source: SourceProvider, DistanceMeters: 420, DurationMinutes: 6}
	lines := Instructions(info, geo.Point{}, place.Place{Name: "Comedor"})
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Comedor") {
		t.Fatalf("expected destination in first line: %q", lines[0])
	}
}

func TestDirectInstructionsIncludeBearingAndBuilding(t *testing.T) {
	origin := geo.Point{Lat: -12.0450, Lng: -76.9530}
	dest := place.Place{Name: "Aula Magna", Building: "Pabellon C", Floor: "2", Lat: -12.0450, Lng: -76.9512}
	info := Info{Source: SourceDirect, DistanceMeters: 200, DurationMinutes: 3}

	lines := Instructions(info, origin, dest)
	if !strings.Contains(lines[0], "Head E") {
		t.Fatalf("expected eastward bearing, got %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Pabellon C") || !strings.Contains(joined, "Floor: 2") {
		t.Fatalf("expected building and floor lines: %v", lines)
	}
}
