package navigation

import (
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/route"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)

// Session is one user's in-progress navigation. The registry owns all
// sessions; nothing else holds a reference across calls.
type Session struct {
	UserID          string            `json:"user_id"`
	Destination     place.Place       `json:"destination"`
	StartLocation   geo.Point         `json:"start_location"`
	CurrentLocation geo.Point         `json:"current_location"`
	Route           route.Info        `json:"route"`
	Preferences     route.Preferences `json:"preferences"`
	Status          Status            `json:"status"`
	StartTime       time.Time         `json:"start_time"`
}

// Snapshot returns a copy safe to hand to the dispatcher.
func (s *Session) Snapshot() Session {
	return *s
}

// HistoryEntry records a finished session for aggregate statistics. It is
// never used to resume a session.
type HistoryEntry struct {
	UserID          string    `json:"user_id"`
	DestinationName string    `json:"destination_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Outcome         Outcome   `json:"outcome"`
}

type Stats struct {
	ActiveSessions         int     `json:"active_sessions"`
	TotalRecorded          int     `json:"total_recorded"`
	TotalCompleted         int     `json:"total_completed"`
	TotalCancelled         int     `json:"total_cancelled"`
	AverageDurationMinutes float64 `json:"average_duration_minutes"`
}
