package navigation

import (
	"context"
	"errors"
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/place"
	"github.com/JhonKenma/backend-tecsupNav/internal/route"
	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

const (
	arrivalRadiusMeters      = 10
	deviationThresholdMeters = 50
	proximityRadiusMeters    = 30
)

// RouteResolver obtains a route for a session.
type RouteResolver interface {
	Resolve(ctx context.Context, origin geo.Point, dest place.Place, prefs route.Preferences) (route.Info, error)
}

// PlaceDirectory is the slice of place lookup the engine needs.
type PlaceDirectory interface {
	FindByID(ctx context.Context, id string) (place.Place, error)
	FindByName(ctx context.Context, query string) (place.Place, error)
	Nearest(ctx context.Context, from geo.Point, radiusMeters float64) ([]place.WithDistance, error)
}

// Dispatcher pushes events to live connections.
type Dispatcher interface {
	Send(userID string, event Event)
	Broadcast(event Event, userIDs []string)
}

// Engine reacts to inbound session messages. It never polls; every state
// change is driven by a message from the owning user's connection.
type Engine struct {
	registry   *Registry
	places     PlaceDirectory
	resolver   RouteResolver
	dispatcher Dispatcher
	now        func() time.Time
}

func NewEngine(registry *Registry, places PlaceDirectory, resolver RouteResolver, dispatcher Dispatcher, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		registry:   registry,
		places:     places,
		resolver:   resolver,
		dispatcher: dispatcher,
		now:        now,
	}
}

type StartRequest struct {
	Destination     string
	CurrentLocation geo.Point
	Preferences     route.Preferences
}

type startedPayload struct {
	Session      Session  `json:"session"`
	Instructions []string `json:"instructions"`
}

type updatePayload struct {
	CurrentLocation geo.Point `json:"current_location"`
	RemainingMeters float64   `json:"remaining_meters"`
	EtaMinutes      int       `json:"eta_minutes"`
	Session         Session   `json:"session"`
}

type completedPayload struct {
	Destination     string `json:"destination"`
	DurationMinutes int    `json:"duration_minutes"`
}

type deviationPayload struct {
	CurrentLocation geo.Point `json:"current_location"`
	DistanceMeters  float64   `json:"distance_from_route_meters"`
}

type recalculatedPayload struct {
	Route        route.Info `json:"route"`
	Instructions []string   `json:"instructions"`
}

// Start creates a session for the user, replacing any prior one. The
// destination is resolved by id first, then by fuzzy name. An unresolved
// destination is the only hard failure.
func (e *Engine) Start(ctx context.Context, userID string, req StartRequest) {
	if !req.CurrentLocation.Valid() {
		e.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "current location is missing or out of range"))
		return
	}

	dest, err := e.places.FindByID(ctx, req.Destination)
	if errors.Is(err, place.ErrNotFound) {
		dest, err = e.places.FindByName(ctx, req.Destination)
	}
	if errors.Is(err, place.ErrNotFound) {
		e.dispatcher.Send(userID, errorEvent(ErrCodeDestinationNotFound, "destination not found"))
		return
	}
	if err != nil {
		e.dispatcher.Send(userID, errorEvent(ErrCodeDestinationLookup, "destination lookup failed"))
		return
	}

	info, err := e.resolver.Resolve(ctx, req.CurrentLocation, dest, req.Preferences)
	if err != nil {
		e.dispatcher.Send(userID, errorEvent(ErrCodeRecalculationFailed, "could not compute a route"))
		return
	}

	session := &Session{
		UserID:          userID,
		Destination:     dest,
		StartLocation:   req.CurrentLocation,
		CurrentLocation: req.CurrentLocation,
		Route:           info,
		Preferences:     req.Preferences,
		Status:          StatusActive,
		StartTime:       e.now(),
	}

	e.registry.Do(userID, func() {
		e.registry.Put(session)
	})

	e.dispatcher.Send(userID, Event{Type: EventNavigationStarted, Data: startedPayload{
		Session:      session.Snapshot(),
		Instructions: route.Instructions(info, req.CurrentLocation, dest),
	}})
}

// HandleLocation runs the update pipeline for one inbound position.
func (e *Engine) HandleLocation(ctx context.Context, userID string, location geo.Point) {
	if !location.Valid() {
		e.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "location is out of range"))
		return
	}

	e.registry.Do(userID, func() {
		session, ok := e.registry.Get(userID)
		if !ok || session.Status != StatusActive {
			e.dispatcher.Send(userID, errorEvent(ErrCodeNoActiveSession, "no active navigation session"))
			return
		}

		session.CurrentLocation = location
		remaining := geo.Distance(location, session.Destination.Location())
		eta := geo.WalkingMinutes(remaining)

		if remaining < arrivalRadiusMeters {
			entry, _ := e.registry.End(userID, OutcomeCompleted)
			e.dispatcher.Send(userID, Event{Type: EventNavigationCompleted, Data: completedPayload{
				Destination:     session.Destination.Name,
				DurationMinutes: entry.DurationMinutes,
			}})
			return
		}

		if offRoute := minDistanceToRoute(location, session.Route.Points); offRoute > deviationThresholdMeters {
			e.dispatcher.Send(userID, Event{Type: EventRouteDeviation, Data: deviationPayload{
				CurrentLocation: location,
				DistanceMeters:  offRoute,
			}})
			e.recalculate(ctx, userID, session)
		}

		e.dispatcher.Send(userID, Event{Type: EventNavigationUpdate, Data: updatePayload{
			CurrentLocation: location,
			RemainingMeters: remaining,
			EtaMinutes:      eta,
			Session:         session.Snapshot(),
		}})

		// Proximity check is best-effort; lookup failures are swallowed.
		if nearby, err := e.places.Nearest(ctx, location, proximityRadiusMeters); err == nil && len(nearby) > 0 {
			e.dispatcher.Send(userID, Event{Type: EventNearbyPoint, Data: nearby[0]})
		}
	})
}

// Recalculate forces a resolver re-run from the given location.
func (e *Engine) Recalculate(ctx context.Context, userID string, location geo.Point) {
	if !location.Valid() {
		e.dispatcher.Send(userID, errorEvent(ErrCodeInvalidLocation, "location is out of range"))
		return
	}

	e.registry.Do(userID, func() {
		session, ok := e.registry.Get(userID)
		if !ok || session.Status != StatusActive {
			e.dispatcher.Send(userID, errorEvent(ErrCodeNoActiveSession, "no active navigation session"))
			return
		}
		session.CurrentLocation = location
		e.recalculate(ctx, userID, session)
	})
}

// recalculate replaces the session route wholesale on success. On failure
// the old route stays in place and the session continues.
func (e *Engine) recalculate(ctx context.Context, userID string, session *Session) {
	info, err := e.resolver.Resolve(ctx, session.CurrentLocation, session.Destination, session.Preferences)
	if err != nil {
		e.dispatcher.Send(userID, errorEvent(ErrCodeRecalculationFailed, "could not recalculate route, keeping previous route"))
		return
	}

	session.Route = info
	e.dispatcher.Send(userID, Event{Type: EventRouteRecalculated, Data: recalculatedPayload{
		Route:        info,
		Instructions: route.Instructions(info, session.CurrentLocation, session.Destination),
	}})
}

func (e *Engine) Pause(userID string) {
	e.registry.Do(userID, func() {
		if !e.registry.SetActive(userID, false) {
			e.dispatcher.Send(userID, errorEvent(ErrCodeNoActiveSession, "no active navigation session"))
			return
		}
		e.dispatcher.Send(userID, Event{Type: EventNavigationPaused})
	})
}

func (e *Engine) Resume(userID string) {
	e.registry.Do(userID, func() {
		if !e.registry.SetActive(userID, true) {
			e.dispatcher.Send(userID, errorEvent(ErrCodeNoActiveSession, "no active navigation session"))
			return
		}
		e.dispatcher.Send(userID, Event{Type: EventNavigationResumed})
	})
}

func (e *Engine) Cancel(userID string) {
	e.registry.Do(userID, func() {
		entry, ok := e.registry.End(userID, OutcomeCancelled)
		if !ok {
			e.dispatcher.Send(userID, errorEvent(ErrCodeNoActiveSession, "no active navigation session"))
			return
		}
		e.dispatcher.Send(userID, Event{Type: EventNavigationCancelled, Data: completedPayload{
			Destination:     entry.DestinationName,
			DurationMinutes: entry.DurationMinutes,
		}})
	})
}

// Connected greets a fresh connection and restores its session view if one
// survived a reconnect.
func (e *Engine) Connected(userID string) {
	e.dispatcher.Send(userID, Event{Type: EventConnected})
	e.registry.Do(userID, func() {
		if session, ok := e.registry.Get(userID); ok {
			e.dispatcher.Send(userID, Event{Type: EventSessionRestored, Data: session.Snapshot()})
		}
	})
}

// Disconnected cleans up the user's session. The connection is gone, so no
// event is emitted.
func (e *Engine) Disconnected(userID string) {
	e.registry.Do(userID, func() {
		e.registry.End(userID, OutcomeCancelled)
	})
}

// Announce broadcasts an operational message to every active session.
func (e *Engine) Announce(message string) int {
	users := e.registry.ActiveUsers()
	e.dispatcher.Broadcast(Event{Type: EventAnnouncement, Data: map[string]string{"message": message}}, users)
	return len(users)
}

func (e *Engine) Stats() Stats {
	stats := e.registry.History().Stats()
	stats.ActiveSessions = e.registry.Count()
	return stats
}

func minDistanceToRoute(from geo.Point, points []geo.Point) float64 {
	min := -1.0
	for _, p := range points {
		if d := geo.Distance(from, p); min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
