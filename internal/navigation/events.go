package navigation

// Outbound event kinds pushed over the live connection.
const (
	EventConnected           = "connected"
	EventSessionRestored     = "session_restored"
	EventNavigationStarted   = "navigation_started"
	EventNavigationUpdate    = "navigation_update"
	EventNavigationPaused    = "navigation_paused"
	EventNavigationResumed   = "navigation_resumed"
	EventNavigationCancelled = "navigation_cancelled"
	EventNavigationCompleted = "navigation_completed"
	EventRouteDeviation      = "route_deviation"
	EventRouteRecalculated   = "route_recalculated"
	EventNearbyPoint         = "nearby_point"
	EventNavigationError     = "navigation_error"
	EventAnnouncement        = "announcement"
)

// Error codes carried by navigation_error events.
const (
	ErrCodeNoActiveSession     = "no_active_session"
	ErrCodeDestinationNotFound = "destination_not_found"
	ErrCodeInvalidLocation     = "invalid_location"
	ErrCodeRecalculationFailed = "recalculation_failed"
	ErrCodeUnknownMessage      = "unknown_message"
	ErrCodeDestinationLookup   = "destination_lookup_failed"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorEvent(code, message string) Event {
	return Event{Type: EventNavigationError, Data: errorPayload{Code: code, Message: message}}
}
