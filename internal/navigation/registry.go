package navigation

import (
	"math"
	"sync"
	"time"

	"github.com/JhonKenma/backend-tecsupNav/internal/shared/geo"
)

// Registry owns every active session, keyed by user id, at most one per
// user. Cross-user operations need no coordination; mutation of a single
// user's session is serialized through Do.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    map[string]*userLock
	history  *History
	now      func() time.Time
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewRegistry(history *History, now func() time.Time) *Registry {
	if history == nil {
		history = NewHistory()
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions: map[string]*Session{},
		locks:    map[string]*userLock{},
		now:      now,
		history:  history,
	}
}

// Do runs fn while holding the per-user lock, serializing an in-flight
// recalculation against the next location update for the same user.
// Entries are reference-counted: waiters hold a ref, and the last one out
// removes the entry, so the map only holds users with work in flight.
func (r *Registry) Do(userID string, fn func()) {
	r.mu.Lock()
	lock, ok := r.locks[userID]
	if !ok {
		lock = &userLock{}
		r.locks[userID] = lock
	}
	lock.refs++
	r.mu.Unlock()

	lock.mu.Lock()
	defer func() {
		lock.mu.Unlock()

		r.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(r.locks, userID)
		}
		r.mu.Unlock()
	}()
	fn()
}

// Put stores the session, replacing any prior session for the same user.
func (r *Registry) Put(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = session
}

func (r *Registry) Get(userID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

// SetActive toggles Active/Paused. No-op when the user has no session.
func (r *Registry) SetActive(userID string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok {
		return false
	}
	if active {
		session.Status = StatusActive
	} else {
		session.Status = StatusPaused
	}
	return true
}

// UpdateLocation mutates the session's current location. No-op when the
// session is absent or paused.
func (r *Registry) UpdateLocation(userID string, location geo.Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || session.Status != StatusActive {
		return false
	}
	session.CurrentLocation = location
	return true
}

// End removes the session and records a history entry with the elapsed
// wall-clock duration rounded up to whole minutes.
func (r *Registry) End(userID string, outcome Outcome) (HistoryEntry, bool) {
	r.mu.Lock()
	session, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()

	if !ok {
		return HistoryEntry{}, false
	}

	endTime := r.now()
	minutes := int(math.Ceil(endTime.Sub(session.StartTime).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	entry := HistoryEntry{
		UserID:          session.UserID,
		DestinationName: session.Destination.Name,
		StartTime:       session.StartTime,
		EndTime:         endTime,
		DurationMinutes: minutes,
		Outcome:         outcome,
	}
	r.history.Append(entry)
	return entry, true
}

func (r *Registry) ActiveUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.sessions))
	for userID, session := range r.sessions {
		if session.Status == StatusActive {
			users = append(users, userID)
		}
	}
	return users
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) History() *History {
	return r.history
}
