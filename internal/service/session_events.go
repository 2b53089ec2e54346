package service

import "sync"

// SessionChange describes one identity transition: a login delivers the new
// user id with LoggedIn=true, a logout delivers the departing user id with
// LoggedIn=false. Each transition is published at most once.
type SessionChange struct {
	UserID   string `json:"user_id"`
	LoggedIn bool   `json:"logged_in"`
}

// SessionEvents fans session transitions out to subscribers. The presentation
// layer subscribes to refresh its view of the current user; the workflow
// services themselves stay synchronous and event-agnostic.
type SessionEvents struct {
	mu     sync.Mutex
	subs   map[int]chan SessionChange
	nextID int
}

// NewSessionEvents constructs an empty broadcaster.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{subs: make(map[int]chan SessionChange)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. The channel is buffered; a subscriber that falls behind misses
// events rather than blocking publishers.
func (e *SessionEvents) Subscribe() (<-chan SessionChange, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	ch := make(chan SessionChange, 8)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the change to every current subscriber without blocking.
func (e *SessionEvents) Publish(change SessionChange) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
