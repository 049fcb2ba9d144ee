package domain

import "time"

// Event is implemented by everything published on the diagnostic event bus.
type Event interface {
	Type() string
}

// PermissionErrorEvent is published when a store write is rejected or fails
// after the calling operation already reported success (the purchase flow's
// independent writes). It carries enough context for an out-of-band
// consumer - the failing operation, the collection path and the payload the
// write attempted - and is never shown to the end user.
type PermissionErrorEvent struct {
	Operation  string // create, update, delete
	Path       string // collection path, e.g. "users/<id>/transactions"
	Payload    any    // the attempted write payload, may be nil
	Err        error
	OccurredAt time.Time
}

// Type implements Event.
func (PermissionErrorEvent) Type() string { return "PermissionErrorEvent" }

// CatalogChangedEvent is published after any catalog mutation (add, delete,
// reprice, seed). Live sessions subscribe to it and refresh their offer
// snapshots; ordering is latest-wins.
type CatalogChangedEvent struct {
	OccurredAt time.Time
}

// Type implements Event.
func (CatalogChangedEvent) Type() string { return "CatalogChangedEvent" }

// ProfileChangedEvent is published after a profile write so that a live
// session belonging to the edited user can refresh its cached profile.
type ProfileChangedEvent struct {
	UserID     string
	OccurredAt time.Time
}

// Type implements Event.
func (ProfileChangedEvent) Type() string { return "ProfileChangedEvent" }
