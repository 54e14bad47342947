package domain

import (
	"context"
	"time"
)

// RegistrationStatus is modeled as an enum for extensibility even though only
// one value exists today.
type RegistrationStatus string

const RegistrationRegistered RegistrationStatus = "registered"

// Registration is one user's registration for one event. Its identity is the
// (EventID, UserID) pair; the storage layer enforces at most one row per pair.
// Rows are created by Register, removed by Unregister or by cascading event
// deletion, and never updated in place.
type Registration struct {
	EventID      int64              `json:"event_id"`
	UserID       int64              `json:"user_id"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
}

// RegisterOutcome is the closed result set of a register attempt. Conflict
// and capacity results are normal, user-facing states, not errors.
type RegisterOutcome string

const (
	RegisterCreated           RegisterOutcome = "created"
	RegisterAlreadyRegistered RegisterOutcome = "already_registered"
	RegisterCapacityExceeded  RegisterOutcome = "capacity_exceeded"
	RegisterEventNotFound     RegisterOutcome = "not_found"
)

// UnregisterOutcome is the closed result set of an unregister attempt.
// Removing a registration that does not exist is a no-op outcome, not a fault.
type UnregisterOutcome string

const (
	UnregisterRemoved       UnregisterOutcome = "removed"
	UnregisterNotRegistered UnregisterOutcome = "not_registered"
)

// DeleteOutcome is the closed result set of an event deletion attempt.
type DeleteOutcome string

const (
	DeleteDeleted  DeleteOutcome = "deleted"
	DeleteNotOwner DeleteOutcome = "not_owner"
	DeleteNotFound DeleteOutcome = "not_found"
)

// EventDraft carries the fields of a create-event request before validation.
// Date is a calendar date (YYYY-MM-DD) and Time a 24-hour clock time (HH:MM);
// they combine into the event's wall-clock timestamp. A nil Capacity means
// unlimited.
type EventDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Capacity    *int   `json:"capacity"`
	Category    string `json:"category"`
}

// EventService exposes event lifecycle and registration operations to the
// presentation layer. The viewer id is a trusted identity supplied by the
// auth collaborator.
type EventService interface {
	CreateEvent(ctx context.Context, draft EventDraft, creatorID int64) (int64, error)
	Register(ctx context.Context, eventID, viewerID int64) (RegisterOutcome, error)
	Unregister(ctx context.Context, eventID, viewerID int64) (UnregisterOutcome, error)
	DeleteEvent(ctx context.Context, eventID, viewerID int64) (DeleteOutcome, error)
	CapacityState(ctx context.Context, eventID int64) (*CapacityState, error)
}
