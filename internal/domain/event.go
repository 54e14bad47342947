package domain

import (
	"context"
	"time"
)

// Event represents a campus event. Capacity is nil for unlimited events;
// a zero capacity means literally zero seats and blocks all registration.
// CreatedBy is nil when the creating user has been deleted.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Capacity    *int      `json:"capacity"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Defaults applied when a create request leaves the fields empty.
const (
	DefaultCategory = "general"
	DefaultStatus   = "active"
)

// AnnotatedEvent is an event row joined with its registration aggregate and
// organizer name, as produced by a single repository query so that all
// derived fields reflect one consistent snapshot.
type AnnotatedEvent struct {
	Event
	OrganizerFirstName string
	OrganizerLastName  string
	RegistrationCount  int
	UserRegistered     bool
}

// EventView is the per-viewer projection served to presentation layers.
// SpotsAvailable is nil for unlimited-capacity events. IsFull is the single
// authoritative "event is full" computation; callers display it and never
// recompute it.
type EventView struct {
	Event
	Organizer         string `json:"organizer"`
	RegistrationCount int    `json:"registration_count"`
	UserRegistered    bool   `json:"user_registered"`
	IsCreator         bool   `json:"is_creator"`
	SpotsAvailable    *int   `json:"spots_available"`
	IsFull            bool   `json:"is_full"`
}

// CapacityState reports an event's admission state.
type CapacityState struct {
	EventID           int64 `json:"event_id"`
	Capacity          *int  `json:"capacity"`
	RegistrationCount int   `json:"registration_count"`
}

// SortOrder selects the event_date ordering of a list query.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// AnonymousViewer is the viewer id used for unauthenticated reads. No stored
// user ever has this id, so viewer-derived fields come out false.
const AnonymousViewer int64 = 0

// Predicate is a composable, parameterized filter condition evaluated against
// stored events. Clauses renders the predicate as SQL fragments over the
// given table alias, numbering bound-parameter placeholders from next; it
// returns the fragments, the bound values, and the next free placeholder
// index. Implementations must never interpolate user input into the
// fragments themselves.
type Predicate interface {
	Clauses(alias string, next int) (conds []string, args []any, nextArg int)
}

// Sanitizer normalizes untrusted free text before validation: trim,
// de-escape, HTML-escape.
type Sanitizer interface {
	Sanitize(text string) string
}

// EventRepository owns read/write access to events and registrations.
// Register, Unregister, and Delete are atomic with respect to concurrent
// invocations against the same event.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetCapacityState(ctx context.Context, eventID int64) (*CapacityState, error)
	// ListAnnotated returns events matching pred (nil means no restriction),
	// annotated for viewerID, ordered by event_date. A limit <= 0 means
	// unbounded.
	ListAnnotated(ctx context.Context, pred Predicate, viewerID int64, order SortOrder, limit int) ([]*AnnotatedEvent, error)
	// ListByCreator returns the creator's events annotated for the creator,
	// newest event_date first.
	ListByCreator(ctx context.Context, creatorID int64) ([]*AnnotatedEvent, error)
	// ListCategories returns the distinct categories in use, sorted.
	ListCategories(ctx context.Context) ([]string, error)
	Register(ctx context.Context, eventID, userID int64) (RegisterOutcome, error)
	Unregister(ctx context.Context, eventID, userID int64) (UnregisterOutcome, error)
	Delete(ctx context.Context, eventID, requesterID int64) (DeleteOutcome, error)
}
