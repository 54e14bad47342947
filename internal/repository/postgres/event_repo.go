package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// classify wraps timeouts, cancellations, and connection failures as
// transient so callers can retry with backoff.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, event_date, location, capacity, category, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var capacity sql.NullInt64
	if e.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*e.Capacity), Valid: true}
	}
	var createdBy sql.NullInt64
	if e.CreatedBy != nil {
		createdBy = sql.NullInt64{Int64: *e.CreatedBy, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.EventDate, e.Location, capacity,
		e.Category, e.Status, createdBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return classify(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT id, title, description, event_date, location, capacity, category, status, created_by, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var capacity, createdBy sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Location,
		&capacity, &e.Category, &e.Status, &createdBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if createdBy.Valid {
		e.CreatedBy = &createdBy.Int64
	}
	return e, nil
}

func (r *eventRepository) GetCapacityState(ctx context.Context, eventID int64) (*domain.CapacityState, error) {
	query := `
		SELECT e.capacity, COUNT(er.user_id)
		FROM events e
		LEFT JOIN event_registrations er ON er.event_id = e.id AND er.status = 'registered'
		WHERE e.id = $1
		GROUP BY e.id
	`
	state := &domain.CapacityState{EventID: eventID}
	var capacity sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&capacity, &state.RegistrationCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classify(err)
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		state.Capacity = &c
	}
	return state, nil
}

// annotatedColumns is the select list shared by the annotated list queries.
// The registration aggregate and the viewer membership test come from the
// same query, so every derived field reflects one snapshot. $1 is always the
// viewer id.
const annotatedColumns = `
		SELECT e.id, e.title, e.description, e.event_date, e.location, e.capacity,
			e.category, e.status, e.created_by, e.created_at, e.updated_at,
			COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
			COUNT(er.user_id) AS registration_count,
			COALESCE(BOOL_OR(er.user_id = $1), FALSE) AS user_registered
		FROM events e
		LEFT JOIN users u ON u.id = e.created_by
		LEFT JOIN event_registrations er ON er.event_id = e.id AND er.status = 'registered'
`

const annotatedGroupBy = ` GROUP BY e.id, u.first_name, u.last_name`

func (r *eventRepository) ListAnnotated(ctx context.Context, pred domain.Predicate, viewerID int64, order domain.SortOrder, limit int) ([]*domain.AnnotatedEvent, error) {
	args := []any{viewerID}
	next := 2
	var conds []string
	if pred != nil {
		var predArgs []any
		conds, predArgs, next = pred.Clauses("e", next)
		args = append(args, predArgs...)
	}

	query := annotatedColumns
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += annotatedGroupBy
	if order == domain.SortDescending {
		query += " ORDER BY e.event_date DESC"
	} else {
		query += " ORDER BY e.event_date ASC"
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", next)
		args = append(args, limit)
	}

	return r.queryAnnotated(ctx, query, args...)
}

func (r *eventRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*domain.AnnotatedEvent, error) {
	query := annotatedColumns + " WHERE e.created_by = $2" + annotatedGroupBy + " ORDER BY e.event_date DESC"
	return r.queryAnnotated(ctx, query, creatorID, creatorID)
}

func (r *eventRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT category FROM events WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, classify(err)
		}
		categories = append(categories, c)
	}
	return categories, classify(rows.Err())
}

func (r *eventRepository) queryAnnotated(ctx context.Context, query string, args ...any) ([]*domain.AnnotatedEvent, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	events := make([]*domain.AnnotatedEvent, 0)
	for rows.Next() {
		ev := &domain.AnnotatedEvent{}
		var capacity, createdBy sql.NullInt64
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.EventDate, &ev.Location,
			&capacity, &ev.Category, &ev.Status, &createdBy, &ev.CreatedAt, &ev.UpdatedAt,
			&ev.OrganizerFirstName, &ev.OrganizerLastName,
			&ev.RegistrationCount, &ev.UserRegistered,
		); err != nil {
			return nil, classify(err)
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			ev.Capacity = &c
		}
		if createdBy.Valid {
			ev.CreatedBy = &createdBy.Int64
		}
		events = append(events, ev)
	}
	return events, classify(rows.Err())
}
