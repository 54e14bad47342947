package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

const pqUniqueViolation = "23505"

// Register admits userID to eventID as one atomic unit: the event row lock
// serializes admissions per event, so the capacity comparison and the insert
// observe the same snapshot. The (event_id, user_id) primary key is the final
// correctness guarantee; a unique violation surfacing despite the checks maps
// to AlreadyRegistered, never to a duplicate row.
func (r *eventRepository) Register(ctx context.Context, eventID, userID int64) (domain.RegisterOutcome, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", classify(fmt.Errorf("begin register tx: %w", err))
	}
	defer tx.Rollback()

	var capacity sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RegisterEventNotFound, nil
		}
		return "", classify(fmt.Errorf("lock event: %w", err))
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return "", classify(fmt.Errorf("check registration: %w", err))
	}
	if exists {
		return domain.RegisterAlreadyRegistered, nil
	}

	if capacity.Valid {
		var count int64
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND status = 'registered'`,
			eventID,
		).Scan(&count)
		if err != nil {
			return "", classify(fmt.Errorf("count registrations: %w", err))
		}
		if count >= capacity.Int64 {
			return domain.RegisterCapacityExceeded, nil
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_registrations (event_id, user_id, status, registered_at) VALUES ($1, $2, $3, NOW())`,
		eventID, userID, domain.RegistrationRegistered,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.RegisterAlreadyRegistered, nil
		}
		return "", classify(fmt.Errorf("insert registration: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return "", classify(fmt.Errorf("commit register tx: %w", err))
	}
	return domain.RegisterCreated, nil
}

// Unregister is idempotent: deleting an absent registration reports
// NotRegistered rather than failing.
func (r *eventRepository) Unregister(ctx context.Context, eventID, userID int64) (domain.UnregisterOutcome, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return "", classify(fmt.Errorf("delete registration: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", classify(err)
	}
	if rows == 0 {
		return domain.UnregisterNotRegistered, nil
	}
	return domain.UnregisterRemoved, nil
}

// Delete verifies ownership and removes the event with its registrations as
// one logical unit. The schema's ON DELETE CASCADE backs up the explicit
// registration delete; neither can be observed half-applied.
func (r *eventRepository) Delete(ctx context.Context, eventID, requesterID int64) (domain.DeleteOutcome, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", classify(fmt.Errorf("begin delete tx: %w", err))
	}
	defer tx.Rollback()

	var createdBy sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT created_by FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DeleteNotFound, nil
		}
		return "", classify(fmt.Errorf("lock event: %w", err))
	}
	if !createdBy.Valid || createdBy.Int64 != requesterID {
		return domain.DeleteNotOwner, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_registrations WHERE event_id = $1`, eventID); err != nil {
		return "", classify(fmt.Errorf("delete registrations: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return "", classify(fmt.Errorf("delete event: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return "", classify(fmt.Errorf("commit delete tx: %w", err))
	}
	return domain.DeleteDeleted, nil
}
