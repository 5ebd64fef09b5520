package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"enscal/internal/domain/event"
)

// Custom errors
var ErrEventNotFound = fmt.Errorf("calendar event not found")

type PostgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `id, uid, title, description, start_date, end_date, start_time, end_time,
               all_day, event_type, scope, team_id, created_by, color, icon, created_at, updated_at`

func (r *PostgresEventRepository) Create(ctx context.Context, e *event.CalendarEvent) error {
	query := `INSERT INTO calendar_events
               (uid, title, description, start_date, end_date, start_time, end_time,
                all_day, event_type, scope, team_id, created_by, color, icon)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.UID, e.Title, e.Description, e.StartDate, e.EndDate, e.StartTime, e.EndTime,
		e.AllDay, e.Type, e.Scope, e.TeamID, e.CreatedBy, e.Color, e.Icon,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating calendar event: %w", err)
	}
	return nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (*event.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`
	e := &event.CalendarEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.UID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime,
		&e.AllDay, &e.Type, &e.Scope, &e.TeamID, &e.CreatedBy, &e.Color, &e.Icon, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting calendar event by ID: %w", err)
	}
	return e, nil
}

func (r *PostgresEventRepository) Update(ctx context.Context, e *event.CalendarEvent) error {
	query := `UPDATE calendar_events
               SET title = $1, description = $2, start_date = $3, end_date = $4,
                   start_time = $5, end_time = $6, all_day = $7, event_type = $8,
                   scope = $9, team_id = $10, color = $11, icon = $12, updated_at = NOW()
               WHERE id = $13
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartDate, e.EndDate, e.StartTime, e.EndTime,
		e.AllDay, e.Type, e.Scope, e.TeamID, e.Color, e.Icon, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrEventNotFound
		}
		return fmt.Errorf("error updating calendar event: %w", err)
	}
	return nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting calendar event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *PostgresEventRepository) ListInRange(ctx context.Context, start, end time.Time) ([]event.CalendarEvent, error) {
	// An event intersects the range when it starts before the range ends and
	// ends after the range starts (dates inclusive on both sides).
	query := `SELECT ` + eventColumns + ` FROM calendar_events
               WHERE start_date <= $2 AND end_date >= $1
               ORDER BY start_date, id`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing calendar events in range: %w", err)
	}
	defer rows.Close()

	events := make([]event.CalendarEvent, 0)
	for rows.Next() {
		var e event.CalendarEvent
		if err := rows.Scan(
			&e.ID, &e.UID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime,
			&e.AllDay, &e.Type, &e.Scope, &e.TeamID, &e.CreatedBy, &e.Color, &e.Icon, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning calendar event: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}
	return events, nil
}
