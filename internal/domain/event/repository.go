package event

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving calendar events.
type Repository interface {
	Create(ctx context.Context, e *CalendarEvent) error
	GetByID(ctx context.Context, id int64) (*CalendarEvent, error)
	Update(ctx context.Context, e *CalendarEvent) error
	Delete(ctx context.Context, id int64) error
	// ListInRange returns events whose [StartDate, EndDate] window intersects
	// the inclusive [start, end] date range, ordered by start date.
	ListInRange(ctx context.Context, start, end time.Time) ([]CalendarEvent, error)
}
