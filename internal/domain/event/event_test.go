package event

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() CalendarEvent {
	return CalendarEvent{
		Title:     "Retiro anual",
		StartDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
		AllDay:    true,
		Type:      TypeRetreat,
		Scope:     ScopeGlobal,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CalendarEvent)
		wantField string
	}{
		{"valid event", func(e *CalendarEvent) {}, ""},
		{"missing title", func(e *CalendarEvent) { e.Title = "" }, "title"},
		{"unknown type", func(e *CalendarEvent) { e.Type = Type("PARTY") }, "type"},
		{"unknown scope", func(e *CalendarEvent) { e.Scope = Scope("PRIVATE") }, "scope"},
		{"team scope without team", func(e *CalendarEvent) { e.Scope = ScopeTeam }, "team_id"},
		{"end before start", func(e *CalendarEvent) {
			e.EndDate = e.StartDate.AddDate(0, 0, -1)
		}, "end_date"},
		{"spans more than a year", func(e *CalendarEvent) {
			e.EndDate = e.StartDate.AddDate(1, 0, 1)
		}, "end_date"},
		{"exactly one year is allowed", func(e *CalendarEvent) {
			e.EndDate = e.StartDate.AddDate(1, 0, 0)
		}, ""},
		{"malformed start time", func(e *CalendarEvent) {
			e.AllDay = false
			e.StartTime = sql.NullString{String: "25:00:00", Valid: true}
		}, "start_time"},
		{"time ignored for all-day events", func(e *CalendarEvent) {
			e.StartTime = sql.NullString{String: "nonsense", Valid: true}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)

			err := e.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestStartsAtEndsAt(t *testing.T) {
	e := validEvent()
	e.AllDay = false
	e.StartTime = sql.NullString{String: "18:30:00", Valid: true}

	assert.Equal(t, time.Date(2025, time.June, 10, 18, 30, 0, 0, time.UTC), e.StartsAt())
	// No end time means midnight of the end date.
	assert.Equal(t, time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC), e.EndsAt())
}
