package event

import (
	"database/sql"
	"fmt"
	"time"
)

// Type classifies an explicitly authored calendar event.
type Type string

const (
	TypeGeneral     Type = "GENERAL"
	TypeFormation   Type = "FORMATION"
	TypeRetreat     Type = "RETREAT"
	TypeTeamMeeting Type = "TEAM_MEETING"
)

// Scope says whether an event applies to a single team or to everyone.
type Scope string

const (
	ScopeTeam   Scope = "TEAM"
	ScopeGlobal Scope = "GLOBAL"
)

// CalendarEvent is an explicitly authored event, as stored.
// StartDate/EndDate carry the civil dates (end inclusive); StartTime/EndTime
// carry optional local times of day as "HH:MM:SS" strings and are only
// meaningful when AllDay is false.
type CalendarEvent struct {
	ID          int64
	UID         string // stable iCalendar UID, assigned at creation
	Title       string
	Description sql.NullString
	StartDate   time.Time
	EndDate     time.Time
	StartTime   sql.NullString
	EndTime     sql.NullString
	AllDay      bool
	Type        Type
	Scope       Scope
	TeamID      sql.NullInt64
	CreatedBy   int64
	Color       sql.NullString
	Icon        sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError is a recoverable, field-scoped validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidTypes lists the accepted event types.
var ValidTypes = []Type{TypeGeneral, TypeFormation, TypeRetreat, TypeTeamMeeting}

func validType(t Type) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of an event before it is written.
func (e *CalendarEvent) Validate() error {
	if e.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !validType(e.Type) {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown event type %q", e.Type)}
	}
	if e.Scope != ScopeTeam && e.Scope != ScopeGlobal {
		return &ValidationError{Field: "scope", Message: fmt.Sprintf("unknown scope %q", e.Scope)}
	}
	if e.Scope == ScopeTeam && !e.TeamID.Valid {
		return &ValidationError{Field: "team_id", Message: "team is required for team-scoped events"}
	}
	if e.EndDate.Before(e.StartDate) {
		return &ValidationError{Field: "end_date", Message: "end date must not be before start date"}
	}
	if e.EndDate.After(e.StartDate.AddDate(1, 0, 0)) {
		return &ValidationError{Field: "end_date", Message: "events may not span more than one year"}
	}
	if !e.AllDay {
		if e.StartTime.Valid {
			if _, err := time.Parse("15:04:05", e.StartTime.String); err != nil {
				return &ValidationError{Field: "start_time", Message: "start time must be HH:MM:SS"}
			}
		}
		if e.EndTime.Valid {
			if _, err := time.Parse("15:04:05", e.EndTime.String); err != nil {
				return &ValidationError{Field: "end_time", Message: "end time must be HH:MM:SS"}
			}
		}
	}
	return nil
}

// StartsAt combines the start date with the start time of day, if any.
func (e *CalendarEvent) StartsAt() time.Time {
	return combine(e.StartDate, e.StartTime)
}

// EndsAt combines the end date with the end time of day, if any.
func (e *CalendarEvent) EndsAt() time.Time {
	return combine(e.EndDate, e.EndTime)
}

func combine(d time.Time, tod sql.NullString) time.Time {
	if !tod.Valid {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	t, err := time.Parse("15:04:05", tod.String)
	if err != nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, d.Location())
}
