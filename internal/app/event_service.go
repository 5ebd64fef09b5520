package app

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"enscal/internal/domain/event"
	"enscal/internal/domain/viewer"
)

// Custom application-level errors for the event service.
var (
	ErrNotPermitted  = fmt.Errorf("viewer is not permitted to perform this action")
	ErrProtectedItem = fmt.Errorf("computed calendar items cannot be modified")
)

const (
	dateOnlyLayout = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// EventService owns the CalendarEvent mutation surface. Every write is a
// single transactional statement; concurrent edits resolve last-write-wins.
type EventService struct {
	events event.Repository
	loc    *time.Location
	logger *logrus.Logger
}

func NewEventService(er event.Repository, loc *time.Location, logger *logrus.Logger) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{events: er, loc: loc, logger: logger}
}

// EventInput is the caller-supplied shape for create and update.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
	Type        string `json:"type"`
	Scope       string `json:"scope"`
	TeamID      int64  `json:"team_id"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// RescheduleInput carries a drag-and-drop move/resize. Start is either a
// date-only value (all-day drop) or an ISO-8601 timestamp, possibly
// UTC-suffixed. End is optional; when absent the original duration is kept.
type RescheduleInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Create validates and persists a new explicit event on behalf of the viewer.
func (s *EventService) Create(ctx context.Context, v viewer.Context, in EventInput) (*event.CalendarEvent, error) {
	if !viewer.Allowed(v.Role, viewer.ModuleCalendar, viewer.ActionCreate) {
		return nil, ErrNotPermitted
	}

	e, err := s.eventFromInput(in)
	if err != nil {
		return nil, err
	}
	e.UID = uuid.NewString()
	e.CreatedBy = v.MemberID

	if err := s.checkScope(v, e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"event_id": e.ID, "member_id": v.MemberID}).Info("Calendar event created")
	return e, nil
}

// Update rewrites an existing event. Only elevated roles or the creator may
// touch it.
func (s *EventService) Update(ctx context.Context, v viewer.Context, id int64, in EventInput) (*event.CalendarEvent, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canMutate(v, existing) {
		return nil, ErrNotPermitted
	}

	updated, err := s.eventFromInput(in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.UID = existing.UID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.checkScope(v, updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.events.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"event_id": id, "member_id": v.MemberID}).Info("Calendar event updated")
	return updated, nil
}

// Delete removes an event. Only elevated roles or the creator may do so.
func (s *EventService) Delete(ctx context.Context, v viewer.Context, id int64) error {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canMutate(v, existing) {
		return ErrNotPermitted
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"event_id": id, "member_id": v.MemberID}).Info("Calendar event deleted")
	return nil
}

// Reschedule applies a drag-and-drop move. The item id arrives as a string
// because grid ids mix persisted events (numeric) with computed occurrences
// (composite); the latter are rejected before any parsing of the payload.
func (s *EventService) Reschedule(ctx context.Context, v viewer.Context, itemID string, in RescheduleInput) (*event.CalendarEvent, error) {
	id, err := strconv.ParseInt(itemID, 10, 64)
	if err != nil {
		return nil, ErrProtectedItem
	}

	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canMutate(v, existing) {
		return nil, ErrNotPermitted
	}

	origStart := existing.StartsAt()
	origEnd := existing.EndsAt()
	duration := origEnd.Sub(origStart)

	if err := s.applyTimestamp(existing, in.Start, true); err != nil {
		return nil, err
	}
	if in.End != "" {
		if err := s.applyTimestamp(existing, in.End, false); err != nil {
			return nil, err
		}
	} else {
		// No explicit end: reapply the original duration to the new start.
		newEnd := existing.StartsAt().Add(duration)
		setDatePart(existing, newEnd, false)
		if !existing.AllDay {
			existing.EndTime = sql.NullString{String: newEnd.Format("15:04:05"), Valid: true}
		}
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to reschedule event: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"event_id": id, "member_id": v.MemberID}).Info("Calendar event rescheduled")
	return existing, nil
}

// applyTimestamp parses a reschedule value into the event. Date-only values
// flip the event to all-day; timestamps are normalized into the server's
// configured zone first, because stored times are local civil times and a
// naive reading of a UTC-marked instant shifts the date for non-UTC zones.
func (s *EventService) applyTimestamp(e *event.CalendarEvent, value string, isStart bool) error {
	field := "end"
	if isStart {
		field = "start"
	}

	if len(value) == len(dateOnlyLayout) {
		d, err := time.ParseInLocation(dateOnlyLayout, value, s.loc)
		if err != nil {
			return &event.ValidationError{Field: field, Message: "invalid date"}
		}
		e.AllDay = true
		setDatePart(e, d, isStart)
		e.StartTime = sql.NullString{}
		e.EndTime = sql.NullString{}
		return nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Zone-naive grids emit timestamps without an offset; read those as
		// server-local civil time.
		t, err = time.ParseInLocation(dateTimeLayout, value, s.loc)
		if err != nil {
			return &event.ValidationError{Field: field, Message: "invalid timestamp"}
		}
	}
	local := t.In(s.loc)
	e.AllDay = false
	setDatePart(e, local, isStart)
	tod := sql.NullString{String: local.Format("15:04:05"), Valid: true}
	if isStart {
		e.StartTime = tod
	} else {
		e.EndTime = tod
	}
	return nil
}

func setDatePart(e *event.CalendarEvent, t time.Time, isStart bool) {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if isStart {
		e.StartDate = d
	} else {
		e.EndDate = d
	}
}

// checkScope enforces who may author what: global events need an elevated
// role, and standard members may only write into their own team.
func (s *EventService) checkScope(v viewer.Context, e *event.CalendarEvent) error {
	if e.Scope == event.ScopeGlobal && !v.IsElevated() {
		return &event.ValidationError{Field: "scope", Message: "only responsible couples may create global events"}
	}
	if e.Scope == event.ScopeTeam && !v.IsElevated() {
		if !e.TeamID.Valid || e.TeamID.Int64 != v.TeamID {
			return &event.ValidationError{Field: "team_id", Message: "events may only be created for your own team"}
		}
	}
	return nil
}

func (s *EventService) canMutate(v viewer.Context, e *event.CalendarEvent) bool {
	return v.IsElevated() || e.CreatedBy == v.MemberID
}

func (s *EventService) eventFromInput(in EventInput) (*event.CalendarEvent, error) {
	start, err := time.Parse(dateOnlyLayout, in.StartDate)
	if err != nil {
		return nil, &event.ValidationError{Field: "start_date", Message: "start date must be YYYY-MM-DD"}
	}
	endStr := in.EndDate
	if endStr == "" {
		endStr = in.StartDate
	}
	end, err := time.Parse(dateOnlyLayout, endStr)
	if err != nil {
		return nil, &event.ValidationError{Field: "end_date", Message: "end date must be YYYY-MM-DD"}
	}

	e := &event.CalendarEvent{
		Title:     strings.TrimSpace(in.Title),
		StartDate: start,
		EndDate:   end,
		AllDay:    in.AllDay,
		Type:      event.Type(in.Type),
		Scope:     event.Scope(in.Scope),
	}
	if in.Description != "" {
		e.Description = sql.NullString{String: in.Description, Valid: true}
	}
	if in.TeamID != 0 {
		e.TeamID = sql.NullInt64{Int64: in.TeamID, Valid: true}
	}
	if in.Color != "" {
		e.Color = sql.NullString{String: in.Color, Valid: true}
	}
	if in.Icon != "" {
		e.Icon = sql.NullString{String: in.Icon, Valid: true}
	}
	if !in.AllDay {
		if in.StartTime != "" {
			e.StartTime = sql.NullString{String: normalizeTimeOfDay(in.StartTime), Valid: true}
		}
		if in.EndTime != "" {
			e.EndTime = sql.NullString{String: normalizeTimeOfDay(in.EndTime), Valid: true}
		}
	}
	return e, nil
}

// normalizeTimeOfDay accepts "HH:MM" or "HH:MM:SS" and stores "HH:MM:SS".
func normalizeTimeOfDay(s string) string {
	if len(s) == len("15:04") {
		return s + ":00"
	}
	return s
}
