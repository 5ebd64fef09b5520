package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"enscal/internal/calendar"
	"enscal/internal/domain/event"
	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

// CalendarService answers the two read queries: events in an explicit range
// and upcoming events within N days. Both run the same pipeline: visibility
// filter, recurrence expansion, merge with explicit events, formatting.
type CalendarService struct {
	events    event.Repository
	directory member.DirectoryRepository
	styles    calendar.StyleConfig
	loc       *time.Location
	logger    *logrus.Logger
	now       func() time.Time
}

func NewCalendarService(
	er event.Repository,
	dr member.DirectoryRepository,
	styles calendar.StyleConfig,
	loc *time.Location,
	logger *logrus.Logger,
) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{
		events:    er,
		directory: dr,
		styles:    styles,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// EventsInRange returns the merged explicit+computed set for [start, end],
// formatted for the calendar grid and scoped to the viewer. A degenerate
// range yields an empty result, never an error.
func (s *CalendarService) EventsInRange(ctx context.Context, v viewer.Context, start, end time.Time, teamOverride int64) ([]calendar.FormattedEvent, error) {
	out := make([]calendar.FormattedEvent, 0)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return out, nil
	}

	explicit, occs, members, couples, err := s.rangeData(ctx, v, start, end, teamOverride)
	if err != nil {
		return nil, err
	}

	for _, e := range explicit {
		out = append(out, calendar.FormatEvent(e, v, s.styles))
	}
	out = append(out, s.formatOccurrences(occs, members, couples)...)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Upcoming returns the merge for [today, today+days], each item annotated
// with the number of days until it starts and sorted ascending by that value.
func (s *CalendarService) Upcoming(ctx context.Context, v viewer.Context, days int) ([]calendar.FormattedEvent, error) {
	out := make([]calendar.FormattedEvent, 0)
	if days < 0 {
		return out, nil
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	end := today.AddDate(0, 0, days)

	explicit, occs, members, couples, err := s.rangeData(ctx, v, today, end, 0)
	if err != nil {
		return nil, err
	}

	for _, e := range explicit {
		fe := calendar.FormatEvent(e, v, s.styles)
		d := calendar.DaysBetween(today, e.StartDate)
		if d < 0 {
			d = 0 // already running
		}
		fe.ExtendedProps.DaysUntil = &d
		out = append(out, fe)
	}
	// formatOccurrences preserves order, so occurrences and their formatted
	// counterparts line up by index.
	for i, fe := range s.formatOccurrences(occs, members, couples) {
		d := calendar.DaysBetween(today, occs[i].Date)
		fe.ExtendedProps.DaysUntil = &d
		out = append(out, fe)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := *out[i].ExtendedProps.DaysUntil, *out[j].ExtendedProps.DaysUntil
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// rangeData fetches and scopes everything both queries need: visible explicit
// events, expanded occurrences, and the redacted directory records backing
// them.
func (s *CalendarService) rangeData(ctx context.Context, v viewer.Context, start, end time.Time, teamOverride int64) (
	[]event.CalendarEvent, []calendar.Occurrence, map[int64]member.Member, map[int64]member.Couple, error,
) {
	stored, err := s.events.ListInRange(ctx, start, end)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	explicit := make([]event.CalendarEvent, 0, len(stored))
	for _, e := range stored {
		if calendar.EventVisible(e, v) {
			explicit = append(explicit, e)
		}
	}

	allMembers, err := s.directory.ListActiveMembers(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list members: %w", err)
	}
	allCouples, err := s.directory.ListActiveCouples(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list couples: %w", err)
	}

	visMembers := calendar.VisibleMembers(allMembers, v, teamOverride)
	visCouples := calendar.VisibleCouples(allCouples, v, teamOverride)

	members := make(map[int64]member.Member, len(visMembers))
	for _, m := range visMembers {
		members[m.ID] = calendar.RedactMember(m, v)
	}
	couples := make(map[int64]member.Couple, len(visCouples))
	for _, c := range visCouples {
		couples[c.ID] = calendar.RedactCouple(c, v)
	}

	occs := calendar.Expand(calendar.BirthdaySources(visMembers), []calendar.Kind{calendar.KindBirth}, start, end)
	occs = append(occs, calendar.Expand(calendar.CoupleSources(visCouples), calendar.AnniversaryKinds, start, end)...)

	return explicit, occs, members, couples, nil
}

func (s *CalendarService) formatOccurrences(occs []calendar.Occurrence, members map[int64]member.Member, couples map[int64]member.Couple) []calendar.FormattedEvent {
	out := make([]calendar.FormattedEvent, 0, len(occs))
	for _, o := range occs {
		var person *member.Member
		var couple *member.Couple
		switch o.Kind {
		case calendar.KindBirth:
			if m, ok := members[o.SourceID]; ok {
				person = &m
			}
		default:
			if c, ok := couples[o.SourceID]; ok {
				couple = &c
			}
		}
		out = append(out, calendar.FormatOccurrence(o, person, couple, s.styles))
	}
	return out
}
