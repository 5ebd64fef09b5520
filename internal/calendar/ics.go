package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"enscal/internal/domain/event"
)

const (
	icsDateLayout     = "20060102"
	icsDateTimeLayout = "20060102T150405"
)

// DefaultProdID identifies this exporter in generated calendars.
const DefaultProdID = "-//ENS Calendar//enscal//EN"

// ExportICS serializes explicit events and computed occurrences into a single
// iCalendar document. Output is deterministic: exporting the same merged set
// twice yields byte-identical text.
func ExportICS(events []event.CalendarEvent, occurrences []Occurrence, prodID string) (string, error) {
	if prodID == "" {
		prodID = DefaultProdID
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	for i := range events {
		cal.Children = append(cal.Children, eventComponent(&events[i]))
	}
	for i := range occurrences {
		cal.Children = append(cal.Children, occurrenceComponent(&occurrences[i]))
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

// eventComponent builds the VEVENT for an explicit event. All-day events use
// VALUE=DATE with an exclusive end one day past the stored (inclusive) end
// date. Timed events serialize the stored local times as floating date-times;
// no timezone conversion happens here because stored times are already local.
func eventComponent(e *event.CalendarEvent) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.UID)
	// DTSTAMP must be deterministic so repeated exports are byte-identical.
	ve.Props.SetDateTime(ical.PropDateTimeStamp, e.UpdatedAt.UTC().Truncate(time.Second))
	setSummary(ve, e.Title)
	if e.Description.Valid && e.Description.String != "" {
		setDescription(ve, e.Description.String)
	}

	if e.AllDay {
		setDateProp(ve, ical.PropDateTimeStart, e.StartDate)
		setDateProp(ve, ical.PropDateTimeEnd, e.EndDate.AddDate(0, 0, 1))
	} else {
		setLocalDateTimeProp(ve, ical.PropDateTimeStart, e.StartsAt())
		setLocalDateTimeProp(ve, ical.PropDateTimeEnd, e.EndsAt())
	}
	return ve
}

// occurrenceComponent builds the VEVENT for a computed occurrence. A yearly
// RRULE lets calendar clients recur it natively, so the export does not need
// multi-year pre-expansion.
func occurrenceComponent(o *Occurrence) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, OccurrenceUID(o))
	ve.Props.SetDateTime(ical.PropDateTimeStamp,
		time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, time.UTC))
	setSummary(ve, o.Title)

	setDateProp(ve, ical.PropDateTimeStart, o.Date)
	setDateProp(ve, ical.PropDateTimeEnd, o.Date.AddDate(0, 0, 1))

	rrule := ical.NewProp(ical.PropRecurrenceRule)
	rrule.Value = "FREQ=YEARLY"
	ve.Props.Set(rrule)
	return ve
}

// OccurrenceUID builds a stable UID that cannot collide with the UUIDs used
// by explicit events.
func OccurrenceUID(o *Occurrence) string {
	return fmt.Sprintf("%s-%d-%d@enscal", strings.ToLower(string(o.Kind)), o.SourceID, o.Date.Year())
}

func setDateProp(c *ical.Component, name string, d time.Time) {
	p := ical.NewProp(name)
	p.SetValueType(ical.ValueDate)
	p.Value = d.Format(icsDateLayout)
	c.Props.Set(p)
}

func setLocalDateTimeProp(c *ical.Component, name string, t time.Time) {
	p := ical.NewProp(name)
	p.Value = t.Format(icsDateTimeLayout)
	c.Props.Set(p)
}

func setSummary(c *ical.Component, s string) {
	c.Props.SetText(ical.PropSummary, normalizeNewlines(s))
}

func setDescription(c *ical.Component, s string) {
	c.Props.SetText(ical.PropDescription, normalizeNewlines(s))
}

// normalizeNewlines collapses every newline variant to "\n" so that text
// escaping produces a literal \n sequence for all of them.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
