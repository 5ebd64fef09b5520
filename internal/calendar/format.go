package calendar

import (
	"fmt"
	"strings"

	"enscal/internal/domain/event"
	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Style holds the display configuration for one event type or anniversary kind.
type Style struct {
	Color       string `json:"color"`
	BorderColor string `json:"borderColor"`
	TextColor   string `json:"textColor"`
	Icon        string `json:"icon"`
}

// StyleConfig maps an event type or anniversary kind to its display style.
// Keys are the string values of event.Type and calendar.Kind.
type StyleConfig map[string]Style

// fallbackStyle is used when a type has no configuration entry.
var fallbackStyle = Style{Color: "#3788d8", BorderColor: "#3788d8", TextColor: "#ffffff", Icon: "calendar"}

// DefaultStyles returns the built-in color/icon configuration.
func DefaultStyles() StyleConfig {
	return StyleConfig{
		string(event.TypeGeneral):     {Color: "#3788d8", BorderColor: "#2c6cad", TextColor: "#ffffff", Icon: "calendar"},
		string(event.TypeFormation):   {Color: "#8e44ad", BorderColor: "#71368a", TextColor: "#ffffff", Icon: "book"},
		string(event.TypeRetreat):     {Color: "#16a085", BorderColor: "#117a65", TextColor: "#ffffff", Icon: "sun"},
		string(event.TypeTeamMeeting): {Color: "#e67e22", BorderColor: "#b9651b", TextColor: "#ffffff", Icon: "users"},
		string(KindBirth):             {Color: "#f1c40f", BorderColor: "#c29d0b", TextColor: "#000000", Icon: "cake"},
		string(KindWedding):           {Color: "#e74c3c", BorderColor: "#b93d30", TextColor: "#ffffff", Icon: "rings"},
		string(KindAdoption):          {Color: "#2ecc71", BorderColor: "#25a25a", TextColor: "#ffffff", Icon: "heart"},
	}
}

func (c StyleConfig) styleFor(key string) Style {
	if s, ok := c[key]; ok {
		return s
	}
	return fallbackStyle
}

// PersonView is the directory projection embedded in formatted events.
// Contact fields are empty (and omitted from JSON) when redacted upstream.
type PersonView struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CoupleView embeds both partner projections.
type CoupleView struct {
	ID       int64      `json:"id"`
	PartnerA PersonView `json:"partnerA"`
	PartnerB PersonView `json:"partnerB"`
}

// ExtendedProps carries the type-specific payload of a formatted event.
type ExtendedProps struct {
	Kind        string      `json:"kind"`
	EventType   string      `json:"eventType,omitempty"`
	Scope       string      `json:"scope,omitempty"`
	TeamID      int64       `json:"teamId,omitempty"`
	Description string      `json:"description,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Years       int         `json:"years,omitempty"`
	DaysUntil   *int        `json:"daysUntil,omitempty"`
	Member      *PersonView `json:"member,omitempty"`
	Couple      *CoupleView `json:"couple,omitempty"`
}

// FormattedEvent is the uniform projection consumed by the calendar grid.
type FormattedEvent struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	AllDay        bool          `json:"allDay"`
	Color         string        `json:"color"`
	BorderColor   string        `json:"borderColor"`
	TextColor     string        `json:"textColor"`
	Editable      bool          `json:"editable"`
	Deletable     bool          `json:"deletable"`
	ExtendedProps ExtendedProps `json:"extendedProps"`
}

// FormatEvent projects an explicit calendar event for the grid. Editability
// follows the role rules: elevated roles edit anything, otherwise only the
// creator may touch an event.
func FormatEvent(e event.CalendarEvent, v viewer.Context, styles StyleConfig) FormattedEvent {
	style := styles.styleFor(string(e.Type))
	color := style.Color
	if e.Color.Valid && e.Color.String != "" {
		color = e.Color.String
	}
	icon := style.Icon
	if e.Icon.Valid && e.Icon.String != "" {
		icon = e.Icon.String
	}

	var start, end string
	if e.AllDay {
		start = e.StartDate.Format(dateLayout)
		end = e.EndDate.Format(dateLayout)
	} else {
		start = e.StartsAt().Format(dateTimeLayout)
		end = e.EndsAt().Format(dateTimeLayout)
	}

	canMutate := v.IsElevated() || e.CreatedBy == v.MemberID

	props := ExtendedProps{
		Kind:      "event",
		EventType: string(e.Type),
		Scope:     string(e.Scope),
		Icon:      icon,
	}
	if e.TeamID.Valid {
		props.TeamID = e.TeamID.Int64
	}
	if e.Description.Valid {
		props.Description = e.Description.String
	}

	return FormattedEvent{
		ID:            fmt.Sprintf("%d", e.ID),
		Title:         e.Title,
		Start:         start,
		End:           end,
		AllDay:        e.AllDay,
		Color:         color,
		BorderColor:   style.BorderColor,
		TextColor:     style.TextColor,
		Editable:      canMutate,
		Deletable:     canMutate,
		ExtendedProps: props,
	}
}

// FormatOccurrence projects a computed occurrence for the grid. Occurrences
// are synthetic: always all-day, exclusive end one day after the start, and
// never editable or deletable. The optional person/couple must already be
// redacted for the viewer.
func FormatOccurrence(o Occurrence, person *member.Member, couple *member.Couple, styles StyleConfig) FormattedEvent {
	style := styles.styleFor(string(o.Kind))

	props := ExtendedProps{
		Kind:  strings.ToLower(string(o.Kind)),
		Icon:  style.Icon,
		Years: o.Years,
	}
	if person != nil {
		props.Member = &PersonView{
			ID:       person.ID,
			FullName: person.FullName(),
			Email:    person.Email.String,
			Phone:    person.Phone.String,
		}
	}
	if couple != nil {
		props.Couple = &CoupleView{
			ID:       couple.ID,
			PartnerA: personView(couple.PartnerA),
			PartnerB: personView(couple.PartnerB),
		}
	}

	return FormattedEvent{
		ID:            occurrenceID(o),
		Title:         o.Title,
		Start:         o.Date.Format(dateLayout),
		End:           o.Date.AddDate(0, 0, 1).Format(dateLayout),
		AllDay:        true,
		Color:         style.Color,
		BorderColor:   style.BorderColor,
		TextColor:     style.TextColor,
		Editable:      false,
		Deletable:     false,
		ExtendedProps: props,
	}
}

func personView(m member.Member) PersonView {
	return PersonView{
		ID:       m.ID,
		FullName: m.FullName(),
		Email:    m.Email.String,
		Phone:    m.Phone.String,
	}
}

func occurrenceID(o Occurrence) string {
	return fmt.Sprintf("%s-%d-%d", strings.ToLower(string(o.Kind)), o.SourceID, o.Date.Year())
}

// occurrenceTitle renders a display title for an occurrence. Empty name
// components fall back to a placeholder so titles never render blank.
func occurrenceTitle(kind Kind, names []string) string {
	switch kind {
	case KindBirth:
		return "Birthday of " + nameOrPlaceholder(names, 0)
	case KindWedding:
		return fmt.Sprintf("Wedding Anniversary: %s & %s", nameOrPlaceholder(names, 0), nameOrPlaceholder(names, 1))
	case KindAdoption:
		return fmt.Sprintf("Adoption Anniversary: %s & %s", nameOrPlaceholder(names, 0), nameOrPlaceholder(names, 1))
	}
	return nameOrPlaceholder(names, 0)
}

func nameOrPlaceholder(names []string, i int) string {
	if i < len(names) && strings.TrimSpace(names[i]) != "" {
		return names[i]
	}
	return "(unnamed)"
}
