package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enscal/internal/domain/event"
	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

func sampleEvent() event.CalendarEvent {
	return event.CalendarEvent{
		ID:        42,
		UID:       "3f1b2a90-0000-0000-0000-000000000042",
		Title:     "Team meeting",
		StartDate: date(2025, time.June, 10),
		EndDate:   date(2025, time.June, 10),
		AllDay:    true,
		Type:      event.TypeTeamMeeting,
		Scope:     event.ScopeTeam,
		TeamID:    nullInt(1),
		CreatedBy: 7,
	}
}

func TestFormatEvent_AllDay(t *testing.T) {
	e := sampleEvent()
	v := viewer.Context{MemberID: 7, Role: member.RoleMember, TeamID: 1}

	got := FormatEvent(e, v, DefaultStyles())

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "2025-06-10", got.Start)
	assert.Equal(t, "2025-06-10", got.End)
	assert.True(t, got.AllDay)
	assert.Equal(t, "event", got.ExtendedProps.Kind)
	assert.Equal(t, "TEAM_MEETING", got.ExtendedProps.EventType)
	assert.Equal(t, int64(1), got.ExtendedProps.TeamID)
}

func TestFormatEvent_Timed(t *testing.T) {
	e := sampleEvent()
	e.AllDay = false
	e.StartTime = nullStr("18:30:00")
	e.EndTime = nullStr("20:00:00")

	got := FormatEvent(e, viewer.Context{MemberID: 7, Role: member.RoleMember, TeamID: 1}, DefaultStyles())
	assert.Equal(t, "2025-06-10T18:30:00", got.Start)
	assert.Equal(t, "2025-06-10T20:00:00", got.End)
	assert.False(t, got.AllDay)
}

func TestFormatEvent_Editability(t *testing.T) {
	e := sampleEvent() // created by member 7

	tests := []struct {
		name   string
		viewer viewer.Context
		want   bool
	}{
		{"super admin edits anything", viewer.Context{MemberID: 1, Role: member.RoleSuperAdmin}, true},
		{"admin edits anything", viewer.Context{MemberID: 1, Role: member.RoleAdmin}, true},
		{"creator edits own event", viewer.Context{MemberID: 7, Role: member.RoleMember, TeamID: 1}, true},
		{"other member cannot edit", viewer.Context{MemberID: 8, Role: member.RoleMember, TeamID: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatEvent(e, tt.viewer, DefaultStyles())
			assert.Equal(t, tt.want, got.Editable)
			assert.Equal(t, tt.want, got.Deletable)
		})
	}
}

func TestFormatEvent_ColorDefaultsAndOverrides(t *testing.T) {
	styles := DefaultStyles()
	v := viewer.Context{MemberID: 7, Role: member.RoleMember}

	e := sampleEvent()
	got := FormatEvent(e, v, styles)
	assert.Equal(t, styles[string(event.TypeTeamMeeting)].Color, got.Color)

	e.Color = nullStr("#123456")
	got = FormatEvent(e, v, styles)
	assert.Equal(t, "#123456", got.Color)

	// Unknown type falls back to the default style rather than blank colors.
	e.Type = event.Type("MYSTERY")
	e.Color = nullStr("")
	got = FormatEvent(e, v, styles)
	assert.NotEmpty(t, got.Color)
}

func TestFormatEvent_Idempotent(t *testing.T) {
	e := sampleEvent()
	v := viewer.Context{MemberID: 7, Role: member.RoleMember, TeamID: 1}

	first := FormatEvent(e, v, DefaultStyles())
	second := FormatEvent(e, v, DefaultStyles())
	assert.Equal(t, first, second)
}

func TestFormatOccurrence(t *testing.T) {
	o := Occurrence{
		SourceID: 3,
		Kind:     KindBirth,
		Date:     date(2025, time.February, 28),
		Years:    25,
		Title:    "Birthday of Ana García",
	}
	person := member.Member{ID: 3, FirstName: "Ana", LastName: nullStr("García")}

	got := FormatOccurrence(o, &person, nil, DefaultStyles())

	assert.Equal(t, "birth-3-2025", got.ID)
	assert.Equal(t, "Birthday of Ana García", got.Title)
	assert.Equal(t, "2025-02-28", got.Start)
	assert.Equal(t, "2025-03-01", got.End, "exclusive end is the following day")
	assert.True(t, got.AllDay)
	assert.False(t, got.Editable, "computed items are never editable")
	assert.False(t, got.Deletable)
	assert.Equal(t, 25, got.ExtendedProps.Years)
	require.NotNil(t, got.ExtendedProps.Member)
	assert.Equal(t, "Ana García", got.ExtendedProps.Member.FullName)
}

func TestFormatOccurrence_CoupleDetail(t *testing.T) {
	o := Occurrence{
		SourceID: 9,
		Kind:     KindWedding,
		Date:     date(2024, time.June, 15),
		Years:    14,
		Title:    "Wedding Anniversary: Ana García & Luis Pérez",
	}
	couple := member.Couple{
		ID:       9,
		PartnerA: member.Member{ID: 1, FirstName: "Ana", LastName: nullStr("García"), Email: nullStr("ana@example.org")},
		PartnerB: member.Member{ID: 2, FirstName: "Luis", LastName: nullStr("Pérez")},
	}

	got := FormatOccurrence(o, nil, &couple, DefaultStyles())
	require.NotNil(t, got.ExtendedProps.Couple)
	assert.Equal(t, "Ana García", got.ExtendedProps.Couple.PartnerA.FullName)
	assert.Equal(t, "ana@example.org", got.ExtendedProps.Couple.PartnerA.Email)
	assert.Equal(t, "wedding", got.ExtendedProps.Kind)
}

func TestOccurrenceTitles(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		names []string
		want  string
	}{
		{"birthday", KindBirth, []string{"Ana García"}, "Birthday of Ana García"},
		{"wedding", KindWedding, []string{"Ana", "Luis"}, "Wedding Anniversary: Ana & Luis"},
		{"adoption", KindAdoption, []string{"Ana", "Luis"}, "Adoption Anniversary: Ana & Luis"},
		{"empty name falls back", KindBirth, []string{""}, "Birthday of (unnamed)"},
		{"missing partner falls back", KindWedding, []string{"Ana"}, "Wedding Anniversary: Ana & (unnamed)"},
		{"no names at all", KindAdoption, nil, "Adoption Anniversary: (unnamed) & (unnamed)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, occurrenceTitle(tt.kind, tt.names))
		})
	}
}
