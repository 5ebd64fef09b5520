package calendar

import (
	"database/sql"

	"enscal/internal/domain/event"
	"enscal/internal/domain/member"
	"enscal/internal/domain/viewer"
)

// resolveTeamScope decides which team a query is scoped to. Super admins see
// everything (returns 0 unless they explicitly requested one team). Elevated
// viewers may override to another team; standard viewers are locked to their
// own team no matter what they ask for.
func resolveTeamScope(v viewer.Context, teamOverride int64) (teamID int64, all bool) {
	if v.IsSuperAdmin() {
		if teamOverride != 0 {
			return teamOverride, false
		}
		return 0, true
	}
	if v.IsElevated() && teamOverride != 0 {
		return teamOverride, false
	}
	return v.TeamID, false
}

// VisibleMembers applies entity-level team scoping to the member directory.
func VisibleMembers(all []member.Member, v viewer.Context, teamOverride int64) []member.Member {
	teamID, everything := resolveTeamScope(v, teamOverride)
	if everything {
		return all
	}
	out := make([]member.Member, 0, len(all))
	for _, m := range all {
		if m.TeamID.Valid && m.TeamID.Int64 == teamID {
			out = append(out, m)
		}
	}
	return out
}

// VisibleCouples applies entity-level team scoping to the couple directory.
func VisibleCouples(all []member.Couple, v viewer.Context, teamOverride int64) []member.Couple {
	teamID, everything := resolveTeamScope(v, teamOverride)
	if everything {
		return all
	}
	out := make([]member.Couple, 0, len(all))
	for _, c := range all {
		if c.TeamID.Valid && c.TeamID.Int64 == teamID {
			out = append(out, c)
		}
	}
	return out
}

// RedactMember strips contact fields from a member record unless the viewer's
// role may see them. Applied to every exposed record, whichever query path
// produced it.
func RedactMember(m member.Member, v viewer.Context) member.Member {
	if v.CanSeeContactInfo() {
		return m
	}
	m.Email = sql.NullString{}
	m.Phone = sql.NullString{}
	return m
}

// RedactCouple strips contact fields from a couple and from both nested
// partner records.
func RedactCouple(c member.Couple, v viewer.Context) member.Couple {
	c.PartnerA = RedactMember(c.PartnerA, v)
	c.PartnerB = RedactMember(c.PartnerB, v)
	return c
}

// EventVisible reports whether an explicit event may be shown to the viewer.
// Global events are visible to everyone; team events to elevated roles and to
// members of the owning team.
func EventVisible(e event.CalendarEvent, v viewer.Context) bool {
	if e.Scope == event.ScopeGlobal {
		return true
	}
	if v.IsElevated() {
		return true
	}
	return e.TeamID.Valid && e.TeamID.Int64 == v.TeamID
}
