package viewer

import "enscal/internal/domain/member"

// Context describes the actor behind a request: who they are, which of the
// three roles they hold and which team they belong to (0 when none).
type Context struct {
	MemberID int64
	Role     member.Role
	TeamID   int64
}

// IsSuperAdmin reports whether the viewer holds the top-level role.
func (c Context) IsSuperAdmin() bool {
	return c.Role == member.RoleSuperAdmin
}

// IsElevated reports whether the viewer holds a role with cross-team rights.
func (c Context) IsElevated() bool {
	return c.Role == member.RoleSuperAdmin || c.Role == member.RoleAdmin
}

// CanSeeContactInfo reports whether email/phone fields may be exposed to the
// viewer. Standard members only see name and date fields.
func (c Context) CanSeeContactInfo() bool {
	return c.IsElevated()
}
