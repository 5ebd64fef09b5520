package member

import (
	"database/sql"
	"strings"
	"time"
)

// Role held by a member within the movement.
type Role string

const (
	// RoleSuperAdmin is the top-level role with unrestricted visibility.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleAdmin has cross-team management rights.
	RoleAdmin Role = "ADMIN"
	// RoleMember is the standard, team-scoped role.
	RoleMember Role = "MEMBER"
)

// Member represents a person in the movement directory.
type Member struct {
	ID        int64
	FirstName string
	LastName  sql.NullString
	Email     sql.NullString
	Phone     sql.NullString
	BirthDate sql.NullTime
	Role      Role
	CoupleID  sql.NullInt64
	TeamID    sql.NullInt64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last", or just the first name when no last name is set.
func (m Member) FullName() string {
	if m.LastName.Valid && m.LastName.String != "" {
		return strings.TrimSpace(m.FirstName + " " + m.LastName.String)
	}
	return strings.TrimSpace(m.FirstName)
}

// Couple represents a married (or adopting) pair in the directory.
// Wedding and adoption dates are optional: not every couple has both.
type Couple struct {
	ID           int64
	PartnerA     Member
	PartnerB     Member
	WeddingDate  sql.NullTime
	AdoptionDate sql.NullTime
	TeamID       sql.NullInt64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Team is a small group of couples within the movement.
type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
