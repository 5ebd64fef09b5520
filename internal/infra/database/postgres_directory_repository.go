package database

import (
	"context"
	"database/sql"
	"fmt"

	"enscal/internal/domain/member"
)

// Custom errors
var ErrMemberNotFound = fmt.Errorf("member not found")

// PostgresDirectoryRepository reads the member/couple directory maintained by
// the membership module. The calendar never writes to these tables.
type PostgresDirectoryRepository struct {
	db *sql.DB
}

func NewPostgresDirectoryRepository(db *sql.DB) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{db: db}
}

const memberColumns = `id, first_name, last_name, email, phone, birth_date, role, couple_id, team_id,
               is_active, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }, m *member.Member) error {
	return row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.BirthDate,
		&m.Role, &m.CoupleID, &m.TeamID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (r *PostgresDirectoryRepository) GetMemberByID(ctx context.Context, id int64) (*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m := &member.Member{}
	if err := scanMember(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("error getting member by ID: %w", err)
	}
	return m, nil
}

func (r *PostgresDirectoryRepository) ListActiveMembers(ctx context.Context) ([]member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE is_active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active members: %w", err)
	}
	defer rows.Close()

	members := make([]member.Member, 0)
	for rows.Next() {
		var m member.Member
		if err := scanMember(rows, &m); err != nil {
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

func (r *PostgresDirectoryRepository) ListActiveCouples(ctx context.Context) ([]member.Couple, error) {
	query := `SELECT c.id, c.wedding_date, c.adoption_date, c.team_id, c.is_active, c.created_at, c.updated_at,
                      a.id, a.first_name, a.last_name, a.email, a.phone, a.birth_date, a.role, a.couple_id, a.team_id,
                      a.is_active, a.created_at, a.updated_at,
                      b.id, b.first_name, b.last_name, b.email, b.phone, b.birth_date, b.role, b.couple_id, b.team_id,
                      b.is_active, b.created_at, b.updated_at
               FROM couples c
               JOIN members a ON a.id = c.partner_a_id
               JOIN members b ON b.id = c.partner_b_id
               WHERE c.is_active = TRUE
               ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active couples: %w", err)
	}
	defer rows.Close()

	couples := make([]member.Couple, 0)
	for rows.Next() {
		var c member.Couple
		if err := rows.Scan(
			&c.ID, &c.WeddingDate, &c.AdoptionDate, &c.TeamID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&c.PartnerA.ID, &c.PartnerA.FirstName, &c.PartnerA.LastName, &c.PartnerA.Email, &c.PartnerA.Phone,
			&c.PartnerA.BirthDate, &c.PartnerA.Role, &c.PartnerA.CoupleID, &c.PartnerA.TeamID,
			&c.PartnerA.IsActive, &c.PartnerA.CreatedAt, &c.PartnerA.UpdatedAt,
			&c.PartnerB.ID, &c.PartnerB.FirstName, &c.PartnerB.LastName, &c.PartnerB.Email, &c.PartnerB.Phone,
			&c.PartnerB.BirthDate, &c.PartnerB.Role, &c.PartnerB.CoupleID, &c.PartnerB.TeamID,
			&c.PartnerB.IsActive, &c.PartnerB.CreatedAt, &c.PartnerB.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning couple: %w", err)
		}
		couples = append(couples, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating couples: %w", err)
	}
	return couples, nil
}
