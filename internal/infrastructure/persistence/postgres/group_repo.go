package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyspark/studyspark/internal/domain/group"
	"github.com/studyspark/studyspark/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GROUP REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// GroupRepository implements group.Repository for PostgreSQL.
type GroupRepository struct {
	conn *Connection
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(conn *Connection) *GroupRepository {
	return &GroupRepository{conn: conn}
}

// Create creates a new study group.
func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO study_groups (
			id, name, description, subject, max_members, creator_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.Exec(ctx, query,
		g.ID,
		g.Name,
		g.Description,
		g.Subject,
		g.MaxMembers,
		g.CreatorID,
		g.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrGroupAlreadyExists
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByName returns a group by its unique name.
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*group.Group, error) {
	query := `
		SELECT id, name, description, subject, max_members, creator_id, created_at
		FROM study_groups
		WHERE name = $1
	`

	var g group.Group
	err := r.conn.QueryRow(ctx, query, name).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Subject,
		&g.MaxMembers,
		&g.CreatorID,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

// List returns all groups with member counts, newest first.
func (r *GroupRepository) List(ctx context.Context) ([]group.GroupWithStats, error) {
	query := `
		SELECT
			g.id, g.name, g.description, g.subject, g.max_members,
			g.creator_id, g.created_at,
			COUNT(m.user_id) AS member_count,
			u.username AS creator_username
		FROM study_groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		JOIN users u ON u.id = g.creator_id
		GROUP BY g.id, u.username
		ORDER BY g.created_at DESC, g.id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var out []group.GroupWithStats
	for rows.Next() {
		var s group.GroupWithStats
		err := rows.Scan(
			&s.Group.ID,
			&s.Group.Name,
			&s.Group.Description,
			&s.Group.Subject,
			&s.Group.MaxMembers,
			&s.Group.CreatorID,
			&s.Group.CreatedAt,
			&s.MemberCount,
			&s.CreatorUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AddMember adds a user to a group.
func (r *GroupRepository) AddMember(ctx context.Context, m *group.Member) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, m.GroupID, m.UserID, string(m.Role), m.JoinedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// CountMembers returns the member count of a group.
func (r *GroupRepository) CountMembers(ctx context.Context, groupID string) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_id = $1`,
		groupID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}
