package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

const userColumns = `id, username, password_hash, streak, points, badges,
	   last_study_date, created_at, updated_at`

// Create creates a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, streak, points, badges,
			last_study_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.Exec(ctx, query,
		u.ID,
		u.Username.String(),
		u.PasswordHash,
		u.Streak,
		float64(u.Points),
		badgesToStrings(u.Badges),
		u.LastStudyDate,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user by internal ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.conn.QueryRow(ctx, query, id))
}

// GetByUsername returns a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username user.Username) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.conn.QueryRow(ctx, query, username.String()))
}

// Save upserts a user record. Streak, points and badges land in one
// statement, so readers of the row never observe a partial update.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, streak, points, badges,
			last_study_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			streak = EXCLUDED.streak,
			points = EXCLUDED.points,
			badges = EXCLUDED.badges,
			last_study_date = EXCLUDED.last_study_date,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.conn.Exec(ctx, query,
		u.ID,
		u.Username.String(),
		u.PasswordHash,
		u.Streak,
		float64(u.Points),
		badgesToStrings(u.Badges),
		u.LastStudyDate,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// List returns all users in registration order.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ExistsByUsername checks whether a username is taken.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username user.Username) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// scanUser scans a user row.
func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var (
		u             user.User
		username      string
		points        float64
		badges        []string
		lastStudyDate *time.Time
	)

	err := row.Scan(
		&u.ID,
		&username,
		&u.PasswordHash,
		&u.Streak,
		&points,
		&badges,
		&lastStudyDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Username = user.Username(username)
	u.Points = user.Points(points)
	u.Badges = stringsToBadges(badges)
	if lastStudyDate != nil {
		d := lastStudyDate.UTC()
		u.LastStudyDate = &d
	}
	return &u, nil
}

func badgesToStrings(badges []user.BadgeID) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = string(b)
	}
	return out
}

func stringsToBadges(badges []string) []user.BadgeID {
	if len(badges) == 0 {
		return nil
	}
	out := make([]user.BadgeID, len(badges))
	for i, b := range badges {
		out[i] = user.BadgeID(b)
	}
	return out
}
