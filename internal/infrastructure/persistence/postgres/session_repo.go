package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SessionRepository implements session.Repository for PostgreSQL.
// The partial unique index idx_sessions_one_active backs the
// one-active-session-per-owner invariant at the database level.
type SessionRepository struct {
	conn *Connection
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(conn *Connection) *SessionRepository {
	return &SessionRepository{conn: conn}
}

const sessionColumns = `id, owner_id, name, start_time, end_time, status, actual_duration_minutes`

// Create inserts a new session record.
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) (string, error) {
	query := `
		INSERT INTO study_sessions (
			id, owner_id, name, start_time, end_time, status, actual_duration_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID,
		s.OwnerID,
		s.Name,
		s.StartTime,
		s.EndTime,
		string(s.Status),
		s.ActualDurationMinutes,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return "", shared.ErrSessionAlreadyActive
		}
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return s.ID, nil
}

// Save persists a mutated session record.
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	query := `
		UPDATE study_sessions SET
			name = $1,
			end_time = $2,
			status = $3,
			actual_duration_minutes = $4
		WHERE id = $5
	`

	tag, err := r.conn.Exec(ctx, query,
		s.Name,
		s.EndTime,
		string(s.Status),
		s.ActualDurationMinutes,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrSessionNotFound
	}
	return nil
}

// FindActive returns the owner's in-progress session.
func (r *SessionRepository) FindActive(ctx context.Context, ownerID string) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE owner_id = $1 AND status = 'in_progress'
		ORDER BY start_time DESC
		LIMIT 1`

	s, err := r.scanSession(r.conn.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, shared.ErrSessionNotFound) {
			return nil, shared.ErrNoActiveSession
		}
		return nil, err
	}
	return s, nil
}

// ListByOwner returns all sessions of an owner, most recent start first.
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*session.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE owner_id = $1
		ORDER BY start_time DESC, id`

	rows, err := r.conn.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// scanSession scans a session row.
func (r *SessionRepository) scanSession(row pgx.Row) (*session.Session, error) {
	var (
		s      session.Session
		status string
	)

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.StartTime,
		&s.EndTime,
		&status,
		&s.ActualDurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	s.Status = session.Status(status)
	return &s, nil
}
