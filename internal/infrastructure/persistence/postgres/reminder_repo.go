package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REMINDER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ReminderRepository implements reminder.Repository for PostgreSQL.
// Weekday sets are stored as their "Mon,Tue" text rendering.
type ReminderRepository struct {
	conn *Connection
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(conn *Connection) *ReminderRepository {
	return &ReminderRepository{conn: conn}
}

// Create creates a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, rem *reminder.Reminder) error {
	query := `
		INSERT INTO study_reminders (id, owner_id, time_of_day, days, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		rem.ID,
		rem.OwnerID,
		rem.TimeOfDay,
		rem.DaysString(),
		rem.Enabled,
		rem.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's reminders, oldest first.
func (r *ReminderRepository) ListByOwner(ctx context.Context, ownerID string) ([]*reminder.Reminder, error) {
	query := `
		SELECT id, owner_id, time_of_day, days, enabled, created_at
		FROM study_reminders
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// ListEnabled returns every enabled reminder across all users. The
// scheduler polls this to find due reminders.
func (r *ReminderRepository) ListEnabled(ctx context.Context) ([]*reminder.Reminder, error) {
	query := `
		SELECT id, owner_id, time_of_day, days, enabled, created_at
		FROM study_reminders
		WHERE enabled
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// Delete removes a reminder. Owner scoping prevents deleting another
// user's reminder by guessing IDs.
func (r *ReminderRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.conn.Exec(ctx,
		`DELETE FROM study_reminders WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrReminderNotFound
	}
	return nil
}

func scanReminders(rows pgx.Rows) ([]*reminder.Reminder, error) {
	var out []*reminder.Reminder
	for rows.Next() {
		var (
			rem  reminder.Reminder
			days string
		)
		err := rows.Scan(
			&rem.ID,
			&rem.OwnerID,
			&rem.TimeOfDay,
			&days,
			&rem.Enabled,
			&rem.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		parsed, err := reminder.ParseDays(days)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reminder days: %w", err)
		}
		rem.Days = parsed
		out = append(out, &rem)
	}
	return out, rows.Err()
}
