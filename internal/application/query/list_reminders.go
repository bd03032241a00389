package query

import (
	"context"
	"errors"

	"github.com/studyspark/studyspark/internal/domain/reminder"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST REMINDERS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListRemindersQuery requests a user's reminders.
type ListRemindersQuery struct {
	// UserID is the internal ID of the user.
	UserID string
}

// Validate validates the query.
func (q ListRemindersQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("list_reminders: user_id is required")
	}
	return nil
}

// ListRemindersResult contains the reminders.
type ListRemindersResult struct {
	// Reminders are ordered oldest first.
	Reminders []*reminder.Reminder
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ListRemindersHandler handles the ListRemindersQuery.
type ListRemindersHandler struct {
	reminders reminder.Repository
}

// NewListRemindersHandler creates the handler.
func NewListRemindersHandler(reminders reminder.Repository) *ListRemindersHandler {
	return &ListRemindersHandler{reminders: reminders}
}

// Handle executes the query.
func (h *ListRemindersHandler) Handle(ctx context.Context, q ListRemindersQuery) (*ListRemindersResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	reminders, err := h.reminders.ListByOwner(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return &ListRemindersResult{Reminders: reminders}, nil
}
