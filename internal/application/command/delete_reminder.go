package command

import (
	"context"
	"errors"

	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE REMINDER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteReminderCommand contains the data to delete a reminder.
type DeleteReminderCommand struct {
	// UserID is the internal ID of the reminder owner.
	UserID string

	// ReminderID is the ID of the reminder to delete.
	ReminderID string
}

// Validate validates the command.
func (c DeleteReminderCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("delete_reminder: user_id is required")
	}
	if c.ReminderID == "" {
		return errors.New("delete_reminder: reminder_id is required")
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// DeleteReminderHandler handles the DeleteReminderCommand.
type DeleteReminderHandler struct {
	reminders reminder.Repository
	logger    *logger.Logger
}

// NewDeleteReminderHandler creates the handler.
func NewDeleteReminderHandler(reminders reminder.Repository, log *logger.Logger) *DeleteReminderHandler {
	if log == nil {
		log = logger.Default()
	}
	return &DeleteReminderHandler{reminders: reminders, logger: log}
}

// Handle executes the command.
func (h *DeleteReminderHandler) Handle(ctx context.Context, cmd DeleteReminderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.reminders.Delete(ctx, cmd.UserID, cmd.ReminderID); err != nil {
		return err
	}

	h.logger.Info("reminder deleted", logger.Fields{
		"reminder_id": cmd.ReminderID,
		"user_id":     cmd.UserID,
	})
	return nil
}
