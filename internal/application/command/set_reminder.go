package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SET REMINDER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// SetReminderCommand contains the data to create a study reminder.
type SetReminderCommand struct {
	// UserID is the internal ID of the reminder owner.
	UserID string

	// TimeOfDay is the trigger time, "HH:MM".
	TimeOfDay string

	// Days is the weekday list, "Mon,Tue,Wed".
	Days string
}

// Validate validates the command.
func (c SetReminderCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("set_reminder: user_id is required")
	}
	if c.TimeOfDay == "" {
		return reminder.ErrInvalidTime
	}
	if c.Days == "" {
		return reminder.ErrNoDays
	}
	return nil
}

// SetReminderResult contains the result of creating a reminder.
type SetReminderResult struct {
	// ReminderID is the ID of the new reminder.
	ReminderID string

	// TimeOfDay is the trigger time.
	TimeOfDay string

	// Days is the normalized weekday list.
	Days string

	// CreatedAt is when the reminder was created.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// SetReminderHandler handles the SetReminderCommand.
type SetReminderHandler struct {
	users     user.Repository
	reminders reminder.Repository
	logger    *logger.Logger
}

// NewSetReminderHandler creates the handler.
func NewSetReminderHandler(users user.Repository, reminders reminder.Repository, log *logger.Logger) *SetReminderHandler {
	if log == nil {
		log = logger.Default()
	}
	return &SetReminderHandler{users: users, reminders: reminders, logger: log}
}

// Handle executes the command.
func (h *SetReminderHandler) Handle(ctx context.Context, cmd SetReminderCommand) (*SetReminderResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	days, err := reminder.ParseDays(cmd.Days)
	if err != nil {
		return nil, err
	}

	r, err := reminder.NewReminder(uuid.NewString(), cmd.UserID, cmd.TimeOfDay, days)
	if err != nil {
		return nil, err
	}

	if err := h.reminders.Create(ctx, r); err != nil {
		return nil, err
	}

	h.logger.Info("reminder set", logger.Fields{
		"reminder_id": r.ID,
		"user_id":     cmd.UserID,
		"time":        r.TimeOfDay,
		"days":        r.DaysString(),
	})

	return &SetReminderResult{
		ReminderID: r.ID,
		TimeOfDay:  r.TimeOfDay,
		Days:       r.DaysString(),
		CreatedAt:  r.CreatedAt,
	}, nil
}
