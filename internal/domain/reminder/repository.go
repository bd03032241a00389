package reminder

import "context"

// Repository defines the reminder store contract.
type Repository interface {
	// Create inserts a reminder.
	Create(ctx context.Context, r *Reminder) error

	// ListByOwner returns the owner's reminders, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*Reminder, error)

	// ListEnabled returns every enabled reminder (for the scheduler job).
	ListEnabled(ctx context.Context) ([]*Reminder, error)

	// Delete removes a reminder. Returns shared.ErrReminderNotFound if
	// it does not exist or belongs to someone else.
	Delete(ctx context.Context, ownerID, id string) error
}
