// Package jobs contains the scheduled background jobs of StudySpark.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ReminderScanJob scans enabled reminders and logs the ones due in the
// current minute. Delivery channels (push, email) are out of scope;
// the log line is the delivery.
type ReminderScanJob struct {
	reminders reminder.Repository
	logger    *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewReminderScanJob creates the job.
func NewReminderScanJob(reminders reminder.Repository, log *logger.Logger) *ReminderScanJob {
	if log == nil {
		log = logger.Default()
	}
	return &ReminderScanJob{
		reminders: reminders,
		logger:    log,
		now:       time.Now,
	}
}

// Name returns the unique name of the job.
func (j *ReminderScanJob) Name() string { return "reminder_scan" }

// Run checks every enabled reminder against the current minute.
func (j *ReminderScanJob) Run(ctx context.Context) error {
	reminders, err := j.reminders.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("reminder scan: %w", err)
	}

	now := j.now()
	due := 0
	for _, r := range reminders {
		if !r.IsDueAt(now) {
			continue
		}
		due++
		j.logger.Info("study reminder due", logger.Fields{
			"reminder_id": r.ID,
			"owner_id":    r.OwnerID,
			"time":        r.TimeOfDay,
			"days":        r.DaysString(),
		})
	}

	if due > 0 {
		j.logger.Debug("reminder scan finished", logger.Fields{
			"checked": len(reminders),
			"due":     due,
		})
	}
	return nil
}
