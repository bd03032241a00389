// Package reminder contains the study reminder domain model. Reminders
// are schedule records only - delivery is a logging job, not a
// notification system.
package reminder

import (
	"errors"
	"strings"
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

var (
	ErrInvalidTime = errors.New("reminder: time must be HH:MM")
	ErrNoDays      = errors.New("reminder: at least one weekday is required")
)

// Reminder is a recurring study reminder for a user.
type Reminder struct {
	ID      string
	OwnerID string

	// TimeOfDay is the wall-clock trigger time, "HH:MM".
	TimeOfDay string

	// Days are the weekdays the reminder fires on.
	Days []time.Weekday

	Enabled   bool
	CreatedAt time.Time
}

// NewReminder creates an enabled reminder after validating its schedule.
func NewReminder(id, ownerID, timeOfDay string, days []time.Weekday) (*Reminder, error) {
	if id == "" || ownerID == "" {
		return nil, shared.ErrInvalidID
	}
	if _, _, err := timeutil.ParseClock(timeOfDay); err != nil {
		return nil, ErrInvalidTime
	}
	if len(days) == 0 {
		return nil, ErrNoDays
	}

	return &Reminder{
		ID:        id,
		OwnerID:   ownerID,
		TimeOfDay: timeOfDay,
		Days:      days,
		Enabled:   true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsDueAt reports whether the reminder fires in the minute containing t.
func (r *Reminder) IsDueAt(t time.Time) bool {
	if !r.Enabled {
		return false
	}

	onDay := false
	for _, d := range r.Days {
		if t.Weekday() == d {
			onDay = true
			break
		}
	}
	if !onDay {
		return false
	}

	hour, minute, err := timeutil.ParseClock(r.TimeOfDay)
	if err != nil {
		return false
	}
	return t.Hour() == hour && t.Minute() == minute
}

// DaysString renders the weekday set as "Mon,Tue,Wed".
func (r *Reminder) DaysString() string {
	parts := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		parts = append(parts, d.String()[:3])
	}
	return strings.Join(parts, ",")
}

// ParseDays parses a "Mon,Tue,Wed" weekday list.
func ParseDays(s string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
		"sun": time.Sunday,
	}

	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, ok := names[part]
		if !ok {
			return nil, errors.New("reminder: unknown weekday " + part)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	return days, nil
}
