// Package session contains domain entities and business logic for timed
// study sessions. A session is a single study interval: it starts, runs,
// and is completed exactly once - never reopened.
package session

import (
	"errors"
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// Domain errors for the session package.
var (
	ErrInvalidOwnerID   = errors.New("session: invalid owner ID")
	ErrInvalidSessionID = errors.New("session: invalid session ID")
)

// Status represents the current state of a session.
type Status string

const (
	// StatusInProgress - the session has started and is still running.
	StatusInProgress Status = "in_progress"
	// StatusCompleted - the session has ended. Terminal state.
	StatusCompleted Status = "completed"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// Session represents a single timed study interval owned by a user.
// At most one session per owner may be in progress at a time; the
// repository enforces that invariant on insert.
type Session struct {
	// ID is the unique session identifier (UUID string).
	ID string

	// OwnerID references the owning user. A lookup key, not an embedded
	// reference - the store owns the association.
	OwnerID string

	// Name is an optional free-text label ("algebra review").
	Name string

	// StartTime is when the session began.
	StartTime time.Time

	// EndTime is when the session ended. nil while in progress.
	EndTime *time.Time

	// Status is the session lifecycle state.
	Status Status

	// ActualDurationMinutes is the measured elapsed time in fractional
	// minutes. Set exactly when Status becomes Completed.
	ActualDurationMinutes *float64
}

// NewSession creates a new in-progress session.
func NewSession(id, ownerID, name string, startTime time.Time) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidSessionID
	}
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}

	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		StartTime: startTime,
		Status:    StatusInProgress,
	}, nil
}

// End completes the session and records its measured duration.
//
// If endTime is before StartTime (clock anomaly on the reporting client),
// the duration is clamped to zero and anomaly is true so the caller can
// surface a DataAnomaly; the session still completes. Returns
// shared.ErrSessionAlreadyEnded if the session is not in progress.
func (s *Session) End(endTime time.Time) (anomaly bool, err error) {
	if s.Status != StatusInProgress {
		return false, shared.ErrSessionAlreadyEnded
	}

	minutes, clamped := timeutil.MinutesBetween(s.StartTime, endTime)

	s.EndTime = &endTime
	s.Status = StatusCompleted
	s.ActualDurationMinutes = &minutes
	return clamped, nil
}

// IsActive returns true while the session is in progress.
func (s *Session) IsActive() bool {
	return s.Status == StatusInProgress
}

// Duration returns the completed duration in minutes, or 0 for an
// in-progress session. In-progress sessions contribute nothing to
// study-time totals.
func (s *Session) Duration() float64 {
	if s.ActualDurationMinutes == nil {
		return 0
	}
	return *s.ActualDurationMinutes
}
