package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/shared"
)

func TestNewSession(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	s, err := NewSession("s-1", "u-1", "algebra", start)

	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s.Status)
	assert.True(t, s.IsActive())
	assert.Nil(t, s.EndTime)
	assert.Nil(t, s.ActualDurationMinutes)
	assert.Zero(t, s.Duration())
}

func TestNewSession_Validation(t *testing.T) {
	_, err := NewSession("", "u-1", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidSessionID)

	_, err = NewSession("s-1", "", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidOwnerID)
}

func TestEnd_RecordsMeasuredMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s, err := NewSession("s-1", "u-1", "", start)
	require.NoError(t, err)

	anomaly, err := s.End(start.Add(65*time.Minute + 30*time.Second))

	require.NoError(t, err)
	assert.False(t, anomaly)
	assert.Equal(t, StatusCompleted, s.Status)
	require.NotNil(t, s.ActualDurationMinutes)
	assert.InDelta(t, 65.5, *s.ActualDurationMinutes, 1e-9)
	assert.False(t, s.IsActive())
}

func TestEnd_ClockAnomalyClampsToZero(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s, err := NewSession("s-1", "u-1", "", start)
	require.NoError(t, err)

	anomaly, err := s.End(start.Add(-10 * time.Minute))

	require.NoError(t, err)
	assert.True(t, anomaly)
	assert.Equal(t, StatusCompleted, s.Status)
	require.NotNil(t, s.ActualDurationMinutes)
	assert.Zero(t, *s.ActualDurationMinutes)
}

func TestEnd_CompletedSessionNeverReopens(t *testing.T) {
	s, err := NewSession("s-1", "u-1", "", time.Now().UTC())
	require.NoError(t, err)
	_, err = s.End(time.Now().UTC())
	require.NoError(t, err)

	_, err = s.End(time.Now().UTC())

	assert.ErrorIs(t, err, shared.ErrSessionAlreadyEnded)
}
