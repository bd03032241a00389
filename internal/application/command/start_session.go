package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// START SESSION COMMAND
// Opens a study session. A user can have at most one open session; the
// store rejects a second start.
// ══════════════════════════════════════════════════════════════════════════════

// StartSessionCommand contains the data to start a session.
type StartSessionCommand struct {
	// UserID is the internal ID of the session owner.
	UserID string

	// Name is an optional label ("math homework").
	Name string
}

// Validate validates the command.
func (c StartSessionCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("start_session: user_id is required")
	}
	return nil
}

// StartSessionResult contains the result of starting a session.
type StartSessionResult struct {
	// SessionID is the ID of the new session.
	SessionID string

	// Name is the session label.
	Name string

	// StartedAt is the session start time.
	StartedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// StartSessionHandler handles the StartSessionCommand.
type StartSessionHandler struct {
	users    user.Repository
	sessions session.Repository
	logger   *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewStartSessionHandler creates the handler.
func NewStartSessionHandler(users user.Repository, sessions session.Repository, log *logger.Logger) *StartSessionHandler {
	if log == nil {
		log = logger.Default()
	}
	return &StartSessionHandler{
		users:    users,
		sessions: sessions,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the handler's clock.
func (h *StartSessionHandler) WithClock(now func() time.Time) *StartSessionHandler {
	h.now = now
	return h
}

// Handle executes the command.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// The owner must exist; sessions are never orphaned.
	if _, err := h.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	s, err := session.NewSession(uuid.NewString(), cmd.UserID, cmd.Name, h.now())
	if err != nil {
		return nil, err
	}

	id, err := h.sessions.Create(ctx, s)
	if err != nil {
		return nil, err
	}

	h.logger.Info("session started", logger.Fields{
		"session_id": id,
		"user_id":    cmd.UserID,
		"name":       cmd.Name,
	})

	return &StartSessionResult{
		SessionID: id,
		Name:      s.Name,
		StartedAt: s.StartTime,
	}, nil
}
