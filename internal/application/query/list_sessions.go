package query

import (
	"context"
	"errors"

	"github.com/studyspark/studyspark/internal/domain/session"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST SESSIONS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListSessionsQuery requests a user's session history.
type ListSessionsQuery struct {
	// UserID is the internal ID of the user.
	UserID string
}

// Validate validates the query.
func (q ListSessionsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("list_sessions: user_id is required")
	}
	return nil
}

// ListSessionsResult contains the session history.
type ListSessionsResult struct {
	// Sessions are ordered most recent start first.
	Sessions []*session.Session

	// ActiveSession points into Sessions when one is in progress.
	ActiveSession *session.Session
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ListSessionsHandler handles the ListSessionsQuery.
type ListSessionsHandler struct {
	sessions session.Repository
}

// NewListSessionsHandler creates the handler.
func NewListSessionsHandler(sessions session.Repository) *ListSessionsHandler {
	return &ListSessionsHandler{sessions: sessions}
}

// Handle executes the query.
func (h *ListSessionsHandler) Handle(ctx context.Context, q ListSessionsQuery) (*ListSessionsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	sessions, err := h.sessions.ListByOwner(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	result := &ListSessionsResult{Sessions: sessions}
	for _, s := range sessions {
		if s.IsActive() {
			result.ActiveSession = s
			break
		}
	}
	return result, nil
}
