package query

import (
	"context"

	"github.com/studyspark/studyspark/internal/domain/group"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST GROUPS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListGroupsQuery requests all study groups.
type ListGroupsQuery struct{}

// ListGroupsResult contains the groups with membership stats.
type ListGroupsResult struct {
	// Groups are ordered newest first.
	Groups []group.GroupWithStats
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ListGroupsHandler handles the ListGroupsQuery.
type ListGroupsHandler struct {
	groups group.Repository
}

// NewListGroupsHandler creates the handler.
func NewListGroupsHandler(groups group.Repository) *ListGroupsHandler {
	return &ListGroupsHandler{groups: groups}
}

// Handle executes the query.
func (h *ListGroupsHandler) Handle(ctx context.Context, _ ListGroupsQuery) (*ListGroupsResult, error) {
	groups, err := h.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListGroupsResult{Groups: groups}, nil
}
