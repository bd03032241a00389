package command

import (
	"context"
	"errors"
	"time"

	"github.com/studyspark/studyspark/internal/domain/group"
	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOIN GROUP COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// JoinGroupCommand contains the data to join a study group.
type JoinGroupCommand struct {
	// UserID is the internal ID of the joining user.
	UserID string

	// GroupName is the name of the group to join.
	GroupName string
}

// Validate validates the command.
func (c JoinGroupCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("join_group: user_id is required")
	}
	if c.GroupName == "" {
		return errors.New("join_group: group_name is required")
	}
	return nil
}

// JoinGroupResult contains the result of joining a group.
type JoinGroupResult struct {
	// GroupID is the ID of the joined group.
	GroupID string

	// GroupName is the group's name.
	GroupName string

	// MemberCount is the member count after joining.
	MemberCount int
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// JoinGroupHandler handles the JoinGroupCommand.
type JoinGroupHandler struct {
	users  user.Repository
	groups group.Repository
	logger *logger.Logger
}

// NewJoinGroupHandler creates the handler.
func NewJoinGroupHandler(users user.Repository, groups group.Repository, log *logger.Logger) *JoinGroupHandler {
	if log == nil {
		log = logger.Default()
	}
	return &JoinGroupHandler{users: users, groups: groups, logger: log}
}

// Handle executes the command.
func (h *JoinGroupHandler) Handle(ctx context.Context, cmd JoinGroupCommand) (*JoinGroupResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	g, err := h.groups.GetByName(ctx, cmd.GroupName)
	if err != nil {
		return nil, err
	}

	count, err := h.groups.CountMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if !g.HasRoom(count) {
		return nil, shared.ErrGroupFull
	}

	member := &group.Member{
		GroupID:  g.ID,
		UserID:   cmd.UserID,
		Role:     group.RoleMember,
		JoinedAt: time.Now().UTC(),
	}
	if err := h.groups.AddMember(ctx, member); err != nil {
		return nil, err
	}

	h.logger.Info("user joined group", logger.Fields{
		"group_id": g.ID,
		"user_id":  cmd.UserID,
	})

	return &JoinGroupResult{
		GroupID:     g.ID,
		GroupName:   g.Name,
		MemberCount: count + 1,
	}, nil
}
