package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyspark/studyspark/internal/domain/group"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE GROUP COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateGroupCommand contains the data to create a study group.
type CreateGroupCommand struct {
	// CreatorID is the internal ID of the creating user.
	CreatorID string

	// Name is the unique group name.
	Name string

	// Description is an optional free-text description.
	Description string

	// Subject is an optional subject label ("calculus").
	Subject string

	// MaxMembers caps membership. nil means unlimited.
	MaxMembers *int
}

// Validate validates the command.
func (c CreateGroupCommand) Validate() error {
	if c.CreatorID == "" {
		return errors.New("create_group: creator_id is required")
	}
	if len(c.Name) == 0 || len(c.Name) > 100 {
		return group.ErrInvalidGroupName
	}
	if c.MaxMembers != nil && *c.MaxMembers <= 0 {
		return group.ErrInvalidMaxMembers
	}
	return nil
}

// CreateGroupResult contains the result of group creation.
type CreateGroupResult struct {
	// GroupID is the ID of the new group.
	GroupID string

	// Name is the group name.
	Name string

	// CreatedAt is when the group was created.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateGroupHandler handles the CreateGroupCommand.
type CreateGroupHandler struct {
	users  user.Repository
	groups group.Repository
	logger *logger.Logger
}

// NewCreateGroupHandler creates the handler.
func NewCreateGroupHandler(users user.Repository, groups group.Repository, log *logger.Logger) *CreateGroupHandler {
	if log == nil {
		log = logger.Default()
	}
	return &CreateGroupHandler{users: users, groups: groups, logger: log}
}

// Handle executes the command. The creator becomes the group's admin
// member.
func (h *CreateGroupHandler) Handle(ctx context.Context, cmd CreateGroupCommand) (*CreateGroupResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.users.GetByID(ctx, cmd.CreatorID); err != nil {
		return nil, err
	}

	g, err := group.NewGroup(uuid.NewString(), cmd.Name, cmd.Description, cmd.Subject, cmd.CreatorID, cmd.MaxMembers)
	if err != nil {
		return nil, err
	}

	if err := h.groups.Create(ctx, g); err != nil {
		return nil, err
	}

	member := &group.Member{
		GroupID:  g.ID,
		UserID:   cmd.CreatorID,
		Role:     group.RoleAdmin,
		JoinedAt: time.Now().UTC(),
	}
	if err := h.groups.AddMember(ctx, member); err != nil {
		return nil, err
	}

	h.logger.Info("group created", logger.Fields{
		"group_id": g.ID,
		"name":     g.Name,
		"creator":  cmd.CreatorID,
	})

	return &CreateGroupResult{
		GroupID:   g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}, nil
}
