// Package group contains the study group domain model. Groups are plain
// CRUD records with a couple of membership rules - no scoring logic here.
package group

import (
	"errors"
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
)

var (
	ErrInvalidGroupName  = errors.New("group: name must be 1-100 chars")
	ErrInvalidMaxMembers = errors.New("group: max members must be positive")
)

// Role of a member inside a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Group represents a study group.
type Group struct {
	ID          string
	Name        string
	Description string
	Subject     string

	// MaxMembers caps membership. nil means unlimited.
	MaxMembers *int

	CreatorID string
	CreatedAt time.Time
}

// Member links a user to a group.
type Member struct {
	GroupID  string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

// NewGroup creates a group. The creator joins separately as admin.
func NewGroup(id, name, description, subject, creatorID string, maxMembers *int) (*Group, error) {
	if id == "" || creatorID == "" {
		return nil, shared.ErrInvalidID
	}
	if len(name) == 0 || len(name) > 100 {
		return nil, ErrInvalidGroupName
	}
	if maxMembers != nil && *maxMembers <= 0 {
		return nil, ErrInvalidMaxMembers
	}

	return &Group{
		ID:          id,
		Name:        name,
		Description: description,
		Subject:     subject,
		MaxMembers:  maxMembers,
		CreatorID:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// HasRoom reports whether the group can accept another member.
func (g *Group) HasRoom(currentMembers int) bool {
	return g.MaxMembers == nil || currentMembers < *g.MaxMembers
}
