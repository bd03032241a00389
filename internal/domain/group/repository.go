package group

import "context"

// GroupWithStats is a listing row: the group plus its member count and
// the creator's username.
type GroupWithStats struct {
	Group           Group
	MemberCount     int
	CreatorUsername string
}

// Repository defines the study group store contract.
type Repository interface {
	// Create inserts a group. Returns shared.ErrGroupAlreadyExists when
	// the name is taken.
	Create(ctx context.Context, g *Group) error

	// GetByName returns a group by its unique name.
	GetByName(ctx context.Context, name string) (*Group, error)

	// List returns all groups with member counts, newest first.
	List(ctx context.Context) ([]GroupWithStats, error)

	// AddMember adds a user to a group. Returns shared.ErrAlreadyMember
	// for duplicates.
	AddMember(ctx context.Context, m *Member) error

	// CountMembers returns the current member count of a group.
	CountMembers(ctx context.Context, groupID string) (int, error)
}
