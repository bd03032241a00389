// Package memory implements the record store interfaces with in-memory
// maps. It backs the application tests and the offline CLI mode; the
// postgres package is the durable realization of the same contracts.
//
// A single mutex serializes every mutation, which is what preserves the
// at-most-one-active-session invariant without relying on database
// constraints.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studyspark/studyspark/internal/domain/group"
	"github.com/studyspark/studyspark/internal/domain/reminder"
	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
)

// Store holds every record collection behind one lock.
type Store struct {
	mu sync.RWMutex

	users     map[string]*user.User // by ID
	userOrder []string              // registration order, for List

	sessions     map[string]*session.Session // by ID
	sessionOrder []string                    // insertion order

	groups  map[string]*group.Group // by ID
	members []*group.Member

	reminders map[string]*reminder.Reminder
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*user.User),
		sessions:  make(map[string]*session.Session),
		groups:    make(map[string]*group.Group),
		reminders: make(map[string]*reminder.Reminder),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() user.Repository { return (*userRepo)(s) }

// Sessions returns the session repository view of the store.
func (s *Store) Sessions() session.Repository { return (*sessionRepo)(s) }

// Groups returns the group repository view of the store.
func (s *Store) Groups() group.Repository { return (*groupRepo)(s) }

// Reminders returns the reminder repository view of the store.
func (s *Store) Reminders() reminder.Repository { return (*reminderRepo)(s) }

// ─────────────────────────────────────────────────────────────────────────────
// user.Repository
// ─────────────────────────────────────────────────────────────────────────────

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return shared.ErrUserAlreadyExists
		}
	}
	r.users[u.ID] = u.Clone()
	r.userOrder = append(r.userOrder, u.ID)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *userRepo) GetByUsername(_ context.Context, username user.Username) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *userRepo) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		r.userOrder = append(r.userOrder, u.ID)
	}
	r.users[u.ID] = u.Clone()
	return nil
}

func (r *userRepo) List(_ context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.User, 0, len(r.userOrder))
	for _, id := range r.userOrder {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (r *userRepo) ExistsByUsername(_ context.Context, username user.Username) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// session.Repository
// ─────────────────────────────────────────────────────────────────────────────

type sessionRepo Store

func (r *sessionRepo) Create(_ context.Context, s *session.Session) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.OwnerID == s.OwnerID && existing.IsActive() {
			return "", shared.ErrSessionAlreadyActive
		}
	}

	clone := *s
	r.sessions[s.ID] = &clone
	r.sessionOrder = append(r.sessionOrder, s.ID)
	return s.ID, nil
}

func (r *sessionRepo) Save(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return shared.ErrSessionNotFound
	}
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *sessionRepo) FindActive(_ context.Context, ownerID string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.OwnerID == ownerID && s.IsActive() {
			clone := *s
			return &clone, nil
		}
	}
	return nil, shared.ErrNoActiveSession
}

func (r *sessionRepo) ListByOwner(_ context.Context, ownerID string) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*session.Session
	for _, id := range r.sessionOrder {
		s, ok := r.sessions[id]
		if !ok || s.OwnerID != ownerID {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}

	// Most recent start first; insertion order breaks exact-start ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// group.Repository
// ─────────────────────────────────────────────────────────────────────────────

type groupRepo Store

func (r *groupRepo) Create(_ context.Context, g *group.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.groups {
		if existing.Name == g.Name {
			return shared.ErrGroupAlreadyExists
		}
	}
	clone := *g
	r.groups[g.ID] = &clone
	return nil
}

func (r *groupRepo) GetByName(_ context.Context, name string) (*group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Name == name {
			clone := *g
			return &clone, nil
		}
	}
	return nil, shared.ErrGroupNotFound
}

func (r *groupRepo) List(_ context.Context) ([]group.GroupWithStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.GroupWithStats, 0, len(r.groups))
	for _, g := range r.groups {
		stats := group.GroupWithStats{Group: *g}
		for _, m := range r.members {
			if m.GroupID == g.ID {
				stats.MemberCount++
			}
		}
		if creator, ok := r.users[g.CreatorID]; ok {
			stats.CreatorUsername = creator.Username.String()
		}
		out = append(out, stats)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Group.CreatedAt.After(out[j].Group.CreatedAt)
	})
	return out, nil
}

func (r *groupRepo) AddMember(_ context.Context, m *group.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members {
		if existing.GroupID == m.GroupID && existing.UserID == m.UserID {
			return shared.ErrAlreadyMember
		}
	}
	clone := *m
	r.members = append(r.members, &clone)
	return nil
}

func (r *groupRepo) CountMembers(_ context.Context, groupID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.members {
		if m.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// reminder.Repository
// ─────────────────────────────────────────────────────────────────────────────

type reminderRepo Store

func (r *reminderRepo) Create(_ context.Context, rem *reminder.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *rem
	r.reminders[rem.ID] = &clone
	return nil
}

func (r *reminderRepo) ListByOwner(_ context.Context, ownerID string) ([]*reminder.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*reminder.Reminder
	for _, rem := range r.reminders {
		if rem.OwnerID == ownerID {
			clone := *rem
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reminderRepo) ListEnabled(_ context.Context) ([]*reminder.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*reminder.Reminder
	for _, rem := range r.reminders {
		if rem.Enabled {
			clone := *rem
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reminderRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.reminders[id]
	if !ok || rem.OwnerID != ownerID {
		return shared.ErrReminderNotFound
	}
	delete(r.reminders, id)
	return nil
}
