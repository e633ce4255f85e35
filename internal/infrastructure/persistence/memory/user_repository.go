// Package memory provides in-process repository implementations. The system
// holds all state in memory with no storage backend; repositories hand out
// copies so callers never hold references into the store.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// UserRepository is an in-memory directory.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]directory.User
	order []uuid.UUID
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]directory.User),
		order: make([]uuid.UUID, 0),
	}
}

func cloneUser(u directory.User) directory.User {
	c := u
	c.AssignedPortfolios = append([]uuid.UUID(nil), u.AssignedPortfolios...)
	if u.PerformanceScore != nil {
		score := *u.PerformanceScore
		c.PerformanceScore = &score
	}
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		c.LastLoginAt = &at
	}
	return c
}

// FindByID returns a copy of the user with the given ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

// FindByEmail returns the user with the given email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*directory.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, id := range r.order {
		u := r.users[id]
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindAll returns users in insertion order, optionally filtered by role and
// active flag through filter.Filters
func (r *UserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		if !userMatches(u, filter) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return paginate(out, filter), nil
}

// FindActiveAgents returns all users that can receive assignments
func (r *UserRepository) FindActiveAgents(ctx context.Context) ([]directory.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]directory.User, 0)
	for _, id := range r.order {
		u := r.users[id]
		if u.IsActiveAgent() {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == shared.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save stores a copy of the user
func (r *UserRepository) Save(ctx context.Context, user *directory.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

// Count returns the number of users matching the filter
func (r *UserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.users {
		if userMatches(u, filter) {
			n++
		}
	}
	return n, nil
}

func userMatches(u directory.User, filter shared.Filter) bool {
	if role, ok := filter.Filters["role"]; ok && directory.Role(toString(role)) != u.Role {
		return false
	}
	if active, ok := filter.Filters["active"]; ok {
		if b, isBool := active.(bool); isBool && b != u.Active {
			return false
		}
	}
	if filter.Search != "" {
		s := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(u.Name), s) && !strings.Contains(u.Email, s) {
			return false
		}
	}
	return true
}

var _ directory.UserRepository = (*UserRepository)(nil)
