package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store with a unique email index.
type Repository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		users:   map[uuid.UUID]*domain.User{},
		byEmail: map[string]uuid.UUID{},
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[clone.Email]; taken {
		return nil, ports.ErrDuplicateEmail
	}
	if clone.ID == uuid.Nil {
		clone.ID = ref.New()
	}
	now := r.now().UTC()
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byEmail[clone.Email]; taken && owner != clone.ID {
		return nil, ports.ErrDuplicateEmail
	}
	delete(r.byEmail, existing.Email)
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

// List returns users oldest first.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID.String() < list[j].ID.String() })
	return list, nil
}
