package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
)

// memUserRepository is an in-memory UserRepository
type memUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identity.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == strings.ToLower(username) {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]identity.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *memUserRepository) Save(ctx context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == strings.ToLower(username) {
			return true, nil
		}
	}
	return false, nil
}
