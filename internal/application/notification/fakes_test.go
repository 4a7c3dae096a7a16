package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/notification"
	"github.com/stockflow/backend/internal/domain/shared"
)

// memNotificationRepository is an in-memory notification.Repository
type memNotificationRepository struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*notification.Notification
	failBatch     bool
}

func newMemNotificationRepository() *memNotificationRepository {
	return &memNotificationRepository{notifications: make(map[uuid.UUID]*notification.Notification)}
}

func (r *memNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications[n.ID] = n
	return nil
}

func (r *memNotificationRepository) SaveBatch(ctx context.Context, batch []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failBatch {
		return errors.New("insert failed")
	}
	for _, n := range batch {
		r.notifications[n.ID] = n
	}
	return nil
}

func (r *memNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return n, nil
}

func (r *memNotificationRepository) FindRecent(ctx context.Context, recipientID uuid.UUID, limit int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]notification.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.MarkRead()
		}
	}
	return nil
}

func (r *memNotificationRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, n := range r.notifications {
		if n.CreatedAt.Before(before) {
			delete(r.notifications, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memNotificationRepository) byRecipient(recipientID uuid.UUID) []*notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*notification.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result
}

// memUserRepository is an in-memory identity.UserRepository
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
		if user.Username == username {
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
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
