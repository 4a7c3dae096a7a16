package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// Save persists one notification
	Save(ctx context.Context, notification *Notification) error

	// SaveBatch persists a fan-out of notifications in one statement
	SaveBatch(ctx context.Context, notifications []*Notification) error

	// FindByID finds a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindRecent lists the most recent notifications for a recipient,
	// newest first
	FindRecent(ctx context.Context, recipientID uuid.UUID, limit int) ([]Notification, error)

	// CountUnread counts unread notifications for a recipient
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// MarkAllRead flags every unread notification of a recipient as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error

	// DeleteOlderThan removes notifications created before the cutoff
	// and returns how many were removed
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
