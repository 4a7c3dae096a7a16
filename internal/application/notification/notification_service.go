package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/notification"
	"github.com/stockflow/backend/internal/domain/shared"
)

// recentLimit caps the notification feed per recipient
const recentLimit = 50

// NotificationService handles the per-user notification feed
type NotificationService struct {
	notificationRepo notification.Repository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.Repository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListRecent returns the most recent notifications for a recipient, newest first
func (s *NotificationService) ListRecent(ctx context.Context, recipientID uuid.UUID) ([]*NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindRecent(ctx, recipientID, recentLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]*NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, NewNotificationResponse(&notifications[i]))
	}
	return responses, nil
}

// UnreadCount returns the number of unread notifications for a recipient
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// MarkRead flags one notification as read. Recipients can only touch
// their own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != recipientID {
		return nil, shared.ErrNotFound
	}

	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	return NewNotificationResponse(n), nil
}

// MarkAllRead flags every unread notification of a recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// PurgeOlderThan removes notifications past the retention window and
// returns how many were removed
func (s *NotificationService) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.notificationRepo.DeleteOlderThan(ctx, cutoff)
}
