package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Category classifies a notification
type Category string

const (
	CategoryDocument Category = "document"
	CategoryLowStock Category = "low_stock"
	CategorySystem   Category = "system"
)

// IsValid returns true if the category is one of the known categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryDocument, CategoryLowStock, CategorySystem:
		return true
	}
	return false
}

// Notification is a per-recipient message. System-wide announcements
// fan out one copy per active user, so RecipientID is always concrete
// and read state is never shared.
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_recipient_time,priority:1"`
	Category    Category  `gorm:"type:varchar(20);not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Message     string    `gorm:"type:text;not null"`
	Link        string    `gorm:"type:varchar(255)"`
	Read        bool      `gorm:"not null;default:false;index"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for one recipient
func NewNotification(recipientID uuid.UUID, category Category, title, message, link string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown notification category")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Category:    category,
		Title:       title,
		Message:     message,
		Link:        link,
		Read:        false,
	}, nil
}

// MarkRead flags the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
