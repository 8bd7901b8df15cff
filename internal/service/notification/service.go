package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/sse"
)

// NotificationServiceImpl stores notifications and pushes them to connected
// clients over SSE. Delivery is best-effort; the stored row is the record.
type NotificationServiceImpl struct {
	repo notification.Repository
	hub  *sse.Hub
}

func NewNotificationService(repo notification.Repository, hub *sse.Hub) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo, hub: hub}
}

// Notify implements notification.NotificationService.
func (s *NotificationServiceImpl) Notify(ctx context.Context, recipientID string, senderID *string, t notification.NotificationType, title, message string, data map[string]interface{}) error {
	n := &notification.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        t,
		Title:       title,
		Message:     message,
		Data:        data,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(recipientID, sse.Event{
			UserID: recipientID,
			Event:  "notification",
			Data: map[string]interface{}{
				"id":      n.ID,
				"type":    string(n.Type),
				"title":   n.Title,
				"message": n.Message,
				"data":    n.Data,
			},
		})
	}

	return nil
}

// List implements notification.NotificationService.
func (s *NotificationServiceImpl) List(ctx context.Context, userID string, page, limit int, unreadOnly bool) ([]*notification.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.GetByUserID(ctx, userID, page, limit, unreadOnly)
}

// UnreadCount implements notification.NotificationService.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.repo.MarkAsRead(ctx, ids, userID)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Cleanup implements notification.NotificationService. The nightly job
// prunes notifications older than the retention window.
func (s *NotificationServiceImpl) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		olderThanDays = 90
	}
	return s.repo.DeleteOlderThan(ctx, olderThanDays)
}
