package notification

import "context"

type NotificationService interface {
	Notify(ctx context.Context, recipientID string, senderID *string, t NotificationType, title, message string, data map[string]interface{}) error
	List(ctx context.Context, userID string, page, limit int, unreadOnly bool) ([]*Notification, int64, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, ids []string, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}
