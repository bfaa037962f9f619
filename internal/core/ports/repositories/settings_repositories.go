package repositories

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
)

// SettingsRepositoryFacade loads and stores the single finance-settings row
// the posting engine consumes as a value object.
type SettingsRepositoryFacade interface {
	GetFinanceSettings(ctx context.Context) (*domain.FinanceSettings, error)
	SaveFinanceSettings(ctx context.Context, settings domain.FinanceSettings) error
}

// NotificationRepositoryFacade records and lists in-app notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}
