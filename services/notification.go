package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

// NotificationService serves mobile notifications listed by user.
type NotificationService struct {
	notifications *repositorycache.Service[models.MobileNotification]
}

func NewNotificationService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: repositorycache.New[models.MobileNotification](store.New[models.MobileNotification](db), cacheService, repositorycache.Definition[models.MobileNotification]{
			Tag:      "mobile_notification",
			ID:       func(n *models.MobileNotification) int { return n.NotificationId },
			IDColumn: "notification_id",
			Views: []repositorycache.ListView[models.MobileNotification]{{
				Values: func(n *models.MobileNotification) []any { return []any{n.UserId} },
				Where:  func(v any) store.SelectCriteria { return store.Where("user_id", v) },
				Order:  []store.SelectCriteria{store.OrderBy("time", true), store.OrderBy("notification_id", true)},
			}},
		}, repositorycache.WithLogger(logger)),
	}
}

func (s *NotificationService) GetNotification(ctx context.Context, id int) (*models.MobileNotification, error) {
	return s.notifications.Get(ctx, id)
}

// GetUsersNotifications returns the user's notifications, newest first.
func (s *NotificationService) GetUsersNotifications(ctx context.Context, userID string) ([]*models.MobileNotification, error) {
	return s.notifications.GetList(ctx, userID)
}

func (s *NotificationService) AddNotification(ctx context.Context, n *models.MobileNotification) (*models.MobileNotification, error) {
	return s.notifications.Add(ctx, n)
}

func (s *NotificationService) UpdateNotification(ctx context.Context, n *models.MobileNotification) (*models.MobileNotification, error) {
	return s.notifications.Update(ctx, n)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, n *models.MobileNotification) error {
	return s.notifications.Delete(ctx, n)
}

// MarkRead flags the notification as read. It returns nil for an unknown id.
func (s *NotificationService) MarkRead(ctx context.Context, id int) (*models.MobileNotification, error) {
	n, err := s.notifications.Get(ctx, id)
	if err != nil || n == nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	return s.notifications.Update(ctx, n)
}
