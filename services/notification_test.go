package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-progeny-cache/models"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewNotificationService(e.db, e.cache, e.log)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	older, err := svc.AddNotification(ctx, &models.MobileNotification{UserId: "u1", Title: "old", Time: now.Add(-time.Hour)})
	require.NoError(t, err)
	newer, err := svc.AddNotification(ctx, &models.MobileNotification{UserId: "u1", Title: "new", Time: now})
	require.NoError(t, err)
	_, err = svc.AddNotification(ctx, &models.MobileNotification{UserId: "u2", Title: "other", Time: now})
	require.NoError(t, err)

	list, err := svc.GetUsersNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.NotificationId, list[0].NotificationId)

	read, err := svc.MarkRead(ctx, older.NotificationId)
	require.NoError(t, err)
	assert.True(t, read.Read)

	saved, err := svc.GetNotification(ctx, older.NotificationId)
	require.NoError(t, err)
	assert.True(t, saved.Read)

	list, err = svc.GetUsersNotifications(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, list[1].Read)

	missing, err := svc.MarkRead(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, svc.DeleteNotification(ctx, newer))
	list, err = svc.GetUsersNotifications(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
