package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/pkg/testsupport"
)

// seedThread creates a thread holding count comments.
func seedThread(t *testing.T, e env, count int) (*models.CommentThread, []*models.Comment) {
	t.Helper()
	thread := &models.CommentThread{CommentsCount: count}
	testsupport.Seed(t, e.db, thread)

	comments := make([]*models.Comment, count)
	for i := range comments {
		comments[i] = &models.Comment{CommentThreadNumber: thread.Id, CommentText: "hello", Author: "user1", Created: time.Now().UTC()}
	}
	testsupport.Seed(t, e.db, comments...)
	return thread, comments
}

func TestAddComment_IncrementsCommentCount(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)
	thread, _ := seedThread(t, e, 2)

	// warm the thread cache so the increment has to evict it
	cached, err := svc.GetCommentThread(ctx, thread.Id)
	require.NoError(t, err)
	require.Equal(t, 2, cached.CommentsCount)

	added, err := svc.AddComment(ctx, &models.Comment{CommentThreadNumber: thread.Id, CommentText: "new"})
	require.NoError(t, err)
	assert.NotZero(t, added.CommentId)

	saved, err := svc.GetCommentThread(ctx, thread.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.CommentsCount)

	list, err := svc.GetCommentsList(ctx, thread.Id)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestDeleteComment_DecrementsCommentCount(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)
	thread, comments := seedThread(t, e, 2)

	require.NoError(t, svc.DeleteComment(ctx, comments[0]))

	saved, err := svc.GetCommentThread(ctx, thread.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.CommentsCount)

	gone, err := svc.GetComment(ctx, comments[0].CommentId)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteComment_CountNeverNegative(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)

	thread := &models.CommentThread{}
	testsupport.Seed(t, e.db, thread)
	orphan := &models.Comment{CommentThreadNumber: thread.Id, CommentText: "x"}
	testsupport.Seed(t, e.db, orphan)

	require.NoError(t, svc.DeleteComment(ctx, orphan))

	saved, err := svc.GetCommentThread(ctx, thread.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.CommentsCount)
}

func TestAddComment_RequiresThread(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)

	_, err := svc.AddComment(context.Background(), &models.Comment{CommentText: "no thread"})
	assert.Error(t, err)
	assert.Equal(t, 0, testsupport.CountRows[models.Comment](t, e.db))
}

func TestUpdateComment_IsVisible(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)
	_, comments := seedThread(t, e, 1)

	c, err := svc.GetComment(ctx, comments[0].CommentId)
	require.NoError(t, err)
	c.CommentText = "edited"
	_, err = svc.UpdateComment(ctx, c)
	require.NoError(t, err)

	saved, err := svc.GetComment(ctx, c.CommentId)
	require.NoError(t, err)
	assert.Equal(t, "edited", saved.CommentText)
}

func TestDeleteCommentThread_RemovesComments(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := NewCommentService(e.db, e.cache, e.log)
	thread, _ := seedThread(t, e, 3)

	require.NoError(t, svc.DeleteCommentThread(ctx, thread.Id))

	list, err := svc.GetCommentsList(ctx, thread.Id)
	require.NoError(t, err)
	assert.Empty(t, list)

	gone, err := svc.GetCommentThread(ctx, thread.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
