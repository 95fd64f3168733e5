package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

// CommentService serves comments and keeps CommentThread.CommentsCount equal
// to the number of comments in the thread.
type CommentService struct {
	comments *repositorycache.Service[models.Comment]
	threads  *repositorycache.Service[models.CommentThread]
	logger   zerolog.Logger
}

func NewCommentService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *CommentService {
	return &CommentService{
		comments: repositorycache.New[models.Comment](store.New[models.Comment](db), cacheService, repositorycache.Definition[models.Comment]{
			Tag:      "comment",
			ID:       func(c *models.Comment) int { return c.CommentId },
			IDColumn: "comment_id",
			Views: []repositorycache.ListView[models.Comment]{{
				Values: func(c *models.Comment) []any { return []any{c.CommentThreadNumber} },
				Where:  func(v any) store.SelectCriteria { return store.Where("comment_thread_number", v) },
			}},
		}, repositorycache.WithLogger(logger)),
		threads: repositorycache.New[models.CommentThread](store.New[models.CommentThread](db), cacheService, repositorycache.Definition[models.CommentThread]{
			Tag:      "comment_thread",
			ID:       func(t *models.CommentThread) int { return t.Id },
			IDColumn: "id",
		}, repositorycache.WithLogger(logger)),
		logger: logger,
	}
}

func (s *CommentService) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	return s.comments.Get(ctx, id)
}

// GetCommentsList returns the comments of a thread.
func (s *CommentService) GetCommentsList(ctx context.Context, threadID int) ([]*models.Comment, error) {
	return s.comments.GetList(ctx, threadID)
}

// AddComment stores the comment and increments its thread's counter.
func (s *CommentService) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	added, err := s.comments.Add(ctx, comment)
	if err != nil {
		return nil, err
	}
	if err := s.adjustCount(ctx, added.CommentThreadNumber, 1); err != nil {
		return added, err
	}
	return added, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return s.comments.Update(ctx, comment)
}

// DeleteComment removes the comment and decrements its thread's counter.
func (s *CommentService) DeleteComment(ctx context.Context, comment *models.Comment) error {
	if err := s.comments.Delete(ctx, comment); err != nil {
		return err
	}
	return s.adjustCount(ctx, comment.CommentThreadNumber, -1)
}

func (s *CommentService) GetCommentThread(ctx context.Context, id int) (*models.CommentThread, error) {
	return s.threads.Get(ctx, id)
}

// AddCommentThread creates an empty thread.
func (s *CommentService) AddCommentThread(ctx context.Context) (*models.CommentThread, error) {
	return s.threads.Add(ctx, &models.CommentThread{})
}

// DeleteCommentThread removes the thread and every comment in it.
func (s *CommentService) DeleteCommentThread(ctx context.Context, threadID int) error {
	comments, err := s.comments.GetList(ctx, threadID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if err := s.comments.Delete(ctx, c); err != nil {
			return err
		}
	}

	thread, err := s.threads.Get(ctx, threadID)
	if err != nil || thread == nil {
		return err
	}
	return s.threads.Delete(ctx, thread)
}

// adjustCount loads the thread through the cache and writes it back through
// Update so its cached copy is evicted.
func (s *CommentService) adjustCount(ctx context.Context, threadID, delta int) error {
	thread, err := s.threads.Get(ctx, threadID)
	if err != nil {
		return err
	}
	if thread == nil {
		s.logger.Warn().Int("thread", threadID).Msg("comment thread not found, count unchanged")
		return nil
	}

	thread.CommentsCount += delta
	if thread.CommentsCount < 0 {
		thread.CommentsCount = 0
	}
	_, err = s.threads.Update(ctx, thread)
	return err
}
