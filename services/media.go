package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
)

// PictureService serves pictures. Every picture gets a comment thread.
type PictureService struct {
	pictures *repositorycache.Service[models.Picture]
	comments *CommentService
}

func NewPictureService(db bun.IDB, cacheService cache.CacheService, comments *CommentService, logger zerolog.Logger) *PictureService {
	return &PictureService{
		pictures: newProgenyItemService(db, cacheService, logger, "picture", "picture_id",
			func(p *models.Picture) int { return p.PictureId },
			func(p *models.Picture) int { return p.ProgenyId }),
		comments: comments,
	}
}

func (s *PictureService) GetPicture(ctx context.Context, id int) (*models.Picture, error) {
	return s.pictures.Get(ctx, id)
}

func (s *PictureService) GetPicturesList(ctx context.Context, progenyID int) ([]*models.Picture, error) {
	return s.pictures.GetList(ctx, progenyID)
}

// AddPicture creates a comment thread when the picture has none and names the
// file with a random uuid when no link is set.
func (s *PictureService) AddPicture(ctx context.Context, picture *models.Picture) (*models.Picture, error) {
	if picture.PictureLink == "" {
		picture.PictureLink = uuid.NewString() + ".jpg"
	}
	if picture.CommentThreadNumber == 0 {
		thread, err := s.comments.AddCommentThread(ctx)
		if err != nil {
			return nil, err
		}
		picture.CommentThreadNumber = thread.Id
	}
	return s.pictures.Add(ctx, picture)
}

func (s *PictureService) UpdatePicture(ctx context.Context, picture *models.Picture) (*models.Picture, error) {
	return s.pictures.Update(ctx, picture)
}

// DeletePicture removes the picture together with its comment thread.
func (s *PictureService) DeletePicture(ctx context.Context, picture *models.Picture) error {
	if err := s.pictures.Delete(ctx, picture); err != nil {
		return err
	}
	if picture.CommentThreadNumber == 0 {
		return nil
	}
	return s.comments.DeleteCommentThread(ctx, picture.CommentThreadNumber)
}

// VideoService serves videos. Every video gets a comment thread.
type VideoService struct {
	videos   *repositorycache.Service[models.Video]
	comments *CommentService
}

func NewVideoService(db bun.IDB, cacheService cache.CacheService, comments *CommentService, logger zerolog.Logger) *VideoService {
	return &VideoService{
		videos: newProgenyItemService(db, cacheService, logger, "video", "video_id",
			func(v *models.Video) int { return v.VideoId },
			func(v *models.Video) int { return v.ProgenyId }),
		comments: comments,
	}
}

func (s *VideoService) GetVideo(ctx context.Context, id int) (*models.Video, error) {
	return s.videos.Get(ctx, id)
}

func (s *VideoService) GetVideosList(ctx context.Context, progenyID int) ([]*models.Video, error) {
	return s.videos.GetList(ctx, progenyID)
}

func (s *VideoService) AddVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	if video.VideoLink == "" {
		video.VideoLink = uuid.NewString()
	}
	if video.CommentThreadNumber == 0 {
		thread, err := s.comments.AddCommentThread(ctx)
		if err != nil {
			return nil, err
		}
		video.CommentThreadNumber = thread.Id
	}
	return s.videos.Add(ctx, video)
}

func (s *VideoService) UpdateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	return s.videos.Update(ctx, video)
}

func (s *VideoService) DeleteVideo(ctx context.Context, video *models.Video) error {
	if err := s.videos.Delete(ctx, video); err != nil {
		return err
	}
	if video.CommentThreadNumber == 0 {
		return nil
	}
	return s.comments.DeleteCommentThread(ctx, video.CommentThreadNumber)
}
