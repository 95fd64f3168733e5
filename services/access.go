package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

const userAccessUserView = "user"

// UserAccessService serves access grants listed by progeny and by user.
// User ids are compared case-insensitively.
type UserAccessService struct {
	grants *repositorycache.Service[models.UserAccess]
}

func NewUserAccessService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *UserAccessService {
	return &UserAccessService{
		grants: repositorycache.New[models.UserAccess](store.New[models.UserAccess](db), cacheService, repositorycache.Definition[models.UserAccess]{
			Tag:      "user_access",
			ID:       func(u *models.UserAccess) int { return u.AccessId },
			IDColumn: "access_id",
			Views: []repositorycache.ListView[models.UserAccess]{
				byProgeny(func(u *models.UserAccess) int { return u.ProgenyId }),
				{
					Name:      userAccessUserView,
					Values:    func(u *models.UserAccess) []any { return []any{u.UserId} },
					Where:     func(v any) store.SelectCriteria { return store.WhereFold("user_id", v.(string)) },
					Normalize: lowerString,
				},
			},
		}, repositorycache.WithLogger(logger)),
	}
}

func (s *UserAccessService) GetUserAccess(ctx context.Context, id int) (*models.UserAccess, error) {
	return s.grants.Get(ctx, id)
}

func (s *UserAccessService) GetProgenyUserAccessList(ctx context.Context, progenyID int) ([]*models.UserAccess, error) {
	return s.grants.GetList(ctx, progenyID)
}

func (s *UserAccessService) GetUsersUserAccessList(ctx context.Context, userID string) ([]*models.UserAccess, error) {
	return s.grants.GetListBy(ctx, userAccessUserView, userID)
}

// GetProgenyUserAccessForUser returns the user's grant for the progeny, or nil.
func (s *UserAccessService) GetProgenyUserAccessForUser(ctx context.Context, progenyID int, userID string) (*models.UserAccess, error) {
	grants, err := s.grants.GetListBy(ctx, userAccessUserView, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range grants {
		if g.ProgenyId == progenyID {
			return g, nil
		}
	}
	return nil, nil
}

// AddUserAccess stores a grant. A user holds at most one grant per progeny;
// adding a second one updates the existing grant instead.
func (s *UserAccessService) AddUserAccess(ctx context.Context, grant *models.UserAccess) (*models.UserAccess, error) {
	if err := grant.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user access: %w", err)
	}

	existing, err := s.GetProgenyUserAccessForUser(ctx, grant.ProgenyId, grant.UserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.AccessLevel = grant.AccessLevel
		existing.CanContribute = grant.CanContribute
		return s.grants.Update(ctx, existing)
	}
	return s.grants.Add(ctx, grant)
}

func (s *UserAccessService) UpdateUserAccess(ctx context.Context, grant *models.UserAccess) (*models.UserAccess, error) {
	if err := grant.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user access: %w", err)
	}
	return s.grants.Update(ctx, grant)
}

func (s *UserAccessService) RemoveUserAccess(ctx context.Context, grant *models.UserAccess) error {
	return s.grants.Delete(ctx, grant)
}

func lowerString(v any) any {
	if str, ok := v.(string); ok {
		return strings.ToLower(strings.TrimSpace(str))
	}
	return v
}
