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

const progenyAdminView = "admin"

// ProgenyService serves progenies and the per admin list of progenies.
type ProgenyService struct {
	progenies *repositorycache.Service[models.Progeny]
}

func NewProgenyService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *ProgenyService {
	return &ProgenyService{
		progenies: repositorycache.New[models.Progeny](store.New[models.Progeny](db), cacheService, repositorycache.Definition[models.Progeny]{
			Tag:      "progeny",
			ID:       func(p *models.Progeny) int { return p.Id },
			IDColumn: "id",
			Views: []repositorycache.ListView[models.Progeny]{{
				Name: progenyAdminView,
				Values: func(p *models.Progeny) []any {
					admins := p.AdminList()
					values := make([]any, len(admins))
					for i, a := range admins {
						values[i] = a
					}
					return values
				},
				Where:     func(v any) store.SelectCriteria { return store.WhereContainsFold("admins", v.(string)) },
				Match:     func(p *models.Progeny, v any) bool { return p.IsInAdminList(v.(string)) },
				Normalize: lowerString,
			}},
		}, repositorycache.WithLogger(logger)),
	}
}

func (s *ProgenyService) GetProgeny(ctx context.Context, id int) (*models.Progeny, error) {
	return s.progenies.Get(ctx, id)
}

func (s *ProgenyService) AddProgeny(ctx context.Context, progeny *models.Progeny) (*models.Progeny, error) {
	return s.progenies.Add(ctx, progeny)
}

// UpdateProgeny also evicts the admin lists of removed admins.
func (s *ProgenyService) UpdateProgeny(ctx context.Context, progeny *models.Progeny) (*models.Progeny, error) {
	return s.progenies.Update(ctx, progeny)
}

func (s *ProgenyService) DeleteProgeny(ctx context.Context, progeny *models.Progeny) error {
	return s.progenies.Delete(ctx, progeny)
}

// GetProgenyAdminList returns the progenies email administers.
func (s *ProgenyService) GetProgenyAdminList(ctx context.Context, email string) ([]*models.Progeny, error) {
	return s.progenies.GetListBy(ctx, progenyAdminView, email)
}

func (s *ProgenyService) IsUserProgenyAdmin(ctx context.Context, email string, progenyID int) (bool, error) {
	progeny, err := s.progenies.Get(ctx, progenyID)
	if err != nil || progeny == nil {
		return false, err
	}
	return progeny.IsInAdminList(email), nil
}
