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

const allLanguages = "all"

// LanguageService is the registry of configured languages. The full list is
// cached under a single key.
type LanguageService struct {
	languages *repositorycache.Service[models.KinaUnaLanguage]
}

func NewLanguageService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *LanguageService {
	return &LanguageService{
		languages: repositorycache.New[models.KinaUnaLanguage](store.New[models.KinaUnaLanguage](db), cacheService, repositorycache.Definition[models.KinaUnaLanguage]{
			Tag:      "language",
			ID:       func(l *models.KinaUnaLanguage) int { return l.Id },
			IDColumn: "id",
			Views: []repositorycache.ListView[models.KinaUnaLanguage]{{
				Values: func(*models.KinaUnaLanguage) []any { return []any{allLanguages} },
				Where:  func(any) store.SelectCriteria { return store.All() },
			}},
		}, repositorycache.WithLogger(logger)),
	}
}

// GetAllLanguages returns every configured language ordered by id.
func (s *LanguageService) GetAllLanguages(ctx context.Context) ([]*models.KinaUnaLanguage, error) {
	return s.languages.GetList(ctx, allLanguages)
}

func (s *LanguageService) GetLanguage(ctx context.Context, id int) (*models.KinaUnaLanguage, error) {
	return s.languages.Get(ctx, id)
}

func (s *LanguageService) AddLanguage(ctx context.Context, lang *models.KinaUnaLanguage) (*models.KinaUnaLanguage, error) {
	if err := lang.Validate(); err != nil {
		return nil, fmt.Errorf("invalid language: %w", err)
	}
	return s.languages.Add(ctx, lang)
}

func (s *LanguageService) UpdateLanguage(ctx context.Context, lang *models.KinaUnaLanguage) (*models.KinaUnaLanguage, error) {
	if err := lang.Validate(); err != nil {
		return nil, fmt.Errorf("invalid language: %w", err)
	}
	return s.languages.Update(ctx, lang)
}

func (s *LanguageService) DeleteLanguage(ctx context.Context, lang *models.KinaUnaLanguage) error {
	return s.languages.Delete(ctx, lang)
}
