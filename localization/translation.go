package localization

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

const (
	translationPageView     = "page"
	translationLanguageView = "language"
	translationWordView     = "word"
)

// WordKey groups the language variants of a translation.
type WordKey struct {
	Page string
	Word string
}

// String prefixes the page with its length so pages and words containing
// the separator cannot collide.
func (k WordKey) String() string {
	return strconv.Itoa(len(k.Page)) + ":" + k.Page + "/" + k.Word
}

// TranslationService manages word translations. Variants of a word share
// Page and Word; there is no group id.
type TranslationService struct {
	translations *repositorycache.Service[models.TextTranslation]
	languages    LanguageRegistry
	logger       zerolog.Logger
}

func NewTranslationService(db bun.IDB, cacheService cache.CacheService, languages LanguageRegistry, logger zerolog.Logger) *TranslationService {
	return &TranslationService{
		translations: repositorycache.New[models.TextTranslation](store.New[models.TextTranslation](db), cacheService, repositorycache.Definition[models.TextTranslation]{
			Tag:      "translation",
			ID:       func(t *models.TextTranslation) int { return t.Id },
			IDColumn: "id",
			Views: []repositorycache.ListView[models.TextTranslation]{
				{
					Name:   translationPageView,
					Values: func(t *models.TextTranslation) []any { return []any{t.Page} },
					Where:  func(v any) store.SelectCriteria { return store.Where("page", v) },
				},
				{
					Name:   translationLanguageView,
					Values: func(t *models.TextTranslation) []any { return []any{t.LanguageId} },
					Where:  func(v any) store.SelectCriteria { return store.Where("language_id", v) },
				},
				{
					Name:   translationWordView,
					Values: func(t *models.TextTranslation) []any { return []any{WordKey{Page: t.Page, Word: t.Word}} },
					Where: func(v any) store.SelectCriteria {
						key := v.(WordKey)
						return store.All(store.Where("page", key.Page), store.Where("word", key.Word))
					},
				},
			},
		}, repositorycache.WithLogger(logger)),
		languages: languages,
		logger:    logger.With().Str("component", "translations").Logger(),
	}
}

// GetTranslationByWord returns the translation of word on page in the
// language, or nil.
func (s *TranslationService) GetTranslationByWord(ctx context.Context, word, page string, languageID int) (*models.TextTranslation, error) {
	group, err := s.translations.GetListBy(ctx, translationWordView, WordKey{Page: page, Word: word})
	if err != nil {
		return nil, err
	}
	for _, t := range group {
		if t.LanguageId == languageID {
			return t, nil
		}
	}
	return nil, nil
}

func (s *TranslationService) GetTranslationById(ctx context.Context, id int) (*models.TextTranslation, error) {
	return s.translations.Get(ctx, id)
}

func (s *TranslationService) GetPageTranslations(ctx context.Context, page string, languageID int) ([]*models.TextTranslation, error) {
	all, err := s.translations.GetListBy(ctx, translationPageView, page)
	if err != nil {
		return nil, err
	}
	out := make([]*models.TextTranslation, 0, len(all))
	for _, t := range all {
		if t.LanguageId == languageID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TranslationService) GetAllTranslations(ctx context.Context, languageID int) ([]*models.TextTranslation, error) {
	return s.translations.GetListBy(ctx, translationLanguageView, languageID)
}

// AddTranslation stores item and a copy of it for every other registered
// language that lacks the word. When the word already exists in item's
// language that row is returned and the missing languages are filled in.
func (s *TranslationService) AddTranslation(ctx context.Context, item *models.TextTranslation) (*models.TextTranslation, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid translation: %w", err)
	}

	key := WordKey{Page: item.Page, Word: item.Word}
	group, err := s.translations.GetListBy(repositorycache.WithoutCache(ctx), translationWordView, key)
	if err != nil {
		return nil, err
	}

	result := findLanguage(group, item.LanguageId)
	if result == nil {
		result, err = s.translations.Add(ctx, item)
		if err != nil {
			return nil, err
		}
		group = append(group, result)
	}

	languages, err := s.languages.GetAllLanguages(ctx)
	if err != nil {
		return result, err
	}
	for _, lang := range languages {
		if findLanguage(group, lang.Id) != nil {
			continue
		}
		variant := &models.TextTranslation{
			Page:        result.Page,
			Word:        result.Word,
			Translation: result.Translation,
			LanguageId:  lang.Id,
		}
		added, err := s.translations.Add(ctx, variant)
		if err != nil {
			s.logger.Error().Err(err).Str("word", key.String()).Int("language", lang.Id).Msg("translation fan-out failed")
			return result, fmt.Errorf("translation %s language %d: %w", key, lang.Id, err)
		}
		group = append(group, added)
	}
	return result, nil
}

// UpdateTranslation changes the translation of the single row id. It returns
// nil when id does not exist.
func (s *TranslationService) UpdateTranslation(ctx context.Context, id int, item *models.TextTranslation) (*models.TextTranslation, error) {
	current, err := s.translations.Get(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	current.Translation = item.Translation
	return s.translations.Update(ctx, current)
}

// DeleteTranslation removes every language variant of the word id resolves to.
func (s *TranslationService) DeleteTranslation(ctx context.Context, id int) (*models.TextTranslation, error) {
	translation, err := s.translations.Get(ctx, id)
	if err != nil || translation == nil {
		return nil, err
	}

	group, err := s.translations.GetListBy(repositorycache.WithoutCache(ctx), translationWordView, WordKey{Page: translation.Page, Word: translation.Word})
	if err != nil {
		return nil, err
	}
	for _, t := range group {
		if err := s.translations.Delete(ctx, t); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return translation, nil
}

// DeleteSingleTranslation removes only the row id.
func (s *TranslationService) DeleteSingleTranslation(ctx context.Context, id int) (*models.TextTranslation, error) {
	translation, err := s.translations.Get(ctx, id)
	if err != nil || translation == nil {
		return nil, err
	}
	if err := s.translations.Delete(ctx, translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func findLanguage(group []*models.TextTranslation, languageID int) *models.TextTranslation {
	for _, t := range group {
		if t.LanguageId == languageID {
			return t
		}
	}
	return nil
}
