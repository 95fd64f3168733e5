package localization

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

const (
	textPageView     = "page"
	textLanguageView = "language"
	textGroupView    = "text_id"
	textAllView      = "all"
	allTexts         = "all"
)

// TextService manages page texts. Every language variant of a text shares a
// TextId allocated from KinaUnaTextNumber.
type TextService struct {
	texts     *repositorycache.Service[models.KinaUnaText]
	numbers   *repositorycache.Service[models.KinaUnaTextNumber]
	languages LanguageRegistry
	logger    zerolog.Logger
	now       func() time.Time
}

func NewTextService(db bun.IDB, cacheService cache.CacheService, languages LanguageRegistry, logger zerolog.Logger) *TextService {
	return &TextService{
		texts: repositorycache.New[models.KinaUnaText](store.New[models.KinaUnaText](db), cacheService, repositorycache.Definition[models.KinaUnaText]{
			Tag:      "text",
			ID:       func(t *models.KinaUnaText) int { return t.Id },
			IDColumn: "id",
			Views: []repositorycache.ListView[models.KinaUnaText]{
				{
					Name:   textPageView,
					Values: func(t *models.KinaUnaText) []any { return []any{t.Page} },
					Where:  func(v any) store.SelectCriteria { return store.Where("page", v) },
				},
				{
					Name:   textLanguageView,
					Values: func(t *models.KinaUnaText) []any { return []any{t.LanguageId} },
					Where:  func(v any) store.SelectCriteria { return store.Where("language_id", v) },
				},
				{
					Name:   textGroupView,
					Values: func(t *models.KinaUnaText) []any { return []any{t.TextId} },
					Where:  func(v any) store.SelectCriteria { return store.Where("text_id", v) },
				},
				{
					Name:   textAllView,
					Values: func(*models.KinaUnaText) []any { return []any{allTexts} },
					Where:  func(any) store.SelectCriteria { return store.All() },
				},
			},
		}, repositorycache.WithLogger(logger)),
		numbers: repositorycache.New[models.KinaUnaTextNumber](store.New[models.KinaUnaTextNumber](db), cacheService, repositorycache.Definition[models.KinaUnaTextNumber]{
			Tag:      "text_number",
			ID:       func(n *models.KinaUnaTextNumber) int { return n.Id },
			IDColumn: "id",
		}, repositorycache.WithLogger(logger)),
		languages: languages,
		logger:    logger.With().Str("component", "texts").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetTextByTitle returns the text for title on page in the language, or nil.
func (s *TextService) GetTextByTitle(ctx context.Context, title, page string, languageID int) (*models.KinaUnaText, error) {
	texts, err := s.texts.GetListBy(ctx, textPageView, page)
	if err != nil {
		return nil, err
	}
	for _, t := range texts {
		if t.Title == title && t.LanguageId == languageID {
			return t, nil
		}
	}
	return nil, nil
}

func (s *TextService) GetTextById(ctx context.Context, id int) (*models.KinaUnaText, error) {
	return s.texts.Get(ctx, id)
}

// GetTextByTextId returns the variant of the text group in the language, or nil.
func (s *TextService) GetTextByTextId(ctx context.Context, textID, languageID int) (*models.KinaUnaText, error) {
	group, err := s.texts.GetListBy(ctx, textGroupView, textID)
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

func (s *TextService) GetPageTextsList(ctx context.Context, page string, languageID int) ([]*models.KinaUnaText, error) {
	texts, err := s.texts.GetListBy(ctx, textPageView, page)
	if err != nil {
		return nil, err
	}
	return filterTexts(texts, func(t *models.KinaUnaText) bool { return t.LanguageId == languageID }), nil
}

func (s *TextService) GetAllPageTextsList(ctx context.Context, languageID int) ([]*models.KinaUnaText, error) {
	return s.texts.GetListBy(ctx, textLanguageView, languageID)
}

// AddText stores item and a copy of it for every other registered language.
// When the text already exists in item's language that row is returned as is.
func (s *TextService) AddText(ctx context.Context, item *models.KinaUnaText) (*models.KinaUnaText, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("invalid text: %w", err)
	}

	existing, err := s.GetTextByTitle(repositorycache.WithoutCache(ctx), item.Title, item.Page, item.LanguageId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.TextId == 0 {
			return existing, nil
		}
		return existing, s.fanOut(ctx, existing)
	}

	if item.TextId == 0 {
		number, err := s.numbers.Add(ctx, &models.KinaUnaTextNumber{DefaultLanguage: item.LanguageId})
		if err != nil {
			return nil, err
		}
		item.TextId = number.Id
	}

	now := s.now()
	item.Created, item.Updated = now, now
	added, err := s.texts.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	return added, s.fanOut(ctx, added)
}

// UpdateText changes the title and text of the single row id. Sibling
// languages are left alone. It returns nil when id does not exist.
func (s *TextService) UpdateText(ctx context.Context, id int, item *models.KinaUnaText) (*models.KinaUnaText, error) {
	current, err := s.texts.Get(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	current.Title = item.Title
	current.Text = item.Text
	current.Updated = s.now()
	return s.texts.Update(ctx, current)
}

// DeleteText removes every language variant of the text along with its text
// number. It returns the row id resolved to, or nil when it does not exist.
func (s *TextService) DeleteText(ctx context.Context, id int) (*models.KinaUnaText, error) {
	text, err := s.texts.Get(ctx, id)
	if err != nil || text == nil {
		return nil, err
	}

	group, err := s.texts.GetListBy(ctx, textGroupView, text.TextId)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(group, func(t *models.KinaUnaText) bool { return t.Id == text.Id }) {
		group = append(group, text)
	}
	for _, t := range group {
		if err := s.texts.Delete(ctx, t); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	number, err := s.numbers.Get(ctx, text.TextId)
	if err != nil {
		return nil, err
	}
	if number != nil {
		if err := s.numbers.Delete(ctx, number); err != nil {
			return nil, err
		}
	}
	return text, nil
}

// DeleteSingleText removes only the row id.
func (s *TextService) DeleteSingleText(ctx context.Context, id int) (*models.KinaUnaText, error) {
	text, err := s.texts.Get(ctx, id)
	if err != nil || text == nil {
		return nil, err
	}
	if err := s.texts.Delete(ctx, text); err != nil {
		return nil, err
	}
	return text, nil
}

// CheckLanguages adds the missing language variants of every text group,
// copying the group's default language variant. It reads the database
// directly and returns the number of rows created.
func (s *TextService) CheckLanguages(ctx context.Context) (int, error) {
	languages, err := s.languages.GetAllLanguages(ctx)
	if err != nil {
		return 0, err
	}

	all, err := s.texts.GetListBy(repositorycache.WithoutCache(ctx), textAllView, allTexts)
	if err != nil {
		return 0, err
	}

	groups := make(map[int][]*models.KinaUnaText)
	ungrouped := 0
	for _, t := range all {
		if t.TextId == 0 {
			ungrouped++
			continue
		}
		groups[t.TextId] = append(groups[t.TextId], t)
	}
	if ungrouped > 0 {
		s.logger.Warn().Int("texts", ungrouped).Msg("texts without a text id skipped")
	}
	textIDs := make([]int, 0, len(groups))
	for id := range groups {
		textIDs = append(textIDs, id)
	}
	sort.Ints(textIDs)

	created := 0
	for _, textID := range textIDs {
		group := groups[textID]
		seed, err := s.seedFor(ctx, textID, group)
		if err != nil {
			return created, err
		}

		n, err := s.fill(ctx, seed, group, languages)
		created += n
		if err != nil {
			return created, err
		}
	}

	s.logger.Info().Int("groups", len(textIDs)).Int("created", created).Msg("text languages checked")
	return created, nil
}

// seedFor picks the variant in the group's default language, falling back to
// the oldest row.
func (s *TextService) seedFor(ctx context.Context, textID int, group []*models.KinaUnaText) (*models.KinaUnaText, error) {
	seed := group[0]
	for _, t := range group[1:] {
		if t.Id < seed.Id {
			seed = t
		}
	}

	number, err := s.numbers.Get(ctx, textID)
	if err != nil || number == nil {
		return seed, err
	}
	for _, t := range group {
		if t.LanguageId == number.DefaultLanguage {
			return t, nil
		}
	}
	return seed, nil
}

// fanOut adds the languages missing from seed's group.
func (s *TextService) fanOut(ctx context.Context, seed *models.KinaUnaText) error {
	languages, err := s.languages.GetAllLanguages(ctx)
	if err != nil {
		return err
	}
	group, err := s.texts.GetListBy(repositorycache.WithoutCache(ctx), textGroupView, seed.TextId)
	if err != nil {
		return err
	}
	_, err = s.fill(ctx, seed, group, languages)
	return err
}

// fill writes a copy of seed for every language absent from group. Rows
// written before a failure are kept.
func (s *TextService) fill(ctx context.Context, seed *models.KinaUnaText, group []*models.KinaUnaText, languages []*models.KinaUnaLanguage) (int, error) {
	present := make(map[int]bool, len(group)+1)
	present[seed.LanguageId] = true
	for _, t := range group {
		present[t.LanguageId] = true
	}

	created := 0
	for _, lang := range languages {
		if present[lang.Id] {
			continue
		}
		now := s.now()
		variant := &models.KinaUnaText{
			Title:      seed.Title,
			Page:       seed.Page,
			Text:       seed.Text,
			LanguageId: lang.Id,
			TextId:     seed.TextId,
			Created:    now,
			Updated:    now,
		}
		if _, err := s.texts.Add(ctx, variant); err != nil {
			s.logger.Error().Err(err).Int("text_id", seed.TextId).Int("language", lang.Id).Msg("text fan-out failed")
			return created, fmt.Errorf("text %d language %d: %w", seed.TextId, lang.Id, err)
		}
		present[lang.Id] = true
		created++
	}
	return created, nil
}

func filterTexts(texts []*models.KinaUnaText, keep func(*models.KinaUnaText) bool) []*models.KinaUnaText {
	out := make([]*models.KinaUnaText, 0, len(texts))
	for _, t := range texts {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
