package localization

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/pkg/testsupport"
	"github.com/goliatone/go-progeny-cache/services"
	"github.com/goliatone/go-progeny-cache/store"
)

type textFixture struct {
	Numbers []*models.KinaUnaTextNumber `json:"numbers"`
	Texts   []*models.KinaUnaText       `json:"texts"`
}

type env struct {
	db        *bun.DB
	cache     cache.CacheService
	languages *services.LanguageService
}

// newEnv registers the three fixture languages (ids 1, 2 and 3).
func newEnv(t *testing.T) env {
	t.Helper()
	e := env{db: testsupport.NewTestDB(t), cache: testsupport.NewTestCache(t)}

	var langs []*models.KinaUnaLanguage
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("languages.json"), &langs)
	testsupport.Seed(t, e.db, langs...)

	e.languages = services.NewLanguageService(e.db, e.cache, zerolog.Nop())
	return e
}

func (e env) texts() *TextService {
	return NewTextService(e.db, e.cache, e.languages, zerolog.Nop())
}

func (e env) translations() *TranslationService {
	return NewTranslationService(e.db, e.cache, e.languages, zerolog.Nop())
}

func (e env) seedTexts(t *testing.T, fixture string) {
	t.Helper()
	var f textFixture
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath(fixture), &f)
	testsupport.Seed(t, e.db, f.Numbers...)
	testsupport.Seed(t, e.db, f.Texts...)
}

func textRows(t *testing.T, e env, criteria ...store.SelectCriteria) int {
	return testsupport.CountRows[models.KinaUnaText](t, e.db, criteria...)
}

func translationRows(t *testing.T, e env, criteria ...store.SelectCriteria) int {
	return testsupport.CountRows[models.TextTranslation](t, e.db, criteria...)
}

func TestAddText_FansOutToEveryLanguage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	added, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, added.LanguageId)
	assert.NotZero(t, added.TextId)
	assert.Equal(t, 3, textRows(t, e, store.Where("text_id", added.TextId)))

	for _, lang := range []int{1, 2, 3} {
		variant, err := svc.GetTextByTitle(ctx, "Greeting", "home", lang)
		require.NoError(t, err)
		require.NotNil(t, variant, "language %d", lang)
		assert.Equal(t, "Hello", variant.Text)
		assert.Equal(t, added.TextId, variant.TextId)
	}

	number := &models.KinaUnaTextNumber{}
	require.NoError(t, e.db.NewSelect().Model(number).Where("id = ?", added.TextId).Scan(ctx))
	assert.Equal(t, 2, number.DefaultLanguage)
}

func TestAddText_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	first, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.NoError(t, err)
	again, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hi", LanguageId: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Id, again.Id)
	assert.Equal(t, "Hello", again.Text)
	assert.Equal(t, 3, textRows(t, e))
	assert.Equal(t, 1, testsupport.CountRows[models.KinaUnaTextNumber](t, e.db))
}

func TestAddText_RetryCompletesPartialGroup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	// the state a failed fan-out leaves behind: only the submitted row
	number := &models.KinaUnaTextNumber{DefaultLanguage: 1}
	testsupport.Seed(t, e.db, number)
	partial := &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1, TextId: number.Id}
	testsupport.Seed(t, e.db, partial)

	got, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.NoError(t, err)

	assert.Equal(t, partial.Id, got.Id)
	assert.Equal(t, 3, textRows(t, e, store.Where("text_id", number.Id)))
}

type failingRegistry struct{ err error }

func (r failingRegistry) GetAllLanguages(context.Context) ([]*models.KinaUnaLanguage, error) {
	return nil, r.err
}

func TestAddText_FanOutFailureKeepsSubmittedRow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	boom := errors.New("registry down")
	broken := NewTextService(e.db, e.cache, failingRegistry{err: boom}, zerolog.Nop())

	added, err := broken.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.ErrorIs(t, err, boom)
	require.NotNil(t, added)
	assert.Equal(t, 1, textRows(t, e))

	created, err := e.texts().CheckLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 3, textRows(t, e, store.Where("text_id", added.TextId)))
}

func TestAddTranslation_FanOutFailureKeepsSubmittedRow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	boom := errors.New("registry down")
	broken := NewTranslationService(e.db, e.cache, failingRegistry{err: boom}, zerolog.Nop())

	added, err := broken.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Home", Translation: "Home", LanguageId: 1})
	require.ErrorIs(t, err, boom)
	require.NotNil(t, added)
	assert.Equal(t, 1, translationRows(t, e))

	// adding the word again fills the missing languages
	again, err := e.translations().AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Home", Translation: "Home", LanguageId: 1})
	require.NoError(t, err)
	assert.Equal(t, added.Id, again.Id)
	assert.Equal(t, 3, translationRows(t, e))
}

func TestAddText_Validation(t *testing.T) {
	e := newEnv(t)

	_, err := e.texts().AddText(context.Background(), &models.KinaUnaText{Page: "home", LanguageId: 1})
	assert.Error(t, err)
	assert.Equal(t, 0, textRows(t, e))
}

func TestUpdateText_TouchesOneLanguage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	added, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.NoError(t, err)
	german, err := svc.GetTextByTextId(ctx, added.TextId, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateText(ctx, german.Id, &models.KinaUnaText{Title: "Greeting", Text: "Hallo"})
	require.NoError(t, err)
	assert.Equal(t, "Hallo", updated.Text)

	saved, err := svc.GetTextById(ctx, german.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hallo", saved.Text)

	english, err := svc.GetTextByTextId(ctx, added.TextId, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello", english.Text)

	missing, err := svc.UpdateText(ctx, 9999, &models.KinaUnaText{Text: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteText_RemovesWholeGroup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	added, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.NoError(t, err)
	_, err = svc.AddText(ctx, &models.KinaUnaText{Title: "Other", Page: "home", Text: "Other", LanguageId: 1})
	require.NoError(t, err)

	// warm the page list so deletion has to evict it
	page, err := svc.GetPageTextsList(ctx, "home", 1)
	require.NoError(t, err)
	require.Len(t, page, 2)

	deleted, err := svc.DeleteText(ctx, added.Id)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	assert.Equal(t, 0, textRows(t, e, store.Where("text_id", added.TextId)))
	assert.Equal(t, 3, textRows(t, e))
	assert.Equal(t, 1, testsupport.CountRows[models.KinaUnaTextNumber](t, e.db))

	page, err = svc.GetPageTextsList(ctx, "home", 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	gone, err := svc.GetTextByTitle(ctx, "Greeting", "home", 2)
	require.NoError(t, err)
	assert.Nil(t, gone)

	none, err := svc.DeleteText(ctx, added.Id)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDeleteSingleText_RemovesOneRow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.texts()

	added, err := svc.AddText(ctx, &models.KinaUnaText{Title: "Greeting", Page: "home", Text: "Hello", LanguageId: 1})
	require.NoError(t, err)
	total := textRows(t, e)

	danish, err := svc.GetTextByTextId(ctx, added.TextId, 3)
	require.NoError(t, err)
	_, err = svc.DeleteSingleText(ctx, danish.Id)
	require.NoError(t, err)

	assert.Equal(t, 2, textRows(t, e, store.Where("text_id", added.TextId)))
	assert.Equal(t, total-1, textRows(t, e))

	gone, err := svc.GetTextByTextId(ctx, added.TextId, 3)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCheckLanguages_NoChangesWhenComplete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seedTexts(t, "texts_complete.json")
	svc := e.texts()
	require.Equal(t, 9, textRows(t, e))

	created, err := svc.CheckLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 9, textRows(t, e))

	created, err = svc.CheckLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 9, textRows(t, e))
}

func TestCheckLanguages_SkipsTextsWithoutTextId(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seedTexts(t, "texts_complete.json")
	testsupport.Seed(t, e.db,
		&models.KinaUnaText{Title: "Orphan", Page: "home", Text: "one", LanguageId: 1},
		&models.KinaUnaText{Title: "Stray", Page: "about", Text: "two", LanguageId: 2},
	)
	require.Equal(t, 11, textRows(t, e))

	created, err := e.texts().CheckLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 11, textRows(t, e))
	assert.Equal(t, 2, textRows(t, e, store.Where("text_id", 0)))
}

func TestCheckLanguages_AddsMissingLanguageVersions(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seedTexts(t, "texts_gapped.json")
	svc := e.texts()
	require.Equal(t, 7, textRows(t, e))

	// a stale cached group must not hide the repair
	stale, err := svc.GetTextByTextId(ctx, 2, 3)
	require.NoError(t, err)
	require.Nil(t, stale)

	created, err := svc.CheckLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	assert.Equal(t, 9, textRows(t, e))
	for _, textID := range []int{1, 2, 3} {
		assert.Equal(t, 3, textRows(t, e, store.Where("text_id", textID)), "text %d", textID)
	}

	about, err := svc.GetTextByTextId(ctx, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, about)
	assert.Equal(t, "About us", about.Text)

	privacy, err := svc.GetTextByTextId(ctx, 3, 3)
	require.NoError(t, err)
	require.NotNil(t, privacy)
	assert.Equal(t, "Datenschutz", privacy.Text, "seeded from the default language")
}

func TestTextQueries_NoMatch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seedTexts(t, "texts_complete.json")
	svc := e.texts()

	byTitle, err := svc.GetTextByTitle(ctx, "Missing", "home", 1)
	require.NoError(t, err)
	assert.Nil(t, byTitle)

	byID, err := svc.GetTextById(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, byID)

	byTextID, err := svc.GetTextByTextId(ctx, 1, 9)
	require.NoError(t, err)
	assert.Nil(t, byTextID)

	page, err := svc.GetPageTextsList(ctx, "nowhere", 1)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	all, err := svc.GetAllPageTextsList(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, all)

	all, err = svc.GetAllPageTextsList(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAddTranslation_FansOutToEveryLanguage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.translations()

	added, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Sign in", Translation: "Sign in", LanguageId: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, added.LanguageId)

	assert.Equal(t, 3, translationRows(t, e, store.Where("page", "layout"), store.Where("word", "Sign in")))

	for _, lang := range []int{1, 2, 3} {
		tr, err := svc.GetTranslationByWord(ctx, "Sign in", "layout", lang)
		require.NoError(t, err)
		require.NotNil(t, tr, "language %d", lang)
		assert.Equal(t, "Sign in", tr.Translation)
	}

	again, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Sign in", Translation: "Log in", LanguageId: 1})
	require.NoError(t, err)
	assert.Equal(t, added.Id, again.Id)
	assert.Equal(t, 3, translationRows(t, e))
}

func TestUpdateTranslation_TouchesOneLanguage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.translations()

	_, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Home", Translation: "Home", LanguageId: 1})
	require.NoError(t, err)
	german, err := svc.GetTranslationByWord(ctx, "Home", "layout", 2)
	require.NoError(t, err)

	_, err = svc.UpdateTranslation(ctx, german.Id, &models.TextTranslation{Translation: "Startseite"})
	require.NoError(t, err)

	saved, err := svc.GetTranslationById(ctx, german.Id)
	require.NoError(t, err)
	assert.Equal(t, "Startseite", saved.Translation)

	page, err := svc.GetPageTranslations(ctx, "layout", 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Home", page[0].Translation)

	missing, err := svc.UpdateTranslation(ctx, 9999, &models.TextTranslation{Translation: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteTranslation_GroupVersusSingle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.translations()

	home, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "Home", Translation: "Home", LanguageId: 1})
	require.NoError(t, err)
	about, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "layout", Word: "About", Translation: "About", LanguageId: 1})
	require.NoError(t, err)
	require.Equal(t, 6, translationRows(t, e))

	_, err = svc.DeleteSingleTranslation(ctx, about.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, translationRows(t, e, store.Where("word", "About")))
	assert.Equal(t, 5, translationRows(t, e))

	_, err = svc.DeleteTranslation(ctx, home.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, translationRows(t, e, store.Where("word", "Home")))
	assert.Equal(t, 2, translationRows(t, e))

	all, err := svc.GetAllTranslations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "About", all[0].Word)

	none, err := svc.DeleteTranslation(ctx, home.Id)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetTranslationByWord_SeparatorInPageAndWord(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.translations()

	first, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "a/b", Word: "c", Translation: "first", LanguageId: 1})
	require.NoError(t, err)
	second, err := svc.AddTranslation(ctx, &models.TextTranslation{Page: "a", Word: "b/c", Translation: "second", LanguageId: 1})
	require.NoError(t, err)
	require.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, 6, translationRows(t, e))

	// the first lookup caches its group; the second must not be served from it
	got, err := svc.GetTranslationByWord(ctx, "c", "a/b", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Translation)

	got, err = svc.GetTranslationByWord(ctx, "b/c", "a", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Page)
	assert.Equal(t, "b/c", got.Word)
	assert.Equal(t, "second", got.Translation)
}

func TestWordKey_String(t *testing.T) {
	assert.NotEqual(t, WordKey{Page: "a/b", Word: "c"}.String(), WordKey{Page: "a", Word: "b/c"}.String())
	assert.Equal(t, "6:layout/Home", WordKey{Page: "layout", Word: "Home"}.String())
}

func TestTranslationQueries_NoMatch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	svc := e.translations()

	byWord, err := svc.GetTranslationByWord(ctx, "Nope", "layout", 1)
	require.NoError(t, err)
	assert.Nil(t, byWord)

	byID, err := svc.GetTranslationById(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, byID)

	page, err := svc.GetPageTranslations(ctx, "layout", 1)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	all, err := svc.GetAllTranslations(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, all)
}
