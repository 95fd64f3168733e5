package services

import (
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/store"
)

// Services for records owned by a progeny. GetList takes the progeny id.
type (
	CalendarService    = repositorycache.Service[models.CalendarItem]
	FriendService      = repositorycache.Service[models.Friend]
	LocationService    = repositorycache.Service[models.Location]
	MeasurementService = repositorycache.Service[models.Measurement]
	SleepService       = repositorycache.Service[models.Sleep]
	VaccinationService = repositorycache.Service[models.Vaccination]
	VocabularyService  = repositorycache.Service[models.VocabularyItem]
)

// byProgeny is the default list view of progeny owned records.
func byProgeny[T any](progenyID func(*T) int) repositorycache.ListView[T] {
	return repositorycache.ListView[T]{
		Name:   repositorycache.DefaultView,
		Values: func(r *T) []any { return []any{progenyID(r)} },
		Where:  func(v any) store.SelectCriteria { return store.Where("progeny_id", v) },
	}
}

func newProgenyItemService[T any](db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger, tag, idColumn string, id, progenyID func(*T) int) *repositorycache.Service[T] {
	return repositorycache.New[T](store.New[T](db), cacheService, repositorycache.Definition[T]{
		Tag:      tag,
		ID:       id,
		IDColumn: idColumn,
		Views:    []repositorycache.ListView[T]{byProgeny(progenyID)},
	}, repositorycache.WithLogger(logger))
}

func NewCalendarService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *CalendarService {
	return newProgenyItemService(db, cacheService, logger, "calendar_item", "event_id",
		func(c *models.CalendarItem) int { return c.EventId },
		func(c *models.CalendarItem) int { return c.ProgenyId })
}

func NewFriendService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *FriendService {
	return newProgenyItemService(db, cacheService, logger, "friend", "friend_id",
		func(f *models.Friend) int { return f.FriendId },
		func(f *models.Friend) int { return f.ProgenyId })
}

func NewLocationService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *LocationService {
	return newProgenyItemService(db, cacheService, logger, "location", "location_id",
		func(l *models.Location) int { return l.LocationId },
		func(l *models.Location) int { return l.ProgenyId })
}

func NewMeasurementService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *MeasurementService {
	return newProgenyItemService(db, cacheService, logger, "measurement", "measurement_id",
		func(m *models.Measurement) int { return m.MeasurementId },
		func(m *models.Measurement) int { return m.ProgenyId })
}

func NewSleepService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *SleepService {
	return newProgenyItemService(db, cacheService, logger, "sleep", "sleep_id",
		func(s *models.Sleep) int { return s.SleepId },
		func(s *models.Sleep) int { return s.ProgenyId })
}

func NewVaccinationService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *VaccinationService {
	return newProgenyItemService(db, cacheService, logger, "vaccination", "vaccination_id",
		func(v *models.Vaccination) int { return v.VaccinationId },
		func(v *models.Vaccination) int { return v.ProgenyId })
}

func NewVocabularyService(db bun.IDB, cacheService cache.CacheService, logger zerolog.Logger) *VocabularyService {
	return newProgenyItemService(db, cacheService, logger, "vocabulary_item", "word_id",
		func(v *models.VocabularyItem) int { return v.WordId },
		func(v *models.VocabularyItem) int { return v.ProgenyId })
}
