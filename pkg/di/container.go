package di

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/localization"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/pkg/config"
	"github.com/goliatone/go-progeny-cache/repositorycache"
	"github.com/goliatone/go-progeny-cache/services"
	"github.com/goliatone/go-progeny-cache/store"
)

// Services groups every cache-aside entity service. All of them share one
// cache service, so a change made through one is visible to the others.
type Services struct {
	Calendar      *services.CalendarService
	Contacts      *services.ContactService
	Friends       *services.FriendService
	Locations     *services.LocationService
	Measurements  *services.MeasurementService
	Sleep         *services.SleepService
	Vaccinations  *services.VaccinationService
	Vocabulary    *services.VocabularyService
	Comments      *services.CommentService
	Pictures      *services.PictureService
	Videos        *services.VideoService
	TimeLine      *services.TimeLineService
	Notifications *services.NotificationService
	UserAccess    *services.UserAccessService
	Progeny       *services.ProgenyService
	Languages     *services.LanguageService
	Texts         *localization.TextService
	Translations  *localization.TranslationService
}

// Container owns the databases, the cache and the services built on them.
type Container struct {
	db           *bun.DB
	mediaDB      *bun.DB
	cacheService cache.CacheService
	cacheStore   cache.Store
	logger       zerolog.Logger

	Services Services
}

// NewContainer opens the configured databases and cache backend and wires
// every service. Comments, pictures and videos use the media database.
func NewContainer(cfg config.Config, logger zerolog.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	mediaDB := db
	if cfg.Database.HasMediaDatabase() {
		mediaDB, err = store.Open(cfg.Database.Driver, cfg.Database.MediaDSN)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	codec, err := cache.CodecByName(cfg.Cache.Codec)
	if err != nil {
		closeDatabases(db, mediaDB)
		return nil, err
	}
	cacheStore, err := cache.NewStore(cfg.Cache)
	if err != nil {
		closeDatabases(db, mediaDB)
		return nil, fmt.Errorf("cache store: %w", err)
	}

	c := newContainer(db, mediaDB, cache.New(cacheStore, codec), logger)
	c.cacheStore = cacheStore
	return c, nil
}

// NewContainerWithDB wires the services on already opened databases. A nil
// mediaDB shares db.
func NewContainerWithDB(db, mediaDB *bun.DB, cacheService cache.CacheService, logger zerolog.Logger) *Container {
	if mediaDB == nil {
		mediaDB = db
	}
	return newContainer(db, mediaDB, cacheService, logger)
}

func newContainer(db, mediaDB *bun.DB, cacheService cache.CacheService, logger zerolog.Logger) *Container {
	comments := services.NewCommentService(mediaDB, cacheService, logger)
	languages := services.NewLanguageService(db, cacheService, logger)

	return &Container{
		db:           db,
		mediaDB:      mediaDB,
		cacheService: cacheService,
		logger:       logger,
		Services: Services{
			Calendar:      services.NewCalendarService(db, cacheService, logger),
			Contacts:      services.NewContactService(db, cacheService, logger),
			Friends:       services.NewFriendService(db, cacheService, logger),
			Locations:     services.NewLocationService(db, cacheService, logger),
			Measurements:  services.NewMeasurementService(db, cacheService, logger),
			Sleep:         services.NewSleepService(db, cacheService, logger),
			Vaccinations:  services.NewVaccinationService(db, cacheService, logger),
			Vocabulary:    services.NewVocabularyService(db, cacheService, logger),
			Comments:      comments,
			Pictures:      services.NewPictureService(mediaDB, cacheService, comments, logger),
			Videos:        services.NewVideoService(mediaDB, cacheService, comments, logger),
			TimeLine:      services.NewTimeLineService(db, cacheService, logger),
			Notifications: services.NewNotificationService(db, cacheService, logger),
			UserAccess:    services.NewUserAccessService(db, cacheService, logger),
			Progeny:       services.NewProgenyService(db, cacheService, logger),
			Languages:     languages,
			Texts:         localization.NewTextService(db, cacheService, languages, logger),
			Translations:  localization.NewTranslationService(db, cacheService, languages, logger),
		},
	}
}

func (c *Container) DB() *bun.DB {
	return c.db
}

func (c *Container) MediaDB() *bun.DB {
	return c.mediaDB
}

// CacheService returns the cache shared by every service.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// CreateTables creates any missing table in the main and media databases.
func (c *Container) CreateTables(ctx context.Context) error {
	if c.mediaDB == c.db {
		return store.CreateTables(ctx, c.db, models.All()...)
	}
	if err := store.CreateTables(ctx, c.db, models.Core()...); err != nil {
		return err
	}
	return store.CreateTables(ctx, c.mediaDB, models.Media()...)
}

// Close releases the databases and, when it holds connections, the cache backend.
func (c *Container) Close() error {
	var errs []error
	if closer, ok := c.cacheStore.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, closeDatabases(c.db, c.mediaDB))
	return errors.Join(errs...)
}

// NewCachedService builds a cache-aside service for a model the container
// does not know about, on the main database and the shared cache.
//
// Since Go methods cannot have type parameters, this is provided as a package-level function.
// Example: NewCachedService(container, repositorycache.Definition[models.Friend]{...})
func NewCachedService[T any](c *Container, def repositorycache.Definition[T]) *repositorycache.Service[T] {
	return repositorycache.New[T](store.New[T](c.db), c.cacheService, def, repositorycache.WithLogger(c.logger))
}

func closeDatabases(db, mediaDB *bun.DB) error {
	err := db.Close()
	if mediaDB != db {
		err = errors.Join(err, mediaDB.Close())
	}
	return err
}
