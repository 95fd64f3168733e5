package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/store"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cache    cache.Config   `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the databases the services persist to. Comments,
// pictures and videos live in the media database, which defaults to the
// main one when MediaDSN is empty.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"    env:"DATABASE_DRIVER"    env-default:"sqlite3"`
	DSN      string `yaml:"dsn"       env:"DATABASE_DSN"       env-default:"file:progeny.db?cache=shared"`
	MediaDSN string `yaml:"media_dsn" env:"DATABASE_MEDIA_DSN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// HasMediaDatabase reports whether media records use a database of their own.
func (d DatabaseConfig) HasMediaDatabase() bool {
	return d.MediaDSN != "" && d.MediaDSN != d.DSN
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In(store.DriverSQLite, store.DriverPostgres)),
		validation.Field(&d.DSN, validation.Required),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.By(func(value any) error {
			_, err := zerolog.ParseLevel(value.(string))
			return err
		})),
		validation.Field(&l.Format, validation.Required, validation.In(LogFormatJSON, LogFormatConsole)),
	)
}
