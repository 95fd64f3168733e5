package cache

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-progeny-cache/internal/cacheinfra"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend            string        `yaml:"backend"             env:"CACHE_BACKEND"             env-default:"memory"`
	Codec              string        `yaml:"codec"               env:"CACHE_CODEC"               env-default:"msgpack"`
	Capacity           int           `yaml:"capacity"            env:"CACHE_CAPACITY"            env-default:"10000"`
	NumShards          int           `yaml:"num_shards"          env:"CACHE_NUM_SHARDS"          env-default:"256"`
	TTL                time.Duration `yaml:"ttl"                 env:"CACHE_TTL"                 env-default:"24h"`
	EvictionPercentage int           `yaml:"eviction_percentage" env:"CACHE_EVICTION_PERCENTAGE" env-default:"10"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"   env:"CACHE_EVICTION_INTERVAL"`
	Redis              RedisConfig   `yaml:"redis"`
}

// RedisConfig holds the connection settings for the redis backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"CACHE_REDIS_ADDR"`
	Password string        `yaml:"password" env:"CACHE_REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"CACHE_REDIS_DB"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_REDIS_TTL"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	mem := cacheinfra.DefaultConfig()
	return Config{
		Backend:            BackendMemory,
		Codec:              CodecMsgpack,
		Capacity:           mem.Capacity,
		NumShards:          mem.NumShards,
		TTL:                mem.TTL,
		EvictionPercentage: mem.EvictionPercentage,
		EvictionInterval:   mem.EvictionInterval,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	memory := c.Backend == BackendMemory
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendRedis)),
		validation.Field(&c.Codec, validation.In(CodecMsgpack, CodecJSON)),
		validation.Field(&c.Capacity, validation.When(memory, validation.Required, validation.Min(1))),
		validation.Field(&c.NumShards, validation.When(memory, validation.Required, validation.Min(1))),
		validation.Field(&c.TTL, validation.When(memory, validation.Required, validation.Min(time.Duration(1)))),
		validation.Field(&c.EvictionPercentage, validation.When(memory, validation.Required, validation.Min(1), validation.Max(100))),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return err
	}

	if c.Backend == BackendRedis {
		return validation.ValidateStruct(&c.Redis,
			validation.Field(&c.Redis.Addr, validation.Required),
			validation.Field(&c.Redis.DB, validation.Min(0)),
			validation.Field(&c.Redis.TTL, validation.Min(time.Duration(0))),
		)
	}
	return nil
}

// NewStore builds the byte store selected by Backend.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendRedis:
		store, err := cacheinfra.NewRedisStore(cacheinfra.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		store, err := cacheinfra.NewSturdycStore(cfg.toInternal())
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}

// NewCacheService constructs the cache service for the configured backend and codec.
func NewCacheService(cfg Config) (CacheService, error) {
	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	return New(store, codec), nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}
