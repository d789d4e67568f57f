package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Gemini     GeminiConfig
	GoogleMaps GoogleMapsConfig
	Planner    PlannerConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// OracleCacheTTL - время жизни закешированных ответов LLM, 0 отключает кеш
	OracleCacheTTL time.Duration
	// PlacesCacheTTL - время жизни соответствия "название -> place_id"
	PlacesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	MaxCandidates  int
}

type GoogleMapsConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	SearchRadius   int // meters
}

type PlannerConfig struct {
	MaxParallelLookups int
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			OracleCacheTTL: time.Duration(viper.GetInt("ORACLE_CACHE_TTL")) * time.Second,
			PlacesCacheTTL: time.Duration(viper.GetInt("PLACES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Gemini: GeminiConfig{
			APIKey:         viper.GetString("GEMINI_API_KEY"),
			Model:          viper.GetString("GEMINI_MODEL"),
			BaseURL:        viper.GetString("GEMINI_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("GEMINI_REQUEST_TIMEOUT")) * time.Second,
			MaxCandidates:  viper.GetInt("GEMINI_MAX_CANDIDATES"),
		},
		GoogleMaps: GoogleMapsConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        viper.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("GOOGLE_MAPS_REQUEST_TIMEOUT")) * time.Second,
			SearchRadius:   viper.GetInt("GOOGLE_MAPS_SEARCH_RADIUS"),
		},
		Planner: PlannerConfig{
			MaxParallelLookups: viper.GetInt("PLANNER_MAX_PARALLEL_LOOKUPS"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults заполняет значения, не заданные в окружении
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.PlacesCacheTTL == 0 {
		c.Cache.PlacesCacheTTL = time.Hour
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.RequestTimeout == 0 {
		c.Gemini.RequestTimeout = 30 * time.Second
	}
	if c.Gemini.MaxCandidates == 0 {
		c.Gemini.MaxCandidates = 10
	}
	if c.GoogleMaps.RequestTimeout == 0 {
		c.GoogleMaps.RequestTimeout = 5 * time.Second
	}
	if c.GoogleMaps.SearchRadius == 0 {
		c.GoogleMaps.SearchRadius = 20000
	}
	if c.Planner.MaxParallelLookups == 0 {
		c.Planner.MaxParallelLookups = 8
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "trip-planning-workers"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
