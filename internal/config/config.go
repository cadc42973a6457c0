package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverValkey = "valkey"
	CacheDriverMemory = "memory"

	SearchSourceBackend  = "backend"
	SearchSourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Geocoder  GeocoderConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Valkey    ValkeyConfig
	Cache     CacheConfig
	Meeting   MeetingConfig
	Log       LogConfig
	Worker    WorkerConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

// BackendConfig - REST бэкенд с магазинами
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// GeocoderConfig - сервис автодополнения адресов
type GeocoderConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ValkeyConfig struct {
	Addr string
}

type CacheConfig struct {
	Driver           string
	LocationCacheTTL time.Duration
}

// MeetingConfig - параметры поиска места встречи
type MeetingConfig struct {
	PageSize     int
	Oversample   int
	SearchSource string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

type AnalyticsConfig struct {
	Enabled       bool
	NATSURL       string
	SubjectPrefix string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	// .env опционален, переменные окружения имеют приоритет
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("API_ALLOW_ORIGINS"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			RequestTimeout: time.Duration(v.GetInt("BACKEND_TIMEOUT")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:        strings.TrimRight(v.GetString("GEOCODER_BASE_URL"), "/"),
			RequestTimeout: time.Duration(v.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Valkey: ValkeyConfig{
			Addr: v.GetString("VALKEY_ADDR"),
		},
		Cache: CacheConfig{
			Driver:           strings.ToLower(v.GetString("CACHE_DRIVER")),
			LocationCacheTTL: time.Duration(v.GetInt("LOCATION_CACHE_TTL")) * time.Second,
		},
		Meeting: MeetingConfig{
			PageSize:     v.GetInt("MEETING_PAGE_SIZE"),
			Oversample:   v.GetInt("MEETING_OVERSAMPLE"),
			SearchSource: strings.ToLower(v.GetString("SEARCH_SOURCE")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
		},
		Analytics: AnalyticsConfig{
			Enabled:       v.GetBool("ANALYTICS_ENABLED"),
			NATSURL:       v.GetString("NATS_URL"),
			SubjectPrefix: v.GetString("ANALYTICS_SUBJECT_PREFIX"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:4000/api")
	v.SetDefault("BACKEND_TIMEOUT", 10)
	v.SetDefault("GEOCODER_BASE_URL", "http://localhost:4000/api")
	v.SetDefault("GEOCODER_TIMEOUT", 10)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "coffee_finder")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("VALKEY_ADDR", "localhost:6379")
	v.SetDefault("CACHE_DRIVER", CacheDriverRedis)
	v.SetDefault("LOCATION_CACHE_TTL", 25*60)
	v.SetDefault("MEETING_PAGE_SIZE", 12)
	v.SetDefault("MEETING_OVERSAMPLE", 3)
	v.SetDefault("SEARCH_SOURCE", SearchSourceBackend)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORKER_CONSUMER_GROUP", "shop-indexing-workers")
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("ANALYTICS_SUBJECT_PREFIX", "analytics")
}

// Validate проверяет обязательные поля и допустимые значения
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("API_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.Backend.BaseURL == "" {
		errs = append(errs, "BACKEND_BASE_URL is required")
	}
	if c.Backend.RequestTimeout <= 0 {
		errs = append(errs, "BACKEND_TIMEOUT must be positive")
	}
	if c.Geocoder.BaseURL == "" {
		errs = append(errs, "GEOCODER_BASE_URL is required")
	}
	switch c.Cache.Driver {
	case CacheDriverRedis, CacheDriverValkey, CacheDriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("CACHE_DRIVER must be redis, valkey or memory, got %q", c.Cache.Driver))
	}
	if c.Cache.LocationCacheTTL <= 0 {
		errs = append(errs, "LOCATION_CACHE_TTL must be positive")
	}
	switch c.Meeting.SearchSource {
	case SearchSourceBackend, SearchSourcePostgres:
	default:
		errs = append(errs, fmt.Sprintf("SEARCH_SOURCE must be backend or postgres, got %q", c.Meeting.SearchSource))
	}
	if c.Meeting.PageSize <= 0 {
		errs = append(errs, "MEETING_PAGE_SIZE must be positive")
	}
	if c.Meeting.Oversample <= 0 {
		errs = append(errs, "MEETING_OVERSAMPLE must be positive")
	}
	if c.Analytics.Enabled && c.Analytics.NATSURL == "" {
		errs = append(errs, "NATS_URL is required when ANALYTICS_ENABLED")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
