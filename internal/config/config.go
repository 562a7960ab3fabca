package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	Redis          RedisConfig       `toml:"redis"`
	Kafka          KafkaConfig       `toml:"kafka"`
	CatalogService IntegrationConfig `toml:"catalog_service"`
	StaffService   IntegrationConfig `toml:"staff_service"`
	Booking        BookingConfig     `toml:"booking"`
	Sweeper        SweeperConfig     `toml:"sweeper"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	KeyPrefix       string `toml:"key_prefix"`
	DraftTTLMinutes int    `toml:"draft_ttl_minutes"`
}

func (r RedisConfig) DraftTTL() time.Duration {
	return time.Duration(r.DraftTTLMinutes) * time.Minute
}

type KafkaConfig struct {
	Enabled             bool   `toml:"enabled"`
	Brokers             string `toml:"brokers"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	BatchSize           int    `toml:"batch_size"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig правила бронирования и значения по умолчанию для рабочих часов
type BookingConfig struct {
	Timezone                     string  `toml:"timezone"`
	DefaultOpenTime              string  `toml:"default_open_time"`
	DefaultCloseTime             string  `toml:"default_close_time"`
	SlotGranularityMinutes       int     `toml:"slot_granularity_minutes"`
	MinBookingNoticeMinutes      int     `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays           int     `toml:"advance_booking_days"`
	DepositPercent               float64 `toml:"deposit_percent"`
	RequireConfirmBeforeComplete bool    `toml:"require_confirm_before_complete"`
	MaxCommitRetries             int     `toml:"max_commit_retries"`
}

// Location часовой пояс салона
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

type SweeperConfig struct {
	Enabled             bool   `toml:"enabled"`
	Schedule            string `toml:"schedule"`
	PendingGraceMinutes int    `toml:"pending_grace_minutes"`
}

// Load читает config.toml, подмешивает секреты из окружения (.env при наличии)
// и проверяет обязательные значения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon-booking-service"},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			KeyPrefix:       "salon",
			DraftTTLMinutes: 60,
		},
		Kafka: KafkaConfig{
			PollIntervalSeconds: 2,
			BatchSize:           100,
			WriteTimeoutSeconds: 10,
		},
		CatalogService: IntegrationConfig{Timeout: 5},
		StaffService:   IntegrationConfig{Timeout: 5},
		Booking: BookingConfig{
			Timezone:                     "UTC",
			DefaultOpenTime:              "09:00",
			DefaultCloseTime:             "20:00",
			SlotGranularityMinutes:       30,
			MinBookingNoticeMinutes:      60,
			RequireConfirmBeforeComplete: true,
			MaxCommitRetries:             3,
		},
		Sweeper: SweeperConfig{
			Schedule:            "@every 5m",
			PendingGraceMinutes: 30,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.Host == "" || c.Database.DBName == "":
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	case c.CatalogService.URL == "":
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	case c.StaffService.URL == "":
		return fmt.Errorf("%w: staff_service.url is required", ErrInvalidConfig)
	case c.Booking.SlotGranularityMinutes <= 0:
		return fmt.Errorf("%w: booking.slot_granularity_minutes must be positive", ErrInvalidConfig)
	case c.Booking.DepositPercent < 0 || c.Booking.DepositPercent > 100:
		return fmt.Errorf("%w: booking.deposit_percent must be within [0, 100]", ErrInvalidConfig)
	case c.Booking.MaxCommitRetries < 0:
		return fmt.Errorf("%w: booking.max_commit_retries must not be negative", ErrInvalidConfig)
	case c.Redis.DraftTTLMinutes <= 0:
		return fmt.Errorf("%w: redis.draft_ttl_minutes must be positive", ErrInvalidConfig)
	case c.Kafka.Enabled && c.Kafka.Brokers == "":
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	return nil
}
