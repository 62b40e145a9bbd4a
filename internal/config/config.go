package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Lock      LockConfig      `toml:"lock"`
	Directory DirectoryConfig `toml:"directory"`
	Notifier  NotifierConfig  `toml:"notifier"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// ServerConfig таймауты в секундах
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig пустой Addr отключает Redis (локальные блокировки, уведомления только в лог)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled возвращает true, если адрес Redis задан
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LockConfig параметры блокировки провайдера
type LockConfig struct {
	Backend       string `toml:"backend"` // local | redis
	TTLMs         int    `toml:"ttl_ms"`
	RetryInterval int    `toml:"retry_interval_ms"`
	WaitTimeout   int    `toml:"wait_timeout_ms"`
}

func (l LockConfig) TTL() time.Duration {
	return time.Duration(l.TTLMs) * time.Millisecond
}

func (l LockConfig) Retry() time.Duration {
	return time.Duration(l.RetryInterval) * time.Millisecond
}

func (l LockConfig) Wait() time.Duration {
	return time.Duration(l.WaitTimeout) * time.Millisecond
}

type DirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// NotifierConfig Channel - канал Redis pub/sub
type NotifierConfig struct {
	Enabled bool   `toml:"enabled"`
	Channel string `toml:"channel"`
	Timeout int    `toml:"timeout"` // секунды
}

// RateLimitConfig Rate в формате ulule/limiter, например "10-M"
type RateLimitConfig struct {
	Enabled bool   `toml:"enabled"`
	Rate    string `toml:"rate"`
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

// Load читает конфигурацию из TOML-файла.
// Затем подгружает .env (если есть) и применяет переменные окружения поверх файла.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Directory.URL, "DIRECTORY_URL")
	setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func (c *Config) applyDefaults() {
	defaultInt(&c.Server.HTTPPort, 8080)
	defaultInt(&c.Server.ReadTimeout, 10)
	defaultInt(&c.Server.WriteTimeout, 10)
	defaultInt(&c.Server.IdleTimeout, 60)
	defaultInt(&c.Server.ShutdownTimeout, 15)

	defaultInt(&c.Database.Port, 5432)
	defaultString(&c.Database.SSLMode, "disable")
	defaultInt(&c.Database.MaxOpenConns, 25)
	defaultInt(&c.Database.MaxIdleConns, 5)
	defaultInt(&c.Database.ConnMaxLifetime, 300)

	defaultString(&c.Lock.Backend, "local")
	defaultInt(&c.Lock.TTLMs, 5000)
	defaultInt(&c.Lock.RetryInterval, 50)
	defaultInt(&c.Lock.WaitTimeout, 3000)

	defaultInt(&c.Directory.Timeout, 5)

	defaultString(&c.Notifier.Channel, "therapy-booking.events")
	defaultInt(&c.Notifier.Timeout, 5)

	defaultString(&c.RateLimit.Rate, "10-M")

	defaultString(&c.Logs.Level, "info")

	defaultString(&c.Metrics.Path, "/metrics")
	defaultString(&c.Metrics.ServiceName, "therapy_booking")
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("%w: directory.url is required", ErrInvalidConfig)
	}
	switch c.Lock.Backend {
	case "local":
	case "redis":
		if !c.Redis.Enabled() {
			return fmt.Errorf("%w: lock.backend=redis requires redis.addr", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown lock.backend %q", ErrInvalidConfig, c.Lock.Backend)
	}
	if c.Lock.WaitTimeout < c.Lock.RetryInterval {
		return fmt.Errorf("%w: lock.wait_timeout_ms must be >= lock.retry_interval_ms", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func defaultString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func defaultInt(dst *int, value int) {
	if *dst == 0 {
		*dst = value
	}
}
