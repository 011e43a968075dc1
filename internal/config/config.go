// Package config loads the service configuration from a TOML file,
// with secrets and endpoints overridable from the environment.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Schedule ScheduleConfig `toml:"schedule"`
	Booking  BookingConfig  `toml:"booking"`
	Redis    RedisConfig    `toml:"redis"`
	Uploads  UploadsConfig  `toml:"uploads"`
	Payments PaymentsConfig `toml:"payments"`
	CORS     CORSConfig     `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// TrustedProxies IPs or CIDRs whose X-Forwarded-For is honoured.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a single-host prefix.
func (s ServerConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("server.trusted_proxies: %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("server.trusted_proxies: %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN returns a lib/pq connection string.
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

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type ScheduleConfig struct {
	Timezone string `toml:"timezone"`
}

// Location resolves Timezone. Load has already validated it.
func (s ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type BookingConfig struct {
	UnpaidGraceMinutes  int     `toml:"unpaid_grace_minutes"`
	CreateRatePerSecond float64 `toml:"create_rate_per_second"`
	CreateBurst         int     `toml:"create_burst"`
}

// UnpaidGrace is the time a pending booking may wait for payment.
func (b BookingConfig) UnpaidGrace() time.Duration {
	return time.Duration(b.UnpaidGraceMinutes) * time.Minute
}

type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	Queue       string `toml:"queue"`
	Concurrency int    `toml:"concurrency"`
}

type UploadsConfig struct {
	Driver           string `toml:"driver"`
	Dir              string `toml:"dir"`
	PublicPrefix     string `toml:"public_prefix"`
	MaxSizeMB        int    `toml:"max_size_mb"`
	CloudinaryFolder string `toml:"cloudinary_folder"`
	CloudName        string `toml:"cloud_name"`
	APIKey           string `toml:"api_key"`
	APISecret        string `toml:"api_secret"`
}

// MaxSize returns the per-file limit in bytes.
func (u UploadsConfig) MaxSize() int64 {
	return int64(u.MaxSizeMB) << 20
}

type PaymentsConfig struct {
	Enabled             bool   `toml:"enabled"`
	StripeWebhookSecret string `toml:"stripe_webhook_secret"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает .env (если есть), затем TOML файл, применяет переменные
// окружения, значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Payments.StripeWebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Uploads.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&c.Uploads.APIKey, "CLOUDINARY_API_KEY")
	setString(&c.Uploads.APISecret, "CLOUDINARY_API_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: HTTP_PORT: %w", err)
		}
		c.Server.HTTPPort = port
	}

	return nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-salonbooking"
	}

	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}

	setDefault(&c.Booking.UnpaidGraceMinutes, 15)
	if c.Booking.CreateRatePerSecond == 0 {
		c.Booking.CreateRatePerSecond = 2
	}
	setDefault(&c.Booking.CreateBurst, 5)

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.Queue == "" {
		c.Redis.Queue = "bookings"
	}
	setDefault(&c.Redis.Concurrency, 5)

	if c.Uploads.Driver == "" {
		c.Uploads.Driver = "local"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.PublicPrefix == "" {
		c.Uploads.PublicPrefix = "/uploads"
	}
	setDefault(&c.Uploads.MaxSizeMB, 5)
	if c.Uploads.CloudinaryFolder == "" {
		c.Uploads.CloudinaryFolder = "salons"
	}
}

// Validate проверяет обязательные поля и согласованность секций
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret (or JWT_SECRET) is required")
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("schedule.timezone %q is unknown", c.Schedule.Timezone))
	}
	if c.Booking.UnpaidGraceMinutes < 0 {
		problems = append(problems, "booking.unpaid_grace_minutes must not be negative")
	}
	if c.Booking.CreateRatePerSecond < 0 || c.Booking.CreateBurst < 0 {
		problems = append(problems, "booking rate limit must not be negative")
	}

	switch c.Uploads.Driver {
	case "local":
	case "cloudinary":
		if c.Uploads.CloudName == "" || c.Uploads.APIKey == "" || c.Uploads.APISecret == "" {
			problems = append(problems, "uploads.driver=cloudinary requires cloud_name, api_key and api_secret")
		}
	default:
		problems = append(problems, fmt.Sprintf("uploads.driver %q is unknown", c.Uploads.Driver))
	}

	if c.Payments.Enabled && c.Payments.StripeWebhookSecret == "" {
		problems = append(problems, "payments.enabled requires stripe_webhook_secret (or STRIPE_WEBHOOK_SECRET)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func setDefault(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
