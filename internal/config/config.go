package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      string         `json:"env" envconfig:"ENV" default:"local"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	Firebase FirebaseConfig `json:"firebase"`
	Twilio   TwilioConfig   `json:"twilio"`
	Notify   NotifyConfig   `json:"notify"`
	Live     LiveConfig     `json:"live"`
}

type HttpConfig struct {
	Port            string        `json:"port" envconfig:"HTTP_PORT" default:":4000"`
	ReadTimeout     time.Duration `json:"read_timeout" envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type PostgresConfig struct {
	Host     string `json:"host" envconfig:"POSTGRES_HOST" default:"pg-local"`
	Port     int    `json:"port" envconfig:"POSTGRES_PORT" default:"5432"`
	Database string `json:"database" envconfig:"POSTGRES_DB" default:"sos_db"`
	User     string `json:"user" envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `json:"password,omitempty" envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	SSLMode  string `json:"ssl_mode" envconfig:"POSTGRES_SSL_MODE" default:"disable"`

	MaxConns        int32         `envconfig:"POSTGRES_MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"POSTGRES_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `envconfig:"POSTGRES_MAX_CONN_LIFETIME" default:"1h"`
}

// Empty Addr disables the contact cache.
type RedisConfig struct {
	Addr     string        `json:"addr" envconfig:"REDIS_ADDR"`
	Password string        `json:"password,omitempty" envconfig:"REDIS_PASSWORD"`
	DB       int           `json:"db" envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `json:"ttl" envconfig:"CONTACT_CACHE_TTL" default:"5m"`
}

type FirebaseConfig struct {
	ServiceAccountJSON string `json:"-" envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountFile string `json:"service_account_file" envconfig:"FIREBASE_SERVICE_ACCOUNT_FILE" default:"serviceAccountKey.json"`
	BaseURL            string `json:"base_url" envconfig:"FCM_BASE_URL" default:"https://fcm.googleapis.com"`
}

type TwilioConfig struct {
	SID     string `json:"-" envconfig:"TW_SID"`
	Token   string `json:"-" envconfig:"TW_TOKEN"`
	From    string `json:"from" envconfig:"TW_FROM"`
	BaseURL string `json:"base_url" envconfig:"TWILIO_BASE_URL" default:"https://api.twilio.com"`
}

// Enabled reports whether SMS credentials are present. Without them the SMS
// channel is switched off entirely.
func (t TwilioConfig) Enabled() bool {
	return t.SID != "" && t.Token != ""
}

type NotifyConfig struct {
	Workers        int           `json:"workers" envconfig:"NOTIFY_WORKERS" default:"4"`
	AttemptTimeout time.Duration `json:"attempt_timeout" envconfig:"NOTIFY_ATTEMPT_TIMEOUT" default:"10s"`
}

type LiveConfig struct {
	RPS   int           `json:"rps" envconfig:"LIVE_RATE_RPS" default:"20"`
	Burst int           `json:"burst" envconfig:"LIVE_RATE_BURST" default:"40"`
	TTL   time.Duration `json:"ttl" envconfig:"LIVE_RATE_TTL" default:"10m"`
}

func LoadConfig() (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("sms_enabled", cfg.Twilio.Enabled()))

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':4000'")
	}

	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}

	if c.Notify.Workers <= 0 {
		return errors.New("NOTIFY_WORKERS must be positive")
	}

	if c.Notify.AttemptTimeout <= 0 {
		return errors.New("NOTIFY_ATTEMPT_TIMEOUT must be positive")
	}

	if c.Twilio.Enabled() && c.Twilio.From == "" {
		return errors.New("TW_FROM required when TW_SID and TW_TOKEN are set")
	}

	if c.Live.RPS <= 0 || c.Live.Burst <= 0 {
		return errors.New("LIVE_RATE_RPS and LIVE_RATE_BURST must be positive")
	}

	return nil
}
