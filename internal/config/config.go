package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Queue    QueueConfig
	Triage   TriageConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// QueueConfig tunes the triage job dispatcher.
type QueueConfig struct {
	Concurrency       int
	MaxAttempts       int
	BackoffInitialSec int
	EnqueueDelayMS    int
	ProbeIntervalSec  int
}

// TriageConfig carries the process-level fallbacks for triage policy. The
// authoritative values live in the database; these apply when no row exists.
type TriageConfig struct {
	Provider            string
	AutoCloseEnabled    bool
	ConfidenceThreshold float64
	SLAHours            int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	threshold, err := strconv.ParseFloat(getEnv("TRIAGE_CONFIDENCE_THRESHOLD", "0.78"), 64)
	if err != nil || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("invalid TRIAGE_CONFIDENCE_THRESHOLD: %q", os.Getenv("TRIAGE_CONFIDENCE_THRESHOLD"))
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Queue: QueueConfig{
			Concurrency:       getEnvAsInt("QUEUE_CONCURRENCY", 5),
			MaxAttempts:       getEnvAsInt("QUEUE_MAX_ATTEMPTS", 3),
			BackoffInitialSec: getEnvAsInt("QUEUE_BACKOFF_INITIAL_SECONDS", 2),
			EnqueueDelayMS:    getEnvAsInt("QUEUE_ENQUEUE_DELAY_MS", 1000),
			ProbeIntervalSec:  getEnvAsInt("QUEUE_PROBE_INTERVAL_SECONDS", 15),
		},
		Triage: TriageConfig{
			Provider:            getEnv("TRIAGE_PROVIDER", "deterministic"),
			AutoCloseEnabled:    getEnvAsBool("TRIAGE_AUTO_CLOSE_ENABLED", true),
			ConfidenceThreshold: threshold,
			SLAHours:            getEnvAsInt("TRIAGE_SLA_HOURS", 24),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// EnqueueDelay is the settle delay applied before a triage job becomes runnable.
func (q QueueConfig) EnqueueDelay() time.Duration {
	if q.EnqueueDelayMS <= 0 {
		return 0
	}
	return time.Duration(q.EnqueueDelayMS) * time.Millisecond
}

// BackoffInitial is the first retry delay for failed triage jobs.
func (q QueueConfig) BackoffInitial() time.Duration {
	if q.BackoffInitialSec <= 0 {
		return 2 * time.Second
	}
	return time.Duration(q.BackoffInitialSec) * time.Second
}

// ProbeInterval is how often broker connectivity is re-evaluated.
func (q QueueConfig) ProbeInterval() time.Duration {
	if q.ProbeIntervalSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(q.ProbeIntervalSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
