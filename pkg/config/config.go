package config

import "fmt"

// Config aggregates everything the launcher and worker read from the
// environment.
type Config struct {
	Dispatch DispatchConfig
	Queue    QueueConfig
	Log      LogConfig
	Redis    RedisConfig
	SQS      SQSConfig
	Database DatabaseConfig
	Schedule ScheduleConfig
}

// DispatchConfig holds the launcher-side settings.
type DispatchConfig struct {
	// MaxAttempts bounds the dispatch retry loop.
	MaxAttempts int `env:"BG_DISPATCH_MAX_ATTEMPTS" envDefault:"3"`
	// WorkerBin overrides the worker binary path. Empty means the current
	// executable.
	WorkerBin string `env:"BG_WORKER_BIN"`
}

// QueueConfig selects the downstream queue and scopes the allow-list.
type QueueConfig struct {
	Connection        string   `env:"QUEUE_CONNECTION" envDefault:"redis"`
	Name              string   `env:"QUEUE_NAME" envDefault:"default"`
	AllowedNamespaces []string `env:"BG_ALLOWED_NAMESPACES" envSeparator:","`
}

// LogConfig holds the status/error channel file paths.
type LogConfig struct {
	StatusPath string `env:"BG_STATUS_LOG" envDefault:"storage/logs/status.log"`
	ErrorPath  string `env:"BG_ERROR_LOG" envDefault:"storage/logs/errors.log"`
}

// RedisConfig holds configuration for Redis connection
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Addr returns the host:port pair for the Redis client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// DatabaseConfig holds configuration for SQL database connection
type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION" envDefault:"mysql"` // mysql, pgsql
	Host       string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port       string `env:"DB_PORT" envDefault:"3306"`
	Database   string `env:"DB_DATABASE"`
	Username   string `env:"DB_USERNAME"`
	Password   string `env:"DB_PASSWORD"`
	// Table is the jobs table name.
	Table string `env:"QUEUE_TABLE" envDefault:"jobs"`
}

// ScheduleConfig selects the distributed lock backend for schedule:run.
type ScheduleConfig struct {
	LockStore string `env:"SCHEDULE_LOCK_STORE"` // redis, database or empty
}
