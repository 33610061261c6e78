package config

import "time"

// Config is the root application configuration.
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// CatalogConfig holds the catalog build settings.
type CatalogConfig struct {
	FrequencyPath  string `yaml:"frequency_path"  env:"CATALOG_FREQUENCY_PATH"  env-default:"spanish_data/frequency.csv"`
	DictionaryPath string `yaml:"dictionary_path" env:"CATALOG_DICTIONARY_PATH" env-default:"spanish_data/es-en.data"`
	MaxWords       int    `yaml:"max_words"       env:"CATALOG_MAX_WORDS"       env-default:"1000"`
	BatchSize      int    `yaml:"batch_size"      env:"CATALOG_BATCH_SIZE"      env-default:"500"`
	DryRun         bool   `yaml:"dry_run"         env:"CATALOG_DRY_RUN"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN means
// the catalog is kept in memory only.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps requests per client address; 0 disables it.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"600"`

	// ReloadInterval re-reads the published catalog periodically; 0 disables it.
	ReloadInterval time.Duration `yaml:"reload_interval" env:"SERVER_RELOAD_INTERVAL" env-default:"0s"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings for the read API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	MaxAge         int      `yaml:"max_age"         env:"CORS_MAX_AGE"                             env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
