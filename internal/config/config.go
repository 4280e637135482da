package config // package config loads application configuration from environment variables

import (
	"log" // log reports configuration errors before the structured logger exists
	"os"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; optional ones fall back to the defaults below.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	DBMaxOpenConns    int           // connection pool size
	DBMaxIdleConns    int           // idle connections kept in the pool
	DBConnMaxLifetime time.Duration // recycle connections after this long

	APIPrefix       string        // route prefix for the movie endpoints, e.g. "/api/v1"
	PageSize        int           // films per listing page
	QueryTimeout    time.Duration // upper bound for one list/detail call
	ShutdownTimeout time.Duration // grace period for in-flight requests

	Log LogConfig
}

// LogConfig controls the logrus logger and optional rotating log file.
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // "text" or "json"
	File       string // path of the rotating log file; empty disables it
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:    envStr("APP_ENV", "dev"),
		Port:   envStr("APP_PORT", "8000"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"), // empty allowed
		DBHost: envStr("DB_HOST", "127.0.0.1"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: must("DB_NAME"),

		DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		APIPrefix:       envStr("API_PREFIX", ""),
		PageSize:        envInt("PAGE_SIZE", 50),
		QueryTimeout:    envDur("QUERY_TIMEOUT", 5*time.Second),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),

		Log: LogConfig{
			Level:      envStr("LOG_LEVEL", "info"),
			Format:     envStr("LOG_FORMAT", "text"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  envInt("LOG_FILE_MAX_SIZE_MB", 100),
			MaxBackups: envInt("LOG_FILE_MAX_BACKUPS", 5),
		},
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
