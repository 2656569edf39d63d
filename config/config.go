package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	SOURCE_KIND=postgres
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=brokerpulse
//	REDIS_ADDR=localhost:6379
//	DASHBOARD_TOP_K=10
//	DASHBOARD_PINNED_ENTITY=royal lepage noralta real estate
type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Postgres  PostgresConfig
	S3        S3Config
	Redis     RedisConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// Source kinds accepted by SOURCE_KIND.
const (
	SourcePostgres = "postgres"
	SourceS3       = "s3"
	SourceFile     = "file"
)

// SourceConfig selects where the raw tables come from.
//
// Fields:
//   - Kind: postgres, s3 or file.
//   - Dir: directory holding the CSV exports when Kind is file.
//   - TransactionsKey / HeadcountsKey: object keys (s3) or file names (file).
type SourceConfig struct {
	Kind            string
	Dir             string
	TransactionsKey string
	HeadcountsKey   string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// S3Config points at an S3 or S3-compatible bucket holding the exports.
type S3Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	ForcePathStyle bool
}

// RedisConfig enables the table cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// DashboardConfig holds leaderboard defaults.
type DashboardConfig struct {
	TopK         int
	PinnedEntity string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SOURCE_KIND", SourcePostgres)
	viper.SetDefault("SOURCE_DIR", "data")
	viper.SetDefault("S3_TRANSACTIONS_KEY", "transactions.csv")
	viper.SetDefault("S3_HEADCOUNTS_KEY", "headcounts.csv")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "brokerpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("S3_FORCE_PATH_STYLE", false)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("DASHBOARD_TOP_K", 10)
	viper.SetDefault("DASHBOARD_PINNED_ENTITY", "royal lepage noralta real estate")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Source: SourceConfig{
			Kind:            strings.ToLower(strings.TrimSpace(viper.GetString("SOURCE_KIND"))),
			Dir:             viper.GetString("SOURCE_DIR"),
			TransactionsKey: viper.GetString("S3_TRANSACTIONS_KEY"),
			HeadcountsKey:   viper.GetString("S3_HEADCOUNTS_KEY"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		S3: S3Config{
			Endpoint:       viper.GetString("S3_ENDPOINT"),
			Region:         viper.GetString("S3_REGION"),
			Bucket:         viper.GetString("S3_BUCKET"),
			AccessKey:      viper.GetString("S3_ACCESS_KEY"),
			SecretKey:      viper.GetString("S3_SECRET_KEY"),
			UseSSL:         viper.GetBool("S3_USE_SSL"),
			ForcePathStyle: viper.GetBool("S3_FORCE_PATH_STYLE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
		Dashboard: DashboardConfig{
			TopK:         viper.GetInt("DASHBOARD_TOP_K"),
			PinnedEntity: viper.GetString("DASHBOARD_PINNED_ENTITY"),
		},
	}

	AppConfig.Postgres.URL = PostgresURL(AppConfig.Postgres)

	validateConfig()
}

// PostgresURL builds the database/sql DSN for p.
func PostgresURL(p PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// missingKeys lists required variables absent from cfg. Which keys are
// required depends on the selected source.
func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch cfg.Source.Kind {
	case SourcePostgres:
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	case SourceS3:
		if cfg.S3.Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
		if cfg.Source.TransactionsKey == "" {
			missing = append(missing, "S3_TRANSACTIONS_KEY")
		}
		if cfg.Source.HeadcountsKey == "" {
			missing = append(missing, "S3_HEADCOUNTS_KEY")
		}
	case SourceFile:
		if cfg.Source.Dir == "" {
			missing = append(missing, "SOURCE_DIR")
		}
	default:
		missing = append(missing, "SOURCE_KIND")
	}
	if cfg.Redis.Enabled() && cfg.Redis.TTL <= 0 {
		missing = append(missing, "CACHE_TTL")
	}
	return missing
}

// validateConfig terminates the application when required variables are missing.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}
