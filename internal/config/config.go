package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"pos_order_backend/internal/database"
	"pos_order_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port               string
	StoreDriver        string
	Postgres           database.PostgresConfig
	Mongo              database.MongoConfig
	CORSAllowedOrigins []string
	PublicDir          string
	ReportLocation     *time.Location
	LogLevel           string
	LogFormat          string
}

// LoadEnvFile seeds the environment from envFile when it exists.
// Variables already set in the environment win.
func LoadEnvFile(envFile string) error {
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", envFile, err)
	}
	return nil
}

// Load reads Config from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        utils.Getenv("PORT", "3000"),
		StoreDriver: utils.Getenv("STORE_DRIVER", DriverPostgres),
		Postgres: database.PostgresConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "pos_user"),
			Password:   utils.Getenv("DB_PASSWORD", "pos_password"),
			Name:       utils.Getenv("DB_NAME", "pos_orders"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		Mongo: database.MongoConfig{
			URI:            utils.Getenv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       utils.Getenv("MONGODB_DATABASE", "pos_orders"),
			ConnectTimeout: utils.GetenvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			QueryTimeout:   utils.GetenvDuration("QUERY_TIMEOUT", 0),
		},
		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		PublicDir:          utils.Getenv("PUBLIC_DIR", "public"),
		LogLevel:           utils.Getenv("LOG_LEVEL", "info"),
		LogFormat:          utils.Getenv("LOG_FORMAT", "console"),
	}

	switch cfg.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want %s, %s or %s)", cfg.StoreDriver, DriverPostgres, DriverMongo, DriverMemory)
	}

	tz := utils.Getenv("REPORT_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", tz, err)
	}
	cfg.ReportLocation = loc

	return cfg, nil
}
