package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	AppEnv          string
	Port            string
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver string

	// URL wins over the discrete fields when set (mysql:// or postgres://).
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	LogLevel     string
	SeedDemoData bool
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load builds the configuration from the environment. A .env file, if any,
// must already be loaded.
func Load() (*Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "development"),
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     parseList(getEnv("CORS_ORIGINS", ""), []string{"*"}),
			ReadTimeout:     getEnvSeconds("SERVER_READ_TIMEOUT", 10),
			WriteTimeout:    getEnvSeconds("SERVER_WRITE_TIMEOUT", 20),
			IdleTimeout:     getEnvSeconds("SERVER_IDLE_TIMEOUT", 60),
			ShutdownTimeout: getEnvSeconds("SHUTDOWN_TIMEOUT", 15),
		},
		Logger: LoggerConfig{
			Level:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Encoding:          strings.ToLower(getEnv("LOG_ENCODING", "json")),
			DisableCaller:     getEnvBool("LOG_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOG_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:          driver,
			URL:             firstEnv("MYSQL_URL", "DATABASE_URL"),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getEnv("DB_PORT", defaultDBPort(driver)),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASS", ""),
			Name:            getEnv("DB_NAME", "hotel_db"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvSeconds("DB_CONN_MAX_LIFETIME", 300),
			LogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
			SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.Logger.Level))
	}
	switch c.Logger.Encoding {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_ENCODING %q is not one of json, console", c.Logger.Encoding))
	}

	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of mysql, postgres, sqlite", c.Database.Driver))
	}
	switch c.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		errs = append(errs, fmt.Errorf("DB_LOG_LEVEL %q is not one of silent, error, warn, info", c.Database.LogLevel))
	}
	if c.Database.Driver != DriverSQLite && c.Database.URL == "" && c.Database.Name == "" {
		errs = append(errs, errors.New("DB_NAME must not be empty"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func defaultDBPort(driver string) string {
	if driver == DriverPostgres {
		return "5432"
	}
	return "3306"
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func parseList(raw string, fallback []string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
