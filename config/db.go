package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-guest-service/models"
)

// ConnectDatabase opens the configured database, applies the migrations and
// seeds demo guests when asked to.
func ConnectDatabase(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.SeedDemoData {
		if err := SeedDatabase(db, log); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Guest{})
}

// SeedDatabase inserts a handful of demo guests into an empty table.
func SeedDatabase(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Guest{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("guests already seeded", zap.Int64("count", count))
		return nil
	}

	guests := []models.Guest{
		{
			FirstName:     "John",
			LastName:      "Doe",
			Email:         "john.doe@example.com",
			Phone:         "+84901234567",
			Address:       "123 Main St, Ho Chi Minh City",
			IDNumber:      "123456789",
			Preferences:   "Non-smoking, High floor, King bed",
			StayHistory:   "2023-01-15: Room 101, 2023-06-20: Room 205",
			LoyaltyPoints: 150,
		},
		{
			FirstName:     "Jane",
			LastName:      "Smith",
			Email:         "jane.smith@example.com",
			Phone:         "+84907654321",
			Preferences:   "Quiet room",
			StayHistory:   "2024-03-02: Room 310",
			LoyaltyPoints: 40,
		},
		{
			FirstName: "Somchai",
			LastName:  "Jaidee",
			Email:     "somchai@example.co.th",
			Phone:     "+66812345678",
			IDNumber:  "1103700000000",
		},
	}

	if err := db.Create(&guests).Error; err != nil {
		return err
	}
	log.Info("demo guests seeded", zap.Int("count", len(guests)))
	return nil
}

func openDialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL:
		dsn, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(resolvePostgresDSN(cfg)), nil
	case DriverSQLite:
		name := cfg.Name
		if name == "" || name == "hotel_db" {
			name = "hotel_guests.db"
		}
		return sqlite.Open(name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func resolveMySQLDSN(cfg DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		if strings.HasPrefix(cfg.URL, "mysql://") {
			return mysqlDSNFromURL(cfg.URL)
		}
		// already a driver DSN
		return cfg.URL, nil
	}

	mc := newMySQLConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	return mc.FormatDSN(), nil
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}

	mc := newMySQLConfig()
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()
	mc.Addr = net.JoinHostPort(u.Hostname(), port)
	mc.DBName = dbName

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// fixed by newMySQLConfig
		default:
			mc.Params[key] = values[0]
		}
	}
	return mc.FormatDSN(), nil
}

func newMySQLConfig() *gomysql.Config {
	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}

func resolvePostgresDSN(cfg DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	q.Set("TimeZone", "UTC")
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
