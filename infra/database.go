package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/fintrack/infra/migrations"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect names the SQL backend selected from the database URL.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectOf reports which backend url selects.
func DialectOf(url string) Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// sqliteDSN turns sqlite://path into a go-sqlite3 DSN with foreign keys on.
func sqliteDSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite://")
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// NewDBConnection opens the store named by cnf.Url. Postgres URLs use the
// pgx-backed postgres driver, everything else is treated as SQLite.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch DialectOf(cnf.Url) {
	case DialectPostgres:
		dialector = postgres.Open(cnf.Url)
	default:
		dialector = sqlite.Open(sqliteDSN(cnf.Url))
	}

	connection, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if DialectOf(cnf.Url) == DialectSQLite {
		// In-memory databases live and die with their connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	return connection, nil
}

// Migrate brings the schema up to date. Postgres runs the embedded SQL
// migrations; SQLite is migrated from the GORM models.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return migrations.Up(sqlDB)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
