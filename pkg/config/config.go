package config

import (
	"time"
)

type DB struct {
	// Url selects the driver: postgres:// or postgresql:// for Postgres,
	// sqlite://path or file:... for SQLite.
	Url             string        `envconfig:"URL" default:"file:fintrack.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

type Jwt struct {
	AccessSecret  string        `envconfig:"ACCESS_SECRET" required:"true"`
	RefreshSecret string        `envconfig:"REFRESH_SECRET" required:"true"`
	AccessExpiry  time.Duration `envconfig:"ACCESS_EXPIRY" default:"15m"`
}

type Auth struct {
	Jwt            *Jwt `envconfig:"JWT"`
	RefreshTTLDays int  `envconfig:"REFRESH_TTL_DAYS" default:"7"`
	BcryptCost     int  `envconfig:"BCRYPT_COST" default:"10"`
}

type Ledger struct {
	DefaultCurrency      string `envconfig:"DEFAULT_CURRENCY" default:"CNY"`
	DefaultPageSize      int    `envconfig:"DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize          int    `envconfig:"MAX_PAGE_SIZE" default:"100"`
	AllowArchivedTargets bool   `envconfig:"ALLOW_ARCHIVED_TARGETS" default:"false"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"fintrack:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fintrack]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

// IsDevelopment reports whether the app runs in development mode.
func (a *App) IsDevelopment() bool {
	return a.Env == "development"
}

// IsTest reports whether the app runs under tests.
func (a *App) IsTest() bool {
	return a.Env == "test"
}
