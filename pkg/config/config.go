package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CARRENTAL_DB_DSN"
	EnvDBHost = "CARRENTAL_DB_HOST"
	EnvDBUser = "CARRENTAL_DB_USER"
	EnvDBName = "CARRENTAL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cron         CronConfig
	Sendgrid     SendgridConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARRENTAL_APP_ENV" default:"dev"`
	Port         string `envconfig:"CARRENTAL_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"CARRENTAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARRENTAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARRENTAL_DB_DSN"`
	Driver string `envconfig:"CARRENTAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARRENTAL_DB_HOST"`
	LegacyPort     int    `envconfig:"CARRENTAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARRENTAL_DB_USER"`
	LegacyPassword string `envconfig:"CARRENTAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARRENTAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARRENTAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARRENTAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARRENTAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARRENTAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARRENTAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is only consumed by the cron worker, which uses redis to hold
// its single-flight lock. The API process runs without redis.
type RedisConfig struct {
	URL          string        `envconfig:"CARRENTAL_REDIS_URL"`
	Address      string        `envconfig:"CARRENTAL_REDIS_ADDR"`
	Password     string        `envconfig:"CARRENTAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARRENTAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARRENTAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARRENTAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARRENTAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARRENTAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARRENTAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval       time.Duration `envconfig:"CARRENTAL_CRON_INTERVAL" default:"24h"`
	ReminderDays   int           `envconfig:"CARRENTAL_CRON_REMINDER_DAYS" default:"1"`
	LockTTL        time.Duration `envconfig:"CARRENTAL_CRON_LOCK_TTL" default:"25h"`
	MetricsAddress string        `envconfig:"CARRENTAL_CRON_METRICS_ADDR"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"CARRENTAL_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"CARRENTAL_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"CARRENTAL_SENDGRID_FROM_NAME" default:"Car Rental Service"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARRENTAL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
