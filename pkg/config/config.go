package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable read by Load.
	EnvPrefix = "SEAQUOTE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Pricing      PricingConfig
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
	Env          string `envconfig:"SEAQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"SEAQUOTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SEAQUOTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SEAQUOTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SEAQUOTE_DB_DSN"`
	Driver string `envconfig:"SEAQUOTE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SEAQUOTE_DB_HOST"`
	Port     int    `envconfig:"SEAQUOTE_DB_PORT" default:"5432"`
	User     string `envconfig:"SEAQUOTE_DB_USER"`
	Password string `envconfig:"SEAQUOTE_DB_PASSWORD"`
	Name     string `envconfig:"SEAQUOTE_DB_NAME"`
	SSLMode  string `envconfig:"SEAQUOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SEAQUOTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SEAQUOTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SEAQUOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SEAQUOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds a postgres DSN from discrete parts when one is not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db config: either SEAQUOTE_DB_DSN or host/user/name must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SEAQUOTE_REDIS_URL"`
	Address      string        `envconfig:"SEAQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"SEAQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SEAQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SEAQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SEAQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SEAQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SEAQUOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SEAQUOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret          string        `envconfig:"SEAQUOTE_JWT_SECRET" required:"true"`
	Issuer          string        `envconfig:"SEAQUOTE_JWT_ISSUER" default:"seaquote"`
	AccessTokenTTL  time.Duration `envconfig:"SEAQUOTE_JWT_ACCESS_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"SEAQUOTE_JWT_REFRESH_TTL" default:"720h"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SEAQUOTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SEAQUOTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SEAQUOTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SEAQUOTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SEAQUOTE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SEAQUOTE_AUTO_MIGRATE" default:"false"`
}

type PricingConfig struct {
	QuoteValidityDays int `envconfig:"SEAQUOTE_QUOTE_VALIDITY_DAYS" default:"30"`
}
