package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field names its variable in full.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv           = "BACKOFFICE_APP_ENV"
	EnvPort             = "BACKOFFICE_APP_PORT"
	EnvLogLevel         = "BACKOFFICE_LOG_LEVEL"
	EnvUpstreamEndpoint = "BACKOFFICE_UPSTREAM_ENDPOINT"
	EnvUpstreamToken    = "BACKOFFICE_UPSTREAM_ACCESS_TOKEN"
	EnvUpstreamPageSize = "BACKOFFICE_UPSTREAM_PAGE_SIZE"
	EnvRedisURL         = "BACKOFFICE_REDIS_URL"
	EnvJWTSecret        = "BACKOFFICE_JWT_SECRET"
	EnvJWTIssuer        = "BACKOFFICE_JWT_ISSUER"
	EnvJWTExpMins       = "BACKOFFICE_JWT_EXPIRATION_MINUTES"
	EnvExportDir        = "BACKOFFICE_EXPORT_DIR"
)

type Config struct {
	App       AppConfig
	Service   ServiceConfig
	Upstream  UpstreamConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Export    ExportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.ensureEndpoint(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BACKOFFICE_APP_ENV" required:"true"`
	Port         string `envconfig:"BACKOFFICE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BACKOFFICE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BACKOFFICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BACKOFFICE_SERVICE_KIND" default:"api"`
}

// UpstreamConfig points at the commerce platform Admin API. Every dashboard
// view issues one query of PageSize records; there is no cursor following.
type UpstreamConfig struct {
	Endpoint    string        `envconfig:"BACKOFFICE_UPSTREAM_ENDPOINT" required:"true"`
	AccessToken string        `envconfig:"BACKOFFICE_UPSTREAM_ACCESS_TOKEN" required:"true"`
	Timeout     time.Duration `envconfig:"BACKOFFICE_UPSTREAM_TIMEOUT" default:"10s"`
	PageSize    int           `envconfig:"BACKOFFICE_UPSTREAM_PAGE_SIZE" default:"50"`
}

// maxPageSize caps the single-fetch batch; the engine works on small
// in-memory batches, not full exports of the shop.
const maxPageSize = 250

type RedisConfig struct {
	URL          string        `envconfig:"BACKOFFICE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BACKOFFICE_REDIS_ADDR"`
	Password     string        `envconfig:"BACKOFFICE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BACKOFFICE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BACKOFFICE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BACKOFFICE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BACKOFFICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BACKOFFICE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BACKOFFICE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BACKOFFICE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BACKOFFICE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BACKOFFICE_JWT_EXPIRATION_MINUTES" default:"60"`
}

func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"BACKOFFICE_RATE_LIMIT_WINDOW" default:"1m"`
	TokenLimit int           `envconfig:"BACKOFFICE_RATE_LIMIT_TOKEN_LIMIT" default:"120"`
	IPLimit    int           `envconfig:"BACKOFFICE_RATE_LIMIT_IP_LIMIT" default:"300"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BACKOFFICE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type ExportConfig struct {
	Dir string `envconfig:"BACKOFFICE_EXPORT_DIR" default:"exports"`
}

func (u *UpstreamConfig) ensureEndpoint() error {
	parsed, err := url.Parse(u.Endpoint)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvUpstreamEndpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL", EnvUpstreamEndpoint)
	}
	if u.PageSize <= 0 {
		u.PageSize = 50
	}
	if u.PageSize > maxPageSize {
		return fmt.Errorf("%s must be at most %d", EnvUpstreamPageSize, maxPageSize)
	}
	return nil
}
