package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	JWT           JWTConfig
	SMTP          SMTPConfig
	Notify        NotifyConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TYRESTORE_APP_ENV" required:"true"`
	Port         int    `envconfig:"TYRESTORE_APP_PORT" default:"5000"`
	PortAttempts int    `envconfig:"TYRESTORE_APP_PORT_ATTEMPTS" default:"5"`
	LogLevel     string `envconfig:"TYRESTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TYRESTORE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"TYRESTORE_CORS_ORIGINS" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type MongoConfig struct {
	URI      string `envconfig:"TYRESTORE_MONGODB_URI" required:"true"`
	Database string `envconfig:"TYRESTORE_MONGODB_DATABASE" default:"tyrestore"`

	ConnectTimeout         time.Duration `envconfig:"TYRESTORE_MONGODB_CONNECT_TIMEOUT" default:"10s"`
	ServerSelectionTimeout time.Duration `envconfig:"TYRESTORE_MONGODB_SERVER_SELECTION_TIMEOUT" default:"5s"`
	SocketTimeout          time.Duration `envconfig:"TYRESTORE_MONGODB_SOCKET_TIMEOUT" default:"45s"`
}

// RedisConfig is optional: with no URL or address configured the API runs
// without auth rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"TYRESTORE_REDIS_URL"`
	Address      string        `envconfig:"TYRESTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TYRESTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TYRESTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TYRESTORE_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"TYRESTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TYRESTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TYRESTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret         string `envconfig:"TYRESTORE_JWT_SECRET" required:"true"`
	Issuer         string `envconfig:"TYRESTORE_JWT_ISSUER" default:"tyrestore"`
	ExpirationDays int    `envconfig:"TYRESTORE_JWT_EXPIRATION_DAYS" default:"7"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationDays <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationDays) * 24 * time.Hour
}

type SMTPConfig struct {
	Host     string `envconfig:"TYRESTORE_SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"TYRESTORE_SMTP_PORT" default:"587"`
	Username string `envconfig:"TYRESTORE_SMTP_USERNAME"`
	Password string `envconfig:"TYRESTORE_SMTP_PASSWORD"`
	From     string `envconfig:"TYRESTORE_SMTP_FROM"`

	MaxAttempts    int           `envconfig:"TYRESTORE_SMTP_MAX_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"TYRESTORE_SMTP_RETRY_BASE_DELAY" default:"2s"`
}

// Sender returns the From address, falling back to the SMTP username.
func (s SMTPConfig) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.Username
}

// NotifyConfig controls who receives the admin copy of order notifications.
// When AdminEmails is empty the service falls back to the first account
// flagged as admin.
type NotifyConfig struct {
	AdminEmails []string `envconfig:"TYRESTORE_NOTIFY_ADMIN_EMAILS"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow       time.Duration `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit   int           `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit      int           `envconfig:"TYRESTORE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}
