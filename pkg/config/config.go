package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "rlipkart"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "RLIPKART_APP_ENV"
	EnvPort       = "RLIPKART_APP_PORT"
	EnvDBDSN      = "RLIPKART_DB_DSN"
	EnvDBHost     = "RLIPKART_DB_HOST"
	EnvDBUser     = "RLIPKART_DB_USER"
	EnvDBName     = "RLIPKART_DB_NAME"
	EnvRedisURL   = "RLIPKART_REDIS_URL"
	EnvJWTSecret  = "RLIPKART_JWT_SECRET"
	EnvJWTIssuer  = "RLIPKART_JWT_ISSUER"
	EnvJWTExpMins = "RLIPKART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	Assistant     AssistantConfig
	Cart          CartConfig
	Chat          ChatConfig
	Mailer        MailerConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"RLIPKART_APP_ENV" required:"true"`
	Port         string `envconfig:"RLIPKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RLIPKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RLIPKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RLIPKART_DB_DSN"`
	Driver string `envconfig:"RLIPKART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RLIPKART_DB_HOST"`
	LegacyPort     int    `envconfig:"RLIPKART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RLIPKART_DB_USER"`
	LegacyPassword string `envconfig:"RLIPKART_DB_PASSWORD"`
	LegacyName     string `envconfig:"RLIPKART_DB_NAME"`
	LegacySSLMode  string `envconfig:"RLIPKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RLIPKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RLIPKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RLIPKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RLIPKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RLIPKART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RLIPKART_REDIS_ADDR"`
	Password     string        `envconfig:"RLIPKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"RLIPKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RLIPKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RLIPKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RLIPKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RLIPKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RLIPKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"RLIPKART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"RLIPKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"RLIPKART_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"RLIPKART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RLIPKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RLIPKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RLIPKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RLIPKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RLIPKART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"RLIPKART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"RLIPKART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"RLIPKART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	OTPWindow       time.Duration `envconfig:"RLIPKART_AUTH_RATE_LIMIT_OTP_WINDOW" default:"5m"`
	OTPEmailLimit   int           `envconfig:"RLIPKART_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit      int           `envconfig:"RLIPKART_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"20"`
}

type OTPConfig struct {
	TTL    time.Duration `envconfig:"RLIPKART_OTP_TTL" default:"10m"`
	Digits int           `envconfig:"RLIPKART_OTP_DIGITS" default:"6"`
}

type AssistantConfig struct {
	ComposingDelay time.Duration `envconfig:"RLIPKART_ASSISTANT_COMPOSING_DELAY" default:"900ms"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"RLIPKART_CART_TTL" default:"168h"`
}

type ChatConfig struct {
	SessionTTL    time.Duration `envconfig:"RLIPKART_CHAT_SESSION_TTL" default:"1h"`
	SweepInterval time.Duration `envconfig:"RLIPKART_CHAT_SWEEP_INTERVAL" default:"5m"`
}

type MailerConfig struct {
	ResendAPIKey string `envconfig:"RLIPKART_RESEND_API_KEY"`
	FromEmail    string `envconfig:"RLIPKART_MAILER_FROM_EMAIL" default:"noreply@rlipkart.com"`
	AdminEmail   string `envconfig:"RLIPKART_MAILER_ADMIN_EMAIL"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RLIPKART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RLIPKART_AUTO_MIGRATE" default:"false"`
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
