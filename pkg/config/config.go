package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	SMTP          SMTPConfig
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
	Env          string `envconfig:"SCOOTLY_APP_ENV" required:"true"`
	Port         string `envconfig:"SCOOTLY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SCOOTLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SCOOTLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SCOOTLY_DB_DSN"`
	Driver string `envconfig:"SCOOTLY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SCOOTLY_DB_HOST"`
	LegacyPort     int    `envconfig:"SCOOTLY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SCOOTLY_DB_USER"`
	LegacyPassword string `envconfig:"SCOOTLY_DB_PASSWORD"`
	LegacyName     string `envconfig:"SCOOTLY_DB_NAME"`
	LegacySSLMode  string `envconfig:"SCOOTLY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SCOOTLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SCOOTLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SCOOTLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SCOOTLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SCOOTLY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SCOOTLY_REDIS_ADDR"`
	Password     string        `envconfig:"SCOOTLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCOOTLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCOOTLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCOOTLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCOOTLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCOOTLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCOOTLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SCOOTLY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SCOOTLY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SCOOTLY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SCOOTLY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SCOOTLY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SCOOTLY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SCOOTLY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SCOOTLY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SCOOTLY_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig carries the platform operator credentials. There is exactly one
// admin identity; it is provisioned through the environment, never the DB.
type AdminConfig struct {
	Username string `envconfig:"SCOOTLY_ADMIN_USERNAME"`
	Password string `envconfig:"SCOOTLY_ADMIN_PASSWORD"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"SCOOTLY_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SCOOTLY_AUTO_MIGRATE" default:"false"`
}

type SMTPConfig struct {
	Host        string `envconfig:"SCOOTLY_SMTP_HOST"`
	Port        string `envconfig:"SCOOTLY_SMTP_PORT" default:"587"`
	Username    string `envconfig:"SCOOTLY_SMTP_USERNAME"`
	Password    string `envconfig:"SCOOTLY_SMTP_PASSWORD"`
	DefaultFrom string `envconfig:"SCOOTLY_SMTP_FROM_EMAIL"`
	FromName    string `envconfig:"SCOOTLY_SMTP_FROM_NAME" default:"Scootly"`
}

// Enabled reports whether the mailer has enough configuration to dispatch.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.DefaultFrom != ""
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
