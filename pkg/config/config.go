package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Directory    DirectoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = DefaultSQLiteDSN
		}
		cfg.DB.Driver = DriverSQLite
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRADEDIR_APP_ENV" required:"true"`
	Port         string `envconfig:"TRADEDIR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TRADEDIR_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"TRADEDIR_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"TRADEDIR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"TRADEDIR_CORS_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout     time.Duration `envconfig:"TRADEDIR_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"TRADEDIR_HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"TRADEDIR_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	DSN    string `envconfig:"TRADEDIR_DB_DSN"`
	Driver string `envconfig:"TRADEDIR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRADEDIR_DB_HOST"`
	LegacyPort     int    `envconfig:"TRADEDIR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRADEDIR_DB_USER"`
	LegacyPassword string `envconfig:"TRADEDIR_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRADEDIR_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRADEDIR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRADEDIR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRADEDIR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRADEDIR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRADEDIR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; without a URL or address the category cache is
// disabled and readiness skips the Redis ping.
type RedisConfig struct {
	URL          string        `envconfig:"TRADEDIR_REDIS_URL"`
	Address      string        `envconfig:"TRADEDIR_REDIS_ADDR"`
	Password     string        `envconfig:"TRADEDIR_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRADEDIR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRADEDIR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRADEDIR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRADEDIR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRADEDIR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRADEDIR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether enough connection data was supplied to dial Redis.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TRADEDIR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TRADEDIR_AUTO_MIGRATE" default:"false"`
}

type DirectoryConfig struct {
	CategoryCacheTTL time.Duration `envconfig:"TRADEDIR_CATEGORY_CACHE_TTL" default:"10m"`
	ParallelCounts   bool          `envconfig:"TRADEDIR_DIRECTORY_PARALLEL_COUNTS" default:"false"`
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
