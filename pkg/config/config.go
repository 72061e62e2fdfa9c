package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	Features FeaturesConfig
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
	Env          string `envconfig:"CARSI_APP_ENV" required:"true"`
	Port         string `envconfig:"CARSI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARSI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARSI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARSI_DB_DSN"`
	Driver string `envconfig:"CARSI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARSI_DB_HOST"`
	LegacyPort     int    `envconfig:"CARSI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARSI_DB_USER"`
	LegacyPassword string `envconfig:"CARSI_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARSI_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARSI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARSI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARSI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARSI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARSI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARSI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARSI_REDIS_ADDR"`
	Password     string        `envconfig:"CARSI_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARSI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARSI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARSI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARSI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARSI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARSI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	CacheTTL        time.Duration `envconfig:"CARSI_CATALOG_CACHE_TTL" default:"2m"`
	DefaultPageSize int           `envconfig:"CARSI_CATALOG_DEFAULT_PAGE_SIZE" default:"12"`
}

type CartConfig struct {
	MirrorTTL time.Duration `envconfig:"CARSI_CART_MIRROR_TTL" default:"168h"`
}

type CheckoutConfig struct {
	FreeShippingThreshold string        `envconfig:"CARSI_FREE_SHIPPING_THRESHOLD" default:"500"`
	StagingTTL            time.Duration `envconfig:"CARSI_CHECKOUT_STAGING_TTL" default:"24h"`
}

type FeaturesConfig struct {
	UseSQLite   bool `envconfig:"CARSI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CARSI_AUTO_MIGRATE" default:"false"`
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
