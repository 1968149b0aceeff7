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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Auth         AuthConfig
	Password     PasswordConfig
	Checkout     CheckoutConfig
	Address      AddressConfig
	Cron         CronConfig
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
	Env          string `envconfig:"SIAMSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SIAMSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SIAMSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIAMSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SIAMSHOP_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SIAMSHOP_DB_DSN"`
	Driver string `envconfig:"SIAMSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SIAMSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"SIAMSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SIAMSHOP_DB_USER"`
	LegacyPassword string `envconfig:"SIAMSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"SIAMSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"SIAMSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SIAMSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SIAMSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SIAMSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SIAMSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SIAMSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SIAMSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SIAMSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SIAMSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SIAMSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SIAMSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SIAMSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SIAMSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SIAMSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SIAMSHOP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SIAMSHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SIAMSHOP_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SIAMSHOP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type AuthConfig struct {
	LoginRateLimit       int64         `envconfig:"SIAMSHOP_LOGIN_RATE_LIMIT" default:"10"`
	LoginRateLimitWindow time.Duration `envconfig:"SIAMSHOP_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SIAMSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SIAMSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SIAMSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SIAMSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SIAMSHOP_ARGON_KEY_LEN" default:"32"`
}

type CheckoutConfig struct {
	// ShippingFee is a flat per-order amount in whole baht.
	ShippingFee int           `envconfig:"SIAMSHOP_CHECKOUT_SHIPPING_FEE" default:"50"`
	CartTTL     time.Duration `envconfig:"SIAMSHOP_CART_TTL" default:"24h"`
}

type AddressConfig struct {
	ProvinceURL  string        `envconfig:"SIAMSHOP_ADDRESS_PROVINCE_URL" default:"https://raw.githubusercontent.com/kongvut/thai-province-data/master/api_province.json"`
	DistrictURL  string        `envconfig:"SIAMSHOP_ADDRESS_DISTRICT_URL" default:"https://raw.githubusercontent.com/kongvut/thai-province-data/master/api_amphure.json"`
	FetchTimeout time.Duration `envconfig:"SIAMSHOP_ADDRESS_FETCH_TIMEOUT" default:"10s"`
	CacheTTL     time.Duration `envconfig:"SIAMSHOP_ADDRESS_CACHE_TTL" default:"24h"`
}

type CronConfig struct {
	AddressRefreshInterval time.Duration `envconfig:"SIAMSHOP_CRON_ADDRESS_REFRESH_INTERVAL" default:"24h"`
	LockTTL                time.Duration `envconfig:"SIAMSHOP_CRON_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SIAMSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SIAMSHOP_AUTO_MIGRATE" default:"false"`
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
