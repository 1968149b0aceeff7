package config

// EnvPrefix is empty because every tag carries the full SIAMSHOP_ name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "SIAMSHOP_APP_ENV"
	EnvPort       = "SIAMSHOP_APP_PORT"
	EnvDBDSN      = "SIAMSHOP_DB_DSN"
	EnvDBHost     = "SIAMSHOP_DB_HOST"
	EnvDBUser     = "SIAMSHOP_DB_USER"
	EnvDBName     = "SIAMSHOP_DB_NAME"
	EnvRedisURL   = "SIAMSHOP_REDIS_URL"
	EnvJWTSecret  = "SIAMSHOP_JWT_SECRET"
	EnvJWTIssuer  = "SIAMSHOP_JWT_ISSUER"
	EnvJWTExpMins = "SIAMSHOP_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "SIAMSHOP_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
