package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "carsi"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "CARSI_APP_ENV"
	EnvAppPort = "CARSI_APP_PORT"

	EnvDBDSN  = "CARSI_DB_DSN"
	EnvDBHost = "CARSI_DB_HOST"
	EnvDBUser = "CARSI_DB_USER"
	EnvDBName = "CARSI_DB_NAME"

	EnvRedisURL = "CARSI_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
