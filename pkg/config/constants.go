package config

const (
	EnvPrefix = "TRADEDIR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultSQLiteDSN = "file:tradedir.db?_foreign_keys=on"

	EnvAppEnv = "TRADEDIR_APP_ENV"
	EnvDBDSN  = "TRADEDIR_DB_DSN"
	EnvDBHost = "TRADEDIR_DB_HOST"
	EnvDBUser = "TRADEDIR_DB_USER"
	EnvDBName = "TRADEDIR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
