package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "BULKMANDI"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "BULKMANDI_DB_DSN"
	EnvDBHost = "BULKMANDI_DB_HOST"
	EnvDBUser = "BULKMANDI_DB_USER"
	EnvDBName = "BULKMANDI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
