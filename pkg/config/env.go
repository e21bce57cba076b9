package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "scootly"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SCOOTLY_DB_DSN"
	EnvDBHost = "SCOOTLY_DB_HOST"
	EnvDBUser = "SCOOTLY_DB_USER"
	EnvDBName = "SCOOTLY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
