package config

// EnvPrefix is passed to envconfig; the struct tags already carry the
// full POSDESK_ names.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
