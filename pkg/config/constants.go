package config

// EnvPrefix is empty because every variable tag carries the full name.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)
