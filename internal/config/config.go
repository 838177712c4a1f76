package config

type Config interface {
	EnvConfig
	AuthConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetCredentialsPath() string
	GetRequestTimeoutSeconds() int
	GetEnv() string
}

type AuthConfig interface {
	GetAuthRouteMode() string
	GetStaticSuperRole() string
	GetLoginRoute() string
	GetHomeRoute() string
}

type mainConfig struct {
	EnvVars
	AuthVars
}

func New() Config {
	return mainConfig{}
}
