package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	apiBaseURLVar      = "API_BASE_URL"
	appNameVar         = "APP_NAME"
	credentialsPathVar = "CREDENTIALS_PATH"
	requestTimeoutVar  = "REQUEST_TIMEOUT_SECONDS"
	authRouteModeVar   = "AUTH_ROUTE_MODE"
	staticSuperRoleVar = "STATIC_SUPER_ROLE"
	loginRouteVar      = "LOGIN_ROUTE"
	homeRouteVar       = "HOME_ROUTE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8090")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Device Console")
}

func (EnvVars) GetCredentialsPath() string {
	if path := GetEnv(credentialsPathVar, ""); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.json"
	}
	return filepath.Join(home, ".config", "console", "credentials.json")
}

func (EnvVars) GetRequestTimeoutSeconds() int {
	timeout, err := strconv.Atoi(GetEnv(requestTimeoutVar, "15"))
	if err != nil || timeout <= 0 {
		return 15
	}
	return timeout
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type AuthVars struct{}

var _ AuthConfig = AuthVars{}

func (AuthVars) GetAuthRouteMode() string {
	return GetEnv(authRouteModeVar, "static")
}

func (AuthVars) GetStaticSuperRole() string {
	return GetEnv(staticSuperRoleVar, "superadmin")
}

func (AuthVars) GetLoginRoute() string {
	return GetEnv(loginRouteVar, "/login")
}

func (AuthVars) GetHomeRoute() string {
	return GetEnv(homeRouteVar, "/home")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
