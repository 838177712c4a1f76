package config

import (
	"os"

	"github.com/devicepulse/console/internal/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileSettings holds the optional YAML configuration file. Any field left
// empty falls back to the environment-variable configuration.
type FileSettings struct {
	APIBaseURL            string `yaml:"api_base_url"`
	AppName               string `yaml:"app_name"`
	CredentialsPath       string `yaml:"credentials_path"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	AuthRouteMode         string `yaml:"auth_route_mode"`
	StaticSuperRole       string `yaml:"static_super_role"`
	LoginRoute            string `yaml:"login_route"`
	HomeRoute             string `yaml:"home_route"`
}

type fileConfig struct {
	EnvVars
	AuthVars
	settings FileSettings
}

var _ Config = fileConfig{}

// LoadFile reads a YAML configuration file and layers it over the
// environment-variable configuration.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[LoadFile] read config file")
	}

	var settings FileSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrap(err, "[LoadFile] parse config file")
	}

	cfg := fileConfig{settings: settings}
	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "[LoadFile] validate")
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.GetAuthRouteMode() {
	case "static", "dynamic":
	default:
		return errors.Errorf("invalid auth route mode %q", cfg.GetAuthRouteMode())
	}
	if cfg.GetAPIBaseURL() == "" {
		return errors.New("api base URL is required")
	}
	return nil
}

func (c fileConfig) GetAPIBaseURL() string {
	return utils.FirstNonEmpty(c.settings.APIBaseURL, c.EnvVars.GetAPIBaseURL())
}

func (c fileConfig) GetAppName() string {
	return utils.FirstNonEmpty(c.settings.AppName, c.EnvVars.GetAppName())
}

func (c fileConfig) GetCredentialsPath() string {
	return utils.FirstNonEmpty(c.settings.CredentialsPath, c.EnvVars.GetCredentialsPath())
}

func (c fileConfig) GetRequestTimeoutSeconds() int {
	if c.settings.RequestTimeoutSeconds > 0 {
		return c.settings.RequestTimeoutSeconds
	}
	return c.EnvVars.GetRequestTimeoutSeconds()
}

func (c fileConfig) GetAuthRouteMode() string {
	return utils.FirstNonEmpty(c.settings.AuthRouteMode, c.AuthVars.GetAuthRouteMode())
}

func (c fileConfig) GetStaticSuperRole() string {
	return utils.FirstNonEmpty(c.settings.StaticSuperRole, c.AuthVars.GetStaticSuperRole())
}

func (c fileConfig) GetLoginRoute() string {
	return utils.FirstNonEmpty(c.settings.LoginRoute, c.AuthVars.GetLoginRoute())
}

func (c fileConfig) GetHomeRoute() string {
	return utils.FirstNonEmpty(c.settings.HomeRoute, c.AuthVars.GetHomeRoute())
}
