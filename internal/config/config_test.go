package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devicepulse/console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.New()

	require.Equal(t, "http://localhost:8090", cfg.GetAPIBaseURL())
	require.Equal(t, "static", cfg.GetAuthRouteMode())
	require.Equal(t, "superadmin", cfg.GetStaticSuperRole())
	require.Equal(t, "/login", cfg.GetLoginRoute())
	require.Equal(t, "/home", cfg.GetHomeRoute())
	require.Equal(t, 15, cfg.GetRequestTimeoutSeconds())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("AUTH_ROUTE_MODE", "dynamic")
	t.Setenv("STATIC_SUPER_ROLE", "root")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")

	cfg := config.New()
	require.Equal(t, "https://api.example.com", cfg.GetAPIBaseURL())
	require.Equal(t, "dynamic", cfg.GetAuthRouteMode())
	require.Equal(t, "root", cfg.GetStaticSuperRole())
	require.Equal(t, 30, cfg.GetRequestTimeoutSeconds())
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "not-a-number")
	require.Equal(t, 15, config.New().GetRequestTimeoutSeconds())
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFileOverridesEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://env.example.com")

	path := writeConfigFile(t, `
api_base_url: https://file.example.com
static_super_role: operator
`)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, "https://file.example.com", cfg.GetAPIBaseURL())
	require.Equal(t, "operator", cfg.GetStaticSuperRole())
	// Fields absent from the file fall back to env/defaults.
	require.Equal(t, "static", cfg.GetAuthRouteMode())
}

func TestLoadFileRejectsInvalidRouteMode(t *testing.T) {
	path := writeConfigFile(t, "auth_route_mode: chaotic\n")

	_, err := config.LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "api_base_url: [unclosed\n")

	_, err := config.LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
