package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"postgres": {"host": "db.local", "database": "postgres", "user": "u", "password": "p"},
		"staging": {"filepath": "/data/twitch", "delimiter": "|", "header": true},
		"rawg": {"base_url": "https://rawg.test/api", "key": "k", "timeout": 10},
		"server": {"port": 9090, "mode": "release"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "db.local", cfg.Postgres.Host)
	assert.Equal(t, "/data/twitch", cfg.Staging.Filepath)
	assert.Equal(t, "|", cfg.Staging.Delimiter)
	assert.True(t, cfg.Staging.Header)
	assert.Equal(t, "https://rawg.test/api", cfg.RAWG.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_MissingSectionsReported(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": 8080}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.Contains(t, err.Error(), "staging")
	// Present keys survive validation failure.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"postgres": {"host": "h", "database": "d", "user": "u", "password": "from-file"},
		"staging": {"filepath": "/data", "delimiter": ",", "header": false}
	}`)
	t.Setenv("POSTGRES_PASSWORD", "from-env")
	t.Setenv("RAWG_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Postgres.Password)
	assert.Equal(t, "env-key", cfg.RAWG.Key)
}

func TestLoadConfig_DefaultBaseURL(t *testing.T) {
	path := writeConfig(t, `{
		"postgres": {"host": "h", "database": "d", "user": "u", "password": "p"},
		"staging": {"filepath": "/data", "delimiter": ",", "header": false}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.rawg.io/api", cfg.RAWG.BaseURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	p := PostgresConfig{Host: "h", Database: "postgres", User: "u", Password: "p"}
	assert.Equal(t, "host=h dbname=twitchy user=u password=p sslmode=disable", p.DSN("twitchy"))
}
