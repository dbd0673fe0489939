package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(DBEnvVar, "")
	return dir
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	dir := isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	_, err = os.Stat(filepath.Join(dir, "hanzicards", "config.toml"))
	assert.NoError(t, err)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte(`db_path = "/srv/cards"`+"\n"), 0644))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/cards", config.DBPath)
	assert.Equal(t, 750, config.MaxTokens)
	assert.Equal(t, "gpt-4o-mini", config.OpenAIModel)
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte("db_path = \n"), 0644))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding config file")
}

func TestResolveDBPathPrecedence(t *testing.T) {
	isolate(t)
	require.NoError(t, SetDBPath("from-config"))

	path, err := ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, "from-config", path)

	t.Setenv(DBEnvVar, "from-env")
	path, err = ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", path)

	path, err = ResolveDBPath("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", path)
}
