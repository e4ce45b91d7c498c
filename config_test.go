package yongeon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvDictDir, "")
	path := writeConfig(t, `{
		"dictionaryDir": "/var/lib/yongeon",
		"dictionaryName": "sejong",
		"logLevel": "debug",
		"server": {
			"listenAddress": ":9090",
			"corsAllowedOrigins": ["https://example.org"],
			"requestsPerSecond": 20
		}
	}`)
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, conf.Validate())

	assert.Equal(t, "/var/lib/yongeon", conf.DictionaryDir)
	assert.Equal(t, "sejong", conf.DictionaryName)
	assert.Equal(t, DfltCitationMarker, conf.CitationMarker)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, ":9090", conf.Server.ListenAddress)
	assert.Equal(t, []string{"https://example.org"}, conf.Server.CORSAllowedOrigins)
	assert.Equal(t, 20.0, conf.Server.RequestsPerSecond)
	assert.Equal(t, DfltRequestsBurst, conf.Server.Burst)
	assert.Equal(t, DfltServerReadTimeoutSecs, conf.Server.ReadTimeoutSecs)

	paths := conf.DictionaryPaths()
	assert.Equal(t, filepath.Join("/var/lib/yongeon", "sejong"), paths.Dir)
	assert.Equal(t, filepath.Join("/var/lib/yongeon", "sejong", "Eomis.txt"), paths.Endings)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	var confErr *ConfigError
	assert.ErrorAs(t, err, &confErr)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, `{"dictionaryDir": `))
	assert.ErrorAs(t, err, &confErr)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvDictDir, "/opt/dict")
	conf, err := LoadConfig(writeConfig(t, `{"dictionaryDir": "dictionary"}`))
	require.NoError(t, err)
	assert.Equal(t, "/opt/dict", conf.DictionaryDir)
	assert.Equal(t, DfltDictionaryName, conf.DictionaryName)
}

func TestConfigValidate(t *testing.T) {
	t.Setenv(EnvDictDir, "")
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"name with path", func(c *Config) { c.DictionaryName = "../other" }, "dictionaryName"},
		{"marker with space", func(c *Config) { c.CitationMarker = "다 " }, "citationMarker"},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }, "logLevel"},
		{"timeout", func(c *Config) { c.Server.ReadTimeoutSecs = -1 }, "server"},
		{"rate", func(c *Config) { c.Server.RequestsPerSecond = -2 }, "server"},
		{"dir", func(c *Config) { c.DictionaryDir = "" }, "dictionaryDir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			require.NoError(t, conf.Validate())
			tt.modify(conf)
			err := conf.Validate()
			var confErr *ConfigError
			require.ErrorAs(t, err, &confErr)
			assert.Equal(t, tt.field, confErr.Field)
		})
	}
	var conf *Config
	assert.Error(t, conf.Validate())
}
