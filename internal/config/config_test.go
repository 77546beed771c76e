package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "DataIndonesiaForecast.csv", cfg.Paths.IndonesiaSource)
	assert.Equal(t, "DataJepangForecast.csv", cfg.Paths.JapanSource)
	assert.Equal(t, "DataSingaporeForecast.csv", cfg.Paths.SingaporeSource)
	assert.NoError(t, cfg.validate())
}

func TestSourcePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "testdata"

	paths := cfg.SourcePaths()
	assert.Equal(t, filepath.Join("testdata", "DataIndonesiaForecast.csv"), paths[0])
	assert.Equal(t, filepath.Join("testdata", "DataJepangForecast.csv"), paths[1])
	assert.Equal(t, filepath.Join("testdata", "DataSingaporeForecast.csv"), paths[2])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
		{
			name:    "missing source name",
			mutate:  func(c *Config) { c.Paths.JapanSource = "" },
			wantErr: "all three source files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSources(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = dir

	t.Run("missing files fail", func(t *testing.T) {
		err := cfg.ValidateSources()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source file unreadable")
	})

	t.Run("readable files pass", func(t *testing.T) {
		for _, path := range cfg.SourcePaths() {
			require.NoError(t, os.WriteFile(path, []byte("Indicator,Tahun,Value\n"), 0644))
		}
		assert.NoError(t, cfg.ValidateSources())
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FCDASH_SERVER_PORT", "9090")
	t.Setenv("FCDASH_PATHS_DATA_DIR", "elsewhere")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "elsewhere", cfg.Paths.DataDir)
}
