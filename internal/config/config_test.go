package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "buildwith.dev/internal/errors"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.Set("site.content", filepath.Join(t.TempDir(), "missing.yaml"))
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, SourceFixtures, cfg.Source)
	assert.Equal(t, "data", cfg.Data.Path)
	assert.Equal(t, 10*time.Minute, cfg.Media.TTL)
	assert.False(t, cfg.Media.Verify)
	assert.False(t, cfg.Content.SanitizeHTML)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NotNil(t, cfg.SiteContent)
	assert.Equal(t, "build with saransh", cfg.SiteContent.Brand)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
source: api
api:
  base_url: https://api.example.com/v1
  timeout: 3s
media:
  verify: true
  fallbacks:
    - /static/fallback-1.svg
    - /static/fallback-2.svg
content:
  sanitize_html: true
`), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, SourceAPI, cfg.Source)
	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Media.Verify)
	assert.Equal(t, []string{"/static/fallback-1.svg", "/static/fallback-2.svg"}, cfg.Media.Fallbacks)
	assert.True(t, cfg.Content.SanitizeHTML)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER_ADDR", ":9090")
	t.Setenv("PORTFOLIO_DEV_LIVE_RELOAD", "true")
	t.Setenv("PORTFOLIO_LOG_FORMAT", "console")

	v := newViper(t)
	Bind(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Dev.LiveReload)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
		key  string
	}{
		{"unknown source", map[string]any{"source": "ftp"}, "config source"},
		{"api without scheme", map[string]any{"source": "api", "api.base_url": "example.com"}, "config api.base_url"},
		{"api with bad scheme", map[string]any{"source": "api", "api.base_url": "file:///tmp"}, "config api.base_url"},
		{"fixtures without path", map[string]any{"data.path": ""}, "config data.path"},
		{"empty addr", map[string]any{"server.addr": ""}, "config server.addr"},
		{"negative ttl", map[string]any{"media.ttl": -time.Second}, "config media.ttl"},
		{"bad log format", map[string]any{"log.format": "xml"}, "config log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			for k, val := range tt.set {
				v.Set(k, val)
			}

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, siteerrors.ErrConfig)

			var se *siteerrors.SiteError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.key, se.Op)
		})
	}
}

func TestLoadSiteContent(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		site, err := LoadSiteContent("")
		require.NoError(t, err)
		assert.Equal(t, "Saransh", site.Hero.Name)
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
brand: build with ada
hero:
  name: Ada
  stats:
    - number: "12+"
      label: Apps shipped
toolkit:
  - name: Flutter
    percent: 140
faqs:
  - question: Do you work remotely?
    answer: Yes.
`), 0o644))

		site, err := LoadSiteContent(path)
		require.NoError(t, err)
		assert.Equal(t, "build with ada", site.Brand)
		assert.Equal(t, "Ada", site.Hero.Name)
		require.Len(t, site.Hero.Stats, 1)
		assert.Equal(t, "12+", site.Hero.Stats[0].Number)
		require.Len(t, site.Toolkit, 1)
		assert.Equal(t, 100, site.Toolkit[0].Percentage())
		require.Len(t, site.FAQs, 1)

		// Keys absent from the file keep their defaults.
		assert.NotEmpty(t, site.Nav)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brand: [unterminated"), 0o644))

		_, err := LoadSiteContent(path)
		assert.ErrorIs(t, err, siteerrors.ErrConfig)
	})
}

func TestReadInConfig(t *testing.T) {
	t.Run("missing default file is fine", func(t *testing.T) {
		t.Chdir(t.TempDir())
		used, err := ReadInConfig(viper.New(), "")
		require.NoError(t, err)
		assert.Empty(t, used)
	})

	t.Run("default file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".portfolio.yml"), []byte("server:\n  addr: \":7000\"\n"), 0o644))
		t.Chdir(dir)

		v := viper.New()
		used, err := ReadInConfig(v, "")
		require.NoError(t, err)
		assert.Equal(t, ".portfolio.yml", filepath.Base(used))
		assert.Equal(t, ":7000", v.GetString("server.addr"))
	})

	t.Run("env names the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prod.yml")
		require.NoError(t, os.WriteFile(path, []byte("source: api\n"), 0o644))
		t.Setenv(ConfigFileEnv, path)

		v := viper.New()
		used, err := ReadInConfig(v, "")
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, "api", v.GetString("source"))
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := ReadInConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
