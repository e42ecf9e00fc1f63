// Package config loads server configuration through viper (file, env and
// flags) and the editorial site content from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

// Content sources.
const (
	SourceAPI      = "api"
	SourceFixtures = "fixtures"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SERVER_ADDR.
const EnvPrefix = "PORTFOLIO"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	Source  string        `mapstructure:"source"`
	Data    DataConfig    `mapstructure:"data"`
	Site    SiteConfig    `mapstructure:"site"`
	Media   MediaConfig   `mapstructure:"media"`
	Content ContentConfig `mapstructure:"content"`
	Dev     DevConfig     `mapstructure:"dev"`
	Log     LogConfig     `mapstructure:"log"`

	// SiteContent is read from Site.Content, or defaulted.
	SiteContent *models.SiteContent `mapstructure:"-"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DataConfig points at the fixture directory.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// SiteConfig points at the site content YAML file.
type SiteConfig struct {
	Content string `mapstructure:"content"`
}

type MediaConfig struct {
	Verify    bool          `mapstructure:"verify"`
	TTL       time.Duration `mapstructure:"ttl"`
	Fallbacks []string      `mapstructure:"fallbacks"`
}

type ContentConfig struct {
	SanitizeHTML bool `mapstructure:"sanitize_html"`
}

type DevConfig struct {
	LiveReload bool `mapstructure:"live_reload"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("source", SourceFixtures)
	v.SetDefault("data.path", "data")
	v.SetDefault("site.content", "data/site.yaml")
	v.SetDefault("media.verify", false)
	v.SetDefault("media.ttl", 10*time.Minute)
	v.SetDefault("content.sanitize_html", false)
	v.SetDefault("dev.live_reload", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Bind enables PORTFOLIO_* environment overrides on v.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v, validates it and loads the site
// content file.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Slices set through the environment arrive as one string.
	if v.IsSet("media.fallbacks") && len(cfg.Media.Fallbacks) <= 1 {
		if fb := v.GetStringSlice("media.fallbacks"); len(fb) > len(cfg.Media.Fallbacks) {
			cfg.Media.Fallbacks = fb
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	site, err := LoadSiteContent(cfg.Site.Content)
	if err != nil {
		return nil, err
	}
	cfg.SiteContent = site
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceAPI:
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return siteerrors.NewConfig("api.base_url", fmt.Sprintf("invalid url %q", c.API.BaseURL))
		}
	case SourceFixtures:
		if c.Data.Path == "" {
			return siteerrors.NewConfig("data.path", "required when source is fixtures")
		}
	default:
		return siteerrors.NewConfig("source", fmt.Sprintf("unsupported source %q (supported: api, fixtures)", c.Source))
	}

	if c.Server.Addr == "" {
		return siteerrors.NewConfig("server.addr", "required")
	}
	if c.Media.TTL < 0 {
		return siteerrors.NewConfig("media.ttl", "must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return siteerrors.NewConfig("log.format", fmt.Sprintf("unsupported format %q", c.Log.Format))
	}
	return nil
}

// LoadSiteContent reads the site copy from path. A missing file, or an
// empty path, yields the built-in defaults.
func LoadSiteContent(path string) (*models.SiteContent, error) {
	site := models.DefaultSiteContent()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return site, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, siteerrors.NewConfig("site.content", fmt.Sprintf("failed to parse %s: %v", path, err))
	}
	return site, nil
}

// ConfigFileEnv names a config file when --config is not given.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// ReadInConfig points v at the config file and reads it. The file is, in
// order: file, $PORTFOLIO_CONFIG_FILE, or .portfolio.yml in the working
// directory. Only an explicitly named file is required to exist. It
// returns the file used, if any.
func ReadInConfig(v *viper.Viper, file string) (string, error) {
	explicit := true
	switch {
	case file != "":
		v.SetConfigFile(file)
	case os.Getenv(ConfigFileEnv) != "":
		v.SetConfigFile(os.Getenv(ConfigFileEnv))
	default:
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".portfolio")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}
