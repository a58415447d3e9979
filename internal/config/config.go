package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultPath is resolved relative to the working directory
	DefaultPath = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. DROPBOX_TOKEN_CLIENT_ID
	EnvPrefix = "DROPBOX_TOKEN"

	DefaultAuthURL  = "https://www.dropbox.com/oauth2/authorize"
	DefaultTokenURL = "https://api.dropbox.com/oauth2/token"
	DefaultAPIURL   = "https://api.dropboxapi.com/2"
)

// Config holds the Dropbox app credentials and endpoints
type Config struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AuthURL      string `mapstructure:"auth_url"`
	TokenURL     string `mapstructure:"token_url"`
	APIURL       string `mapstructure:"api_url"`
}

// InitViper creates a viper instance reading path with env overrides
func InitViper(path string) *viper.Viper {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	_ = v.BindEnv("client_id")
	_ = v.BindEnv("client_secret")

	v.SetDefault("auth_url", DefaultAuthURL)
	v.SetDefault("token_url", DefaultTokenURL)
	v.SetDefault("api_url", DefaultAPIURL)
	return v
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	return LoadViper(InitViper(path))
}

func LoadViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, parseError(err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, parseError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, parseError(err)
	}
	return &cfg, nil
}

// Validate checks that the app credentials are present
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func parseError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// ErrInvalidConfig is returned for a missing, malformed or incomplete config file
var ErrInvalidConfig = errors.New("could not parse the configuration file")
