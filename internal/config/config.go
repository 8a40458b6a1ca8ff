package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/agentx-labs/putup/internal/branding"
)

const fileType = "yaml"

// Keys of the user configuration.
const (
	KeyAuthor   = "author"
	KeyEmail    = "email"
	KeyLicense  = "license"
	KeyLogLevel = "log_level"
)

// Config is the loaded user configuration.
type Config struct {
	v    *viper.Viper
	path string
}

// Settings is the typed view of the configuration.
type Settings struct {
	Author   string
	Email    string
	License  string
	LogLevel string
}

// Load reads the config file at path, layered under environment variables.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for _, key := range []string{KeyAuthor, KeyEmail, KeyLicense, KeyLogLevel} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return &Config{v: v, path: path}, nil
}

// Path returns the location of the config file.
func (c *Config) Path() string { return c.path }

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Settings returns the typed configuration.
func (c *Config) Settings() Settings {
	return Settings{
		Author:   c.Get(KeyAuthor),
		Email:    c.Get(KeyEmail),
		License:  c.Get(KeyLicense),
		LogLevel: c.Get(KeyLogLevel),
	}
}
