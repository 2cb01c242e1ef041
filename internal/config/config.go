// Package config loads the bot configuration from a YAML file, a .env file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/oklahomer/go-sarah/v4"
	"gopkg.in/yaml.v3"

	discord "github.com/oklahomer/go-sarah-prefixbot"
	"github.com/oklahomer/go-sarah-prefixbot/internal/bot"
)

// TokenEnv is the environment variable holding the Discord bot token.
// It takes precedence over discord.token in the configuration file.
const TokenEnv = "DISCORD_TOKEN"

// ErrMissingToken indicates that no bot token was found in the file or the environment.
var ErrMissingToken = errors.New("'" + TokenEnv + "' was not found")

// PrefixConfig configures the dynamic prefix hook.
type PrefixConfig struct {
	// Default is the prefix the hook returns.
	Default string `yaml:"default"`

	// FollowState makes the hook return the prefix set by the prefix command, when there is one.
	FollowState bool `yaml:"follow_state"`
}

// Config is the root configuration.
type Config struct {
	Discord *discord.Config `yaml:"discord"`
	Prefix  PrefixConfig    `yaml:"prefix"`
	Sarah   *sarah.Config   `yaml:"sarah"`
}

// Default returns a Config populated with defaults. The token is empty.
func Default() *Config {
	return &Config{
		Discord: discord.NewConfig(),
		Prefix: PrefixConfig{
			Default:     bot.DefaultPrefix,
			FollowState: false,
		},
		Sarah: sarah.NewConfig(),
	}
}

// Load reads the YAML configuration file at path.
// If path is empty or the file does not exist it returns Default() with no error.
// Missing keys retain their default values. Durations such as discord.edit_track_window
// are written as strings like "10m" or "0s".
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// An explicit null section resets the pointer; fall back to defaults.
	if cfg.Discord == nil {
		cfg.Discord = discord.NewConfig()
	}
	if cfg.Sarah == nil {
		cfg.Sarah = sarah.NewConfig()
	}

	return cfg, nil
}

// LoadEnv loads variables from the .env file at path into the environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Resolve loads the .env file, then the configuration file, applies the
// environment and checks that a token is available.
func Resolve(path, envFile string) (*Config, error) {
	if err := LoadEnv(envFile); err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv(TokenEnv); token != "" {
		cfg.Discord.Token = token
	}

	if cfg.Discord.Token == "" {
		return nil, ErrMissingToken
	}

	return cfg, nil
}
