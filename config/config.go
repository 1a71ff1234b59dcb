package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/blang/semver"
	"github.com/spf13/viper"
)

// Load loads the configuration. configPath wins over BC_CONFIG; when neither
// is set the standard locations are searched and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	e, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = e.ConfigPath
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bodocord"))
		}
		v.AddConfigPath("/etc/bodocord/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	e.apply(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("bcdice.url", "https://bcdice.onlinesession.app")
	v.SetDefault("bcdice.timeout", "30s")
	v.SetDefault("bcdice.min_api_version", "2.0.0")

	v.SetDefault("discord.fold_width", true)
	v.SetDefault("discord.default_dice_sides", 6)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "bodocord/bodocord")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.BCDice.URL == "" {
		return fmt.Errorf("bcdice.url is required")
	}
	u, err := url.Parse(cfg.BCDice.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("bcdice.url must be an http or https URL: %s", cfg.BCDice.URL)
	}
	if cfg.BCDice.Timeout <= 0 {
		return fmt.Errorf("bcdice.timeout must be positive")
	}
	if cfg.BCDice.MinAPIVersion != "" {
		if _, err := semver.ParseTolerant(cfg.BCDice.MinAPIVersion); err != nil {
			return fmt.Errorf("invalid bcdice.min_api_version: %s", cfg.BCDice.MinAPIVersion)
		}
	}

	if sides := cfg.Discord.DefaultDiceSides; sides < 2 || sides > 1000 {
		return fmt.Errorf("discord.default_dice_sides must be between 2 and 1000, got %d", sides)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
