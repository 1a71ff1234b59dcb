package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	BCDice  BCDiceConfig  `mapstructure:"bcdice"`
	Discord DiscordConfig `mapstructure:"discord"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// BCDiceConfig holds BCDice-API connection details
type BCDiceConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MinAPIVersion string        `mapstructure:"min_api_version"`
}

// DiscordConfig holds the bot settings
type DiscordConfig struct {
	Token string `mapstructure:"token"`
	// TokenParameter names an SSM parameter holding the token
	TokenParameter   string `mapstructure:"token_parameter"`
	GuildID          string `mapstructure:"guild_id"`
	FoldWidth        bool   `mapstructure:"fold_width"`
	DefaultDiceSides int    `mapstructure:"default_dice_sides"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig contains self-update settings
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
