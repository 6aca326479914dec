package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/bazarbot/core/config"
)

// BotConfig holds the flea-market specific settings.
type BotConfig struct {
	// ChannelID is the destination channel for published listings.
	ChannelID int64 `yaml:"channel_id" envconfig:"BOT_CHANNEL_ID"`
	// TagsFile points to the line-delimited tag catalog.
	TagsFile string `yaml:"tags_file" envconfig:"BOT_TAGS_FILE"`
	// PublishOpenHour is the first hour of the publishing window; 0 -> 9.
	PublishOpenHour int `yaml:"publish_open_hour" envconfig:"BOT_PUBLISH_OPEN_HOUR"`
}

// Config aggregates the reusable core configuration with the bot section.
type Config struct {
	Core coreconfig.Config `yaml:",inline"`
	Bot  BotConfig         `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads configuration from a YAML file and environment
// variables, then validates both the core and the bot sections.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeBot(&cfg.Bot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeBot(cfg *BotConfig) error {
	if cfg.ChannelID == 0 {
		return fmt.Errorf("bot.channel_id is required")
	}
	if cfg.TagsFile == "" {
		return fmt.Errorf("bot.tags_file is required")
	}
	if cfg.PublishOpenHour < 0 || cfg.PublishOpenHour > 23 {
		return fmt.Errorf("bot.publish_open_hour must be within 0..23")
	}
	return nil
}
