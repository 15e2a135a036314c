package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds bot configuration loaded from environment variables and an
// optional YAML settings file.
type Config struct {
	ServerURL string `yaml:"server_url"`
	RedisURL  string `yaml:"redis_url"`
	Strategy  string `yaml:"strategy"`
	BotName   string `yaml:"bot_name"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ServerURL: envOrDefault("SERVER_URL", "http://localhost:3009"),
		RedisURL:  os.Getenv("REDIS_URL"),
		Strategy:  envOrDefault("STRATEGY", "greedy"),
		BotName:   envOrDefault("BOT_NAME", "greedy-bot"),
	}
}

// ApplyFile overlays settings from a YAML file. Fields left empty in the
// file keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if file.ServerURL != "" {
		c.ServerURL = file.ServerURL
	}
	if file.RedisURL != "" {
		c.RedisURL = file.RedisURL
	}
	if file.Strategy != "" {
		c.Strategy = file.Strategy
	}
	if file.BotName != "" {
		c.BotName = file.BotName
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
