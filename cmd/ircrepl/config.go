package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gissleh/ircstate"
)

// config is the file configuration. Flags override it, and environment
// variables override both.
type config struct {
	Session     ircstate.Config `yaml:"session" toml:"session" json:"session"`
	Database    string          `yaml:"database" toml:"database" json:"database"`
	MetricsAddr string          `yaml:"metrics_addr" toml:"metrics_addr" json:"metrics_addr"`
	LogLevel    string          `yaml:"log_level" toml:"log_level" json:"log_level"`
	Format      string          `yaml:"format" toml:"format" json:"format"`
}

func defaultConfig() config {
	return config{
		Session:  ircstate.Config{Name: "irc"},
		LogLevel: "info",
		Format:   "json",
	}
}

// loadConfig reads the file into cfg, picking the format by extension.
func loadConfig(source string, cfg *config) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	switch {
	case strings.HasSuffix(source, ".toml"):
		err = toml.Unmarshal(data, cfg)
	case strings.HasSuffix(source, ".json"):
		err = json.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config: %v", err)
	}

	return nil
}

// applyEnvOverrides reads the IRCREPL_* variables, which may come from a
// .env file.
func applyEnvOverrides(cfg *config) {
	fields := map[string]*string{
		"IRCREPL_NAME":         &cfg.Session.Name,
		"IRCREPL_WHOX_TOKEN":   &cfg.Session.WHOXToken,
		"IRCREPL_DATABASE":     &cfg.Database,
		"IRCREPL_METRICS_ADDR": &cfg.MetricsAddr,
		"IRCREPL_LOG_LEVEL":    &cfg.LogLevel,
		"IRCREPL_FORMAT":       &cfg.Format,
	}
	for key, field := range fields {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
	}

	if value, ok := os.LookupEnv("IRCREPL_STRICT_CASEMAPPING"); ok {
		if strict, err := strconv.ParseBool(value); err == nil {
			cfg.Session.StrictCasemapping = strict
		}
	}
	if value, ok := os.LookupEnv("IRCREPL_BUFFER"); ok {
		if buffer, err := strconv.Atoi(value); err == nil {
			cfg.Session.Buffer = buffer
		}
	}
}
