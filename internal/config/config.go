// Package config loads the pagecraft application configuration from
// config.yaml (in "." or "./config") and PAGECRAFT_* environment variables.
// Provider settings live in a separate file read by package settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAGECRAFT_ADDRESS.
const EnvPrefix = "PAGECRAFT"

// Config is the application configuration.
type Config struct {
	Address      string      `mapstructure:"address"`
	SettingsFile string      `mapstructure:"settings_file"`
	LogLevel     string      `mapstructure:"log_level"`
	TelemetryURL string      `mapstructure:"telemetry_url"`
	Generation   Generation  `mapstructure:"generation"`
	HuggingFace  HuggingFace `mapstructure:"huggingface"`
}

// Generation bounds each generation call.
type Generation struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// HuggingFace configures the text-generation pipeline loader.
type HuggingFace struct {
	Endpoint       string `mapstructure:"endpoint"`
	Device         string `mapstructure:"device"`
	FallbackDevice string `mapstructure:"fallback_device"`
}

// Options returns the adapter options for the configured devices.
func (h HuggingFace) Options() huggingface.Options {
	return huggingface.Options{
		Device:         huggingface.Device(h.Device),
		FallbackDevice: huggingface.Device(h.FallbackDevice),
	}
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func defaults(v *viper.Viper) {
	v.SetDefault("address", ":8080")
	v.SetDefault("settings_file", "pagecraft.yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("telemetry_url", "")
	v.SetDefault("generation.timeout", 2*time.Minute)
	v.SetDefault("huggingface.endpoint", huggingface.DefaultEndpoint)
	v.SetDefault("huggingface.device", string(huggingface.DeviceWebGPU))
	v.SetDefault("huggingface.fallback_device", "")
}

// Load reads config.yaml from the given search paths (default "." and
// "./config"). A missing file is not an error; env-only configuration works.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// allow environment variables like PAGECRAFT_GENERATION_TIMEOUT
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return &c, nil
}
