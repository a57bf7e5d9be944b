// Package config loads runtime configuration for the CLI from .env files,
// environment variables, and an optional config file, mirroring the
// teacher's viper/godotenv setup.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Config holds all tunables the driver, watcher and status API need.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// Driver
	Workers int `mapstructure:"workers"`

	// Matcher tuning: size 10000, step 7500 are the production defaults,
	// kept configurable for testing with small fixtures.
	WindowSize int `mapstructure:"window_size"`
	WindowStep int `mapstructure:"window_step"`

	// Status API (internal/api, internal/auth)
	APIAddr       string `mapstructure:"api_addr"`
	APISecretHash string `mapstructure:"api_secret_hash"`
	APISigningKey string `mapstructure:"api_signing_key"`
	StorePath     string `mapstructure:"store_path"`

	// Watch mode
	WatchDir string `mapstructure:"watch_dir"`
}

// Default returns the baseline configuration used when no file/env override
// is present.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Workers:    1,
		WindowSize: 10000,
		WindowStep: 7500,
		APIAddr:    ":8080",
		StorePath:  "fi-parliament-tools.db",
	}
}

// Load reads configuration from an optional .env file, environment variables
// prefixed PARLIAMENT_, and an optional config file at configPath (if
// non-empty). Environment variables and the config file both override
// Default().
func Load(configPath string) (Config, error) {
	_ = godotenv.Load() // optional; missing .env is not an error

	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("PARLIAMENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("window_size", cfg.WindowSize)
	v.SetDefault("window_step", cfg.WindowStep)
	v.SetDefault("api_addr", cfg.APIAddr)
	v.SetDefault("api_secret_hash", cfg.APISecretHash)
	v.SetDefault("api_signing_key", cfg.APISigningKey)
	v.SetDefault("store_path", cfg.StorePath)
	v.SetDefault("watch_dir", cfg.WatchDir)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// WatchReload re-reads configPath whenever it changes on disk and invokes
// onChange with the freshly parsed Config. It is best-effort: errors while
// reloading are logged and onChange is not called. No command in
// cmd/fi-parliament-tools calls it.
func WatchReload(configPath string, onChange func(Config)) error {
	if configPath == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config %s: %w", configPath, err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(configPath)
				if err != nil {
					logger.Warn("config reload failed", "path", configPath, "error", err)
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}
