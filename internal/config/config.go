// Package config resolves runtime settings from defaults, an optional YAML
// file, an optional .env file and KANBAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"kanban/internal/util"
)

// EnvPrefix prefixes every environment override, e.g. KANBAN_DB_PATH.
const EnvPrefix = "KANBAN"

// Config holds everything the binaries need to start.
type Config struct {
	Addr      string        `mapstructure:"addr"`
	DBPath    string        `mapstructure:"db_path"`
	StaticDir string        `mapstructure:"static_dir"`
	Scoped    bool          `mapstructure:"scoped"`
	Log       LogConfig     `mapstructure:"log"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// LogConfig controls the slog handler and optional rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// BreakerConfig tunes the circuit breaker in front of the database.
type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Options says where to look for files. Empty fields use the defaults:
// $KANBAN_CONFIG or ./kanban.yaml, and ./.env.
type Options struct {
	ConfigFile string
	EnvFile    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("db_path", "data/kanban.db")
	v.SetDefault("static_dir", "web/dist")
	v.SetDefault("scoped", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("breaker.max_failures", 3)
	v.SetDefault("breaker.timeout", "5s")
}

// Load resolves the configuration. The default ./.env and ./kanban.yaml are
// optional; an explicitly named env or config file that cannot be read is
// an error.
func Load(opts Options) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" && util.FileExists(".env") {
		envFile = ".env"
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = util.EnvOrDefault(EnvPrefix+"_CONFIG", "")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("kanban")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading kanban.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the binaries cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Breaker.Timeout < 0 {
		return fmt.Errorf("breaker.timeout must not be negative")
	}
	return nil
}
