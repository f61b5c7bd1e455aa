package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Data  DataConfig    `mapstructure:"data"`
	Log   LoggingConfig `mapstructure:"log"`
	Timer TimerConfig   `mapstructure:"timer"`
	Audio AudioConfig   `mapstructure:"audio"`
}

// DataConfig defines where local state is kept
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TimerConfig defines the length of each mode
type TimerConfig struct {
	Focus      time.Duration `mapstructure:"focus"`
	ShortBreak time.Duration `mapstructure:"short_break"`
	LongBreak  time.Duration `mapstructure:"long_break"`
}

// AudioConfig defines how cues are played
type AudioConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Muted        bool     `mapstructure:"muted"`
	Player       []string `mapstructure:"player"`
	VolumeScale  float64  `mapstructure:"volume_scale"`
	StartSound   string   `mapstructure:"start_sound"`
	EndSound     string   `mapstructure:"end_sound"`
	AmbientSound string   `mapstructure:"ambient_sound"`
}

// Load loads configuration from file and environment variables. An empty
// configPath looks for config.yaml in the user config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	baseDir, err := baseDir()
	if err != nil {
		return nil, err
	}

	// Set defaults
	setDefaults(v, baseDir)

	// Configure viper
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(baseDir)
	}
	v.SetEnvPrefix("HASHIRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func baseDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "hashira"), nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault("data.path", filepath.Join(baseDir, "hashira.db"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join(baseDir, "hashira.log"))

	v.SetDefault("timer.focus", "25m")
	v.SetDefault("timer.short_break", "5m")
	v.SetDefault("timer.long_break", "15m")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.muted", false)
	v.SetDefault("audio.player", []string{})
	v.SetDefault("audio.volume_scale", 1.0)
	v.SetDefault("audio.start_sound", "")
	v.SetDefault("audio.end_sound", "")
	v.SetDefault("audio.ambient_sound", "")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Data.Path == "" {
		return fmt.Errorf("data path is required")
	}
	if cfg.Timer.Focus < time.Second {
		return fmt.Errorf("invalid focus duration: %s", cfg.Timer.Focus)
	}
	if cfg.Timer.ShortBreak < time.Second {
		return fmt.Errorf("invalid short break duration: %s", cfg.Timer.ShortBreak)
	}
	if cfg.Timer.LongBreak < time.Second {
		return fmt.Errorf("invalid long break duration: %s", cfg.Timer.LongBreak)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %q", cfg.Log.Format)
	}
	if cfg.Audio.VolumeScale <= 0 {
		cfg.Audio.VolumeScale = 1
	}
	return nil
}
