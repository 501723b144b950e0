package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration constants
const (
	DefaultLogDir        = "./logs"
	DefaultLogRotateUTC  = true
	DefaultMaxLogDays    = 30               // Record logs kept by cleanup
	DefaultStatsInterval = 30 * time.Second // Statistics log period
	DefaultReadSize      = 4096             // Bytes per input read

	EnvPrefix = "GOREMOTEID"
)

// Configuration keys shared by flags, config file and environment
const (
	KeyConfig        = "config"
	KeyLogDir        = "log-dir"
	KeyLogRotateUTC  = "utc"
	KeyMaxLogDays    = "max-log-days"
	KeyStatsInterval = "stats-interval"
	KeyInput         = "input"
	KeyEcho          = "echo"
	KeyPlain         = "plain"
	KeyVerbose       = "verbose"
)

// Config holds application configuration
type Config struct {
	LogDir        string
	LogRotateUTC  bool
	MaxLogDays    int
	StatsInterval time.Duration
	Input         string // Frame source, stdin when empty or "-"
	Echo          bool   // Also print records to stdout
	Plain         bool   // Plain text output instead of tables
	Verbose       bool
	ShowVersion   bool
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		LogDir:        DefaultLogDir,
		LogRotateUTC:  DefaultLogRotateUTC,
		MaxLogDays:    DefaultMaxLogDays,
		StatsInterval: DefaultStatsInterval,
	}
}

// NewViper returns a viper instance with defaults and GOREMOTEID_*
// environment lookup configured
func NewViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyLogDir, defaults.LogDir)
	v.SetDefault(KeyLogRotateUTC, defaults.LogRotateUTC)
	v.SetDefault(KeyMaxLogDays, defaults.MaxLogDays)
	v.SetDefault(KeyStatsInterval, defaults.StatsInterval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the optional config file named by the "config" key and
// resolves every setting. Precedence is flag, environment, file, default.
func LoadConfig(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	config := Config{
		LogDir:        v.GetString(KeyLogDir),
		LogRotateUTC:  v.GetBool(KeyLogRotateUTC),
		MaxLogDays:    v.GetInt(KeyMaxLogDays),
		StatsInterval: v.GetDuration(KeyStatsInterval),
		Input:         v.GetString(KeyInput),
		Echo:          v.GetBool(KeyEcho),
		Plain:         v.GetBool(KeyPlain),
		Verbose:       v.GetBool(KeyVerbose),
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks settings the monitor depends on
func (c Config) Validate() error {
	if c.LogDir == "" {
		return errors.New("log directory must be set")
	}
	if c.MaxLogDays < 0 {
		return fmt.Errorf("max log days must not be negative: %d", c.MaxLogDays)
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("statistics interval must be positive: %s", c.StatsInterval)
	}
	return nil
}
