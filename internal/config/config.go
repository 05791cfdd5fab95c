// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Compositor configuration
	Compositor CompositorConfig `mapstructure:"compositor"`

	// Seat and input configuration
	Seat SeatConfig `mapstructure:"seat"`

	// Native library configuration
	Library LibraryConfig `mapstructure:"library"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// CompositorConfig contains settings for the demo compositor loop
type CompositorConfig struct {
	Socket     string `mapstructure:"socket"`      // Explicit socket name, empty for auto
	Headless   bool   `mapstructure:"headless"`    // Run against the in-memory fake library
	XDGShell   bool   `mapstructure:"xdg_shell"`   // Register the xdg-shell global
	LayerShell bool   `mapstructure:"layer_shell"` // Register the layer-shell global
}

// SeatConfig contains seat and keyboard settings
type SeatConfig struct {
	Name        string `mapstructure:"name"`
	RepeatRate  int32  `mapstructure:"repeat_rate"`  // Key repeats per second
	RepeatDelay int32  `mapstructure:"repeat_delay"` // Milliseconds before repeat starts
}

// LibraryConfig overrides where the native libraries are loaded from
type LibraryConfig struct {
	CompositorPath string `mapstructure:"compositor_path"` // Path to the compositor library
	ShimPath       string `mapstructure:"shim_path"`       // Path to the accessor shim
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override WAYBIND_LOG env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Compositor: CompositorConfig{
			Socket:     "",
			Headless:   false,
			XDGShell:   true,
			LayerShell: true,
		},
		Seat: SeatConfig{
			Name:        "seat0",
			RepeatRate:  25,
			RepeatDelay: 600,
		},
		Library: LibraryConfig{},
		Logging: LoggingConfig{},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("waybind")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "waybind"))
		}
		viper.AddConfigPath("/etc/waybind")
		viper.AddConfigPath(".")
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("compositor.socket", DefaultConfig.Compositor.Socket)
	viper.SetDefault("compositor.headless", DefaultConfig.Compositor.Headless)
	viper.SetDefault("compositor.xdg_shell", DefaultConfig.Compositor.XDGShell)
	viper.SetDefault("compositor.layer_shell", DefaultConfig.Compositor.LayerShell)

	viper.SetDefault("seat.name", DefaultConfig.Seat.Name)
	viper.SetDefault("seat.repeat_rate", DefaultConfig.Seat.RepeatRate)
	viper.SetDefault("seat.repeat_delay", DefaultConfig.Seat.RepeatDelay)

	viper.SetDefault("library.compositor_path", DefaultConfig.Library.CompositorPath)
	viper.SetDefault("library.shim_path", DefaultConfig.Library.ShimPath)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/waybind/waybind.toml"
	}

	return filepath.Join(home, ".config", "waybind", "waybind.toml")
}
