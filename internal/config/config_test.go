package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		viper.Reset()
		SetConfigPath("")

		if err := Init(); err != nil {
			t.Errorf("Init() failed: %v", err)
		}

		config := Get()
		if config == nil {
			t.Fatal("Get() returned nil after Init()")
		}

		if config.Seat.Name != "seat0" {
			t.Errorf("Expected default seat name seat0, got %q", config.Seat.Name)
		}
		if config.Seat.RepeatRate != 25 {
			t.Errorf("Expected default repeat rate 25, got %d", config.Seat.RepeatRate)
		}
		if config.Seat.RepeatDelay != 600 {
			t.Errorf("Expected default repeat delay 600, got %d", config.Seat.RepeatDelay)
		}
		if !config.Compositor.XDGShell {
			t.Error("Expected xdg_shell enabled by default")
		}
		if config.Compositor.Headless {
			t.Error("Expected headless disabled by default")
		}
	})

	t.Run("reads values from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := `[compositor]
socket = "wayland-7"
headless = true
layer_shell = false

[seat]
name = "seat1"
repeat_rate = 40

[logging]
log_level = "debug"
`
		path := filepath.Join(tmpDir, "waybind.toml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		viper.Reset()
		SetConfigPath(path)
		defer SetConfigPath("")

		if err := Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}

		config := Get()
		if config.Compositor.Socket != "wayland-7" {
			t.Errorf("Expected socket wayland-7, got %q", config.Compositor.Socket)
		}
		if !config.Compositor.Headless {
			t.Error("Expected headless enabled")
		}
		if config.Compositor.LayerShell {
			t.Error("Expected layer_shell disabled")
		}
		if config.Seat.Name != "seat1" {
			t.Errorf("Expected seat name seat1, got %q", config.Seat.Name)
		}
		if config.Seat.RepeatRate != 40 {
			t.Errorf("Expected repeat rate 40, got %d", config.Seat.RepeatRate)
		}
		// unset values keep their defaults
		if config.Seat.RepeatDelay != 600 {
			t.Errorf("Expected default repeat delay 600, got %d", config.Seat.RepeatDelay)
		}
		if config.Logging.LogLevel != "debug" {
			t.Errorf("Expected log level debug, got %q", config.Logging.LogLevel)
		}
	})

	t.Run("rejects invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "waybind.toml")
		if err := os.WriteFile(path, []byte("[compositor\nsocket = "), 0644); err != nil {
			t.Fatal(err)
		}

		viper.Reset()
		SetConfigPath(path)
		defer SetConfigPath("")

		if err := Init(); err == nil {
			t.Error("Init() should fail on invalid TOML")
		}
	})
}

func TestSetAndGet(t *testing.T) {
	defer Set(nil)

	custom := &Config{
		Seat: SeatConfig{Name: "seat-test"},
	}
	Set(custom)

	if got := Get(); got != custom {
		t.Error("Get() did not return the config passed to Set()")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		SetConfigPath("/tmp/custom.toml")
		defer SetConfigPath("")

		if got := GetConfigPath(); got != "/tmp/custom.toml" {
			t.Errorf("Expected override path, got %q", got)
		}
	})
}
