package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runlevelzero/waybind/internal/config"
	"github.com/runlevelzero/waybind/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "waybind",
	Short: "Waybind - Wayland compositor bindings",
	Long: `Waybind exposes a native Wayland compositor library to Go programs.
It bridges native signals to Go callbacks, tracks object lifetimes so a
destroyed native object can never be touched through a stale wrapper, and
ships a minimal compositor loop to exercise the bindings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			config.SetConfigPath(configPath)
		}
		if err := config.Init(); err != nil {
			return err
		}
		if lvl := config.Get().Logging.LogLevel; lvl != "" {
			logger.SetLevel(lvl)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}
