// cmd/sensor-adapter/root.go
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sensor-adapter/internal/config"
)

var (
	// Config source
	configPath string

	// Overrides (applied on top of the config file)
	devicePath string
	intervalMs int
	simulate   bool
)

var rootCmd = &cobra.Command{
	Use:   "sensor-adapter",
	Short: "User-space adapter for the mock_sensor proximity driver",
	Long: `sensor-adapter polls the mock_sensor character device for distance and
safety status, merges it with the environment and access-control readings,
and publishes one snapshot per cycle.

Emergency stops raised by the driver always preempt access-card processing.

Device selection:
  Kernel driver: --device /dev/mock_sensor (requires root)
  Simulated:     --simulate`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVarP(&devicePath, "device", "d", "", "Device node path")
	rootCmd.PersistentFlags().IntVarP(&intervalMs, "interval", "i", 0, "Poll interval in milliseconds")
	rootCmd.PersistentFlags().BoolVar(&simulate, "simulate", false, "Use the in-process simulated driver")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// loadConfig reads the config file (if any), applies flag overrides,
// then validates and normalizes the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Adapter.Device.Path = devicePath
	}
	if flags.Changed("interval") {
		cfg.Adapter.Poll.IntervalMs = intervalMs
	}
	if flags.Changed("simulate") {
		cfg.Adapter.Device.Simulate = simulate
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}
