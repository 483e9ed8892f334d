// cmd/sensor-adapter/run.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/ioctl"
	"github.com/tamzrod/sensor-adapter/internal/metrics"
	"github.com/tamzrod/sensor-adapter/internal/monitoring"
	"github.com/tamzrod/sensor-adapter/internal/poller"
	"github.com/tamzrod/sensor-adapter/internal/writer"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the device and publish snapshots until interrupted",
	Long: `Open the device, then run one poll cycle per interval: read the safety
path, sample environment and access, evaluate alerts and publish the snapshot.

SIGINT or SIGTERM lets the in-flight cycle finish, then releases the device.`,
	Args: cobra.NoArgs,
	RunE: runAdapter,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAdapter(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return exitWith(exitError, err)
	}
	a := cfg.Adapter

	// --------------------
	// Device
	// --------------------

	ch, err := poller.OpenChannel(a.Device)
	if err != nil {
		if errors.Is(err, device.ErrDeviceUnavailable) {
			return exitWith(exitDeviceUnavailable, fmt.Errorf("%s (%w)", device.UnavailableHint(a.Device.Path), err))
		}
		return err
	}

	p, err := poller.Build(a, ch)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("poller build failed (device=%s): %w", a.Device.Path, err)
	}

	// --------------------
	// Presentation
	// --------------------

	plan := writer.BuildPlan(a)
	clients, closeClients, err := writer.BuildEndpointClients(a)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("writer clients failed (device=%s): %w", a.Device.Path, err)
	}
	defer func() {
		if err := closeClients(); err != nil {
			monitoring.Logf("writer close error: %v", err)
		}
	}()

	docs, closeDocs, err := writer.BuildDocumentWriter(a)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("document writer failed (device=%s): %w", a.Device.Path, err)
	}
	defer func() {
		if err := closeDocs(); err != nil {
			monitoring.Logf("document writer close error: %v", err)
		}
	}()

	// --------------------
	// Metrics (optional)
	// --------------------

	var obs writer.Writer
	if a.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		srv, err := metrics.Listen(a.Metrics.Listen, reg)
		if err != nil {
			_ = ch.Close()
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		obs = m
	}

	sched := poller.NewScheduler(p, writer.New(plan, clients, docs, obs), ch)

	// --------------------
	// Run until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.Logf("adapter starting (device=%s get_data=%s interval_ms=%d targets=%d)",
		a.Device.Path, ioctl.GetData, a.Poll.IntervalMs, len(plan.Targets))

	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("device release failed (device=%s): %w", a.Device.Path, err)
	}
	return nil
}
