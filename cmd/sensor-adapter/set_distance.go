// cmd/sensor-adapter/set_distance.go
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/ioctl"
	"github.com/tamzrod/sensor-adapter/internal/payload"
	"github.com/tamzrod/sensor-adapter/internal/poller"
)

var setDistanceCmd = &cobra.Command{
	Use:   "set-distance <mm>",
	Short: "Override the driver's simulated distance",
	Long: `Send SET_MOCK_DISTANCE to the device, then read back one sample.

The driver keeps moving from the new distance on its next timer tick.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetDistance,
}

func init() {
	rootCmd.AddCommand(setDistanceCmd)
}

func runSetDistance(cmd *cobra.Command, args []string) error {
	mm, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return exitWith(exitError, fmt.Errorf("invalid distance %q: %w", args[0], err))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return exitWith(exitError, err)
	}
	d := cfg.Adapter.Device

	ch, err := poller.OpenChannel(d)
	if err != nil {
		if errors.Is(err, device.ErrDeviceUnavailable) {
			return exitWith(exitDeviceUnavailable, fmt.Errorf("%s (%w)", device.UnavailableHint(d.Path), err))
		}
		return err
	}
	defer ch.Close()

	var arg [ioctl.SetMockDistanceSize]byte
	binary.LittleEndian.PutUint32(arg[:], uint32(int32(mm)))
	if err := ch.Exchange(ioctl.SetMockDistance, arg[:]); err != nil {
		return fmt.Errorf("set distance (device=%s): %w", d.Path, err)
	}

	var buf [payload.Size]byte
	if err := ch.Exchange(ioctl.GetData, buf[:]); err != nil {
		return fmt.Errorf("read back (device=%s): %w", d.Path, err)
	}
	r, err := payload.Decode(buf[:])
	if err != nil {
		return fmt.Errorf("read back (device=%s): %w", d.Path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "distance set (device=%s requested_mm=%d distance_mm=%d status=%s device_ts=%d)\n",
		d.Path, mm, r.DistanceMM, r.Status(), r.Timestamp)
	return nil
}
