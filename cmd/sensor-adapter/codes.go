// cmd/sensor-adapter/codes.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print the driver command codes",
	Long: `Print the ioctl command codes derived from the driver's declarations.
Useful for checking the adapter against a rebuilt kernel module.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, c := range []struct {
			name string
			code ioctl.Code
		}{
			{"GET_DATA", ioctl.GetData},
			{"SET_MOCK_DISTANCE", ioctl.SetMockDistance},
		} {
			fmt.Fprintf(out, "%-18s %s  (type=%q nr=%d size=%d)\n",
				c.name, c.code, c.code.Type(), c.code.Nr(), c.code.Size())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
