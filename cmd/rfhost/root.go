package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rfhost/config"
)

var (
	cfgFile    string
	flagDevice string
	flagBaud   int

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rfhost",
	Short: "Host-side driver for a serial-attached RF controller",
	Long: `rfhost dispatches read/write commands to RF nodes through a
controller attached over a serial link, and reports whether the
controller acknowledged each one. Asynchronous notifications from the
controller are acknowledged on the wire but not displayed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to rfhost.yaml (default: none, use flags/env)")
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", "", "serial device path (default /dev/ttyACM0)")
	rootCmd.PersistentFlags().IntVar(&flagBaud, "baud", 0, "baud rate override (default 115200)")

	rootCmd.AddCommand(sendValueCmd)
	rootCmd.AddCommand(getValueCmd)
	rootCmd.AddCommand(replCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if flagDevice != "" {
		loaded.Device = flagDevice
	}
	if flagBaud != 0 {
		loaded.Baud = flagBaud
	}

	level, err := log.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	cfg = loaded
	return nil
}
