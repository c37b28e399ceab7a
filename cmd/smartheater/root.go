// cmd/smartheater/root.go
package main

import (
	"github.com/spf13/cobra"
)

var (
	// configuration file and overrides
	configPath string
	portName   string
	baudRate   int
	address    uint8
	verbose    bool
	simulate   bool
)

var rootCmd = &cobra.Command{
	Use:   "smartheater",
	Short: "Control an E.G.O. Smart Heater over Modbus RTU",
	Long: `smartheater reads and writes the registers of an E.G.O. Smart Heater
(photovoltaic immersion heater) over RS-485 Modbus RTU, or through an
RTU-over-TCP gateway.

Connection settings come from the YAML file given with --config; the
--port, --baud and --address flags override it. Without a config file the
factory defaults apply: unit address 247, 19200 baud, 8N1.

Examples:
  smartheater --port /dev/ttyUSB0 info
  smartheater --port /dev/ttyUSB0 set HomeTotalPower -- -2500
  smartheater --config heater.yaml serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = buildVersion

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device or tcp://host:port")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0, "Baud rate (default 19200)")
	rootCmd.PersistentFlags().Uint8VarP(&address, "address", "a", 0, "Modbus unit address (default 247)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging, including frame traces")
	rootCmd.PersistentFlags().BoolVar(&simulate, "simulate", false, "Talk to an in-memory heater instead of a device")
}
