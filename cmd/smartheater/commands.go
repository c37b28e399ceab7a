// cmd/smartheater/commands.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tamzrod/smartheater/internal/codec"
	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/session"
)

var (
	minOnTime  uint16
	minOffTime uint16
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the identification block of the heater",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session.Session) error {
			id, err := s.Identity()
			if err != nil {
				return err
			}
			relays, err := s.RelayCount()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Vendor:\t%s (0x%04X)\n", id.VendorName, id.ManufacturerID)
			fmt.Fprintf(w, "Product:\t%s (id 0x%04X, variant 0x%04X)\n", id.ProductName, id.ProductID, id.ProductVersion)
			fmt.Fprintf(w, "Firmware:\t%d.%02d\n", id.FirmwareVersion/100, id.FirmwareVersion%100)
			fmt.Fprintf(w, "Serial:\t%s\n", id.SerialNumber)
			if date, err := codec.BCDDate(id.ProductionDate); err == nil {
				fmt.Fprintf(w, "Produced:\t%s\n", date.Format("2006-01-02"))
			} else {
				fmt.Fprintf(w, "Produced:\t0x%08X\n", id.ProductionDate)
			}
			fmt.Fprintf(w, "Relays:\t%d\n", relays)
			return w.Flush()
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <attribute>",
	Short: "Read one attribute",
	Long: `Read one fixed-address attribute by name (case-insensitive).
Run "smartheater attributes" for the list of names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := registers.Parse(args[0])
		if err != nil {
			return err
		}

		return withSession(func(s *session.Session) error {
			v, err := s.Read(a)
			if err != nil {
				return err
			}

			switch a {
			case registers.ActualTemperatureExternalSensor1, registers.ActualTemperatureExternalSensor2:
				if st := registers.ClassifySensor(v.(int16)); st != registers.SensorOK {
					fmt.Printf("%s = %s\n", a, st)
					return nil
				}
			case registers.RelaisStatus:
				rs := registers.RelayStatus(v.(uint16))
				fmt.Printf("%s = 0b%03b (500W:%v 1000W:%v 2000W:%v)\n", a, uint16(rs), rs.On(0), rs.On(1), rs.On(2))
				return nil
			}

			fmt.Printf("%s = %v\n", a, v)
			return nil
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <attribute> <value>",
	Short: "Write one attribute",
	Long: `Write an integer to a writable attribute. Use "--" before negative values:

  smartheater set HomeTotalPower -- -2500`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := registers.Parse(args[0])
		if err != nil {
			return err
		}
		v, err := strconv.ParseInt(args[1], 0, 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", args[1], err)
		}

		return withSession(func(s *session.Session) error {
			c, err := s.Write(a, v)
			if err != nil {
				return err
			}
			fmt.Printf("%s := %d (%s)\n", a, v, c)
			return nil
		})
	},
}

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List the register catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tADDRESS\tWORDS\tKIND\tACCESS")
		for _, d := range registers.All() {
			fmt.Fprintf(w, "%s\t0x%04X\t%d\t%s\t%s\n", d.Name, d.Address, d.Words, d.Kind, d.Access)
		}
		return w.Flush()
	},
}

var relayCmd = &cobra.Command{
	Use:   "relay <r>",
	Short: "Show a relay configuration, optionally setting its minimum on/off times",
	Long: `Show the configuration block of relay r (0: 500W, 1: 1000W, 2: 2000W).
With --min-on or --min-off the corresponding time (seconds) is written first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("relay %q: %w", args[0], err)
		}

		return withSession(func(s *session.Session) error {
			if cmd.Flags().Changed("min-on") {
				if c := s.SetRelayMinOnTime(r, minOnTime); !c.OK() {
					return fmt.Errorf("set min-on time of relay %d: %s", r, c)
				}
			}
			if cmd.Flags().Changed("min-off") {
				if c := s.SetRelayMinOffTime(r, minOffTime); !c.OK() {
					return fmt.Errorf("set min-off time of relay %d: %s", r, c)
				}
			}

			rc, err := s.RelayConfiguration(r)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Actual power:\t%d W\n", rc.ActualPower)
			fmt.Fprintf(w, "Operating time:\t%d s\n", rc.OperatingSeconds)
			fmt.Fprintf(w, "Switching cycles:\t%d\n", rc.SwitchingCycles)
			fmt.Fprintf(w, "Min on time:\t%d s\n", rc.MinOnTime)
			fmt.Fprintf(w, "Min off time:\t%d s\n", rc.MinOffTime)
			return w.Flush()
		})
	},
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show the device error log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session.Session) error {
			count, err := s.ErrorCounter()
			if err != nil {
				return err
			}
			entries, err := s.ErrorLog()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "errors recorded: %d\n", count)
			fmt.Fprintln(w, "SLOT\tHOUR\tSECOND\tCODE")
			for i, e := range entries {
				fmt.Fprintf(w, "%d\t%d\t%d\t0x%04X\n", i, e.OperatingHour, e.OperatingSecond, e.Code)
			}
			if ferr := w.Flush(); ferr != nil {
				return ferr
			}
			return err
		})
	},
}

var operatingTimeCmd = &cobra.Command{
	Use:   "operating-time",
	Short: "Show total and per-relay operating time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session.Session) error {
			total, err := s.TotalOperatingSeconds()
			if err != nil {
				return err
			}
			ot, err := s.RelayOperatingTime()

			fmt.Printf("total: %d s\n", total)
			for r, sec := range ot.Seconds {
				fmt.Printf("relay %d: %d s\n", r, sec)
			}
			if err != nil {
				return fmt.Errorf("%w (last status %s)", err, s.Status(false))
			}
			return nil
		})
	},
}

func init() {
	relayCmd.Flags().Uint16Var(&minOnTime, "min-on", 0, "Minimum on time in seconds")
	relayCmd.Flags().Uint16Var(&minOffTime, "min-off", 0, "Minimum off time in seconds")

	rootCmd.AddCommand(infoCmd, getCmd, setCmd, attributesCmd, relayCmd, errorsCmd, operatingTimeCmd)
}
