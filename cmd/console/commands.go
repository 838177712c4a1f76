package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/devicepulse/console/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func loginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate against the device backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			displayAppname(a.cfg.GetAppName())

			userName := args[0]
			if password == "" {
				fmt.Print("Password: ")
				entered, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return errors.Wrap(err, "[login] read password")
				}
				password = strings.TrimRight(entered, "\r\n")
			}

			if err := a.controller.Login(cmd.Context(), userName, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", a.state.UserInfo().UserName)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.controller.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.restore(cmd.Context()); err != nil {
				return err
			}
			if !a.state.IsLoggedIn() {
				fmt.Println("Not logged in")
				return nil
			}
			info := a.state.UserInfo()
			fmt.Printf("User:  %s\n", info.UserName)
			fmt.Printf("Roles: %s\n", strings.Join(info.Roles, ", "))
			fmt.Printf("Super: %t\n", a.state.IsStaticSuper())
			return nil
		},
	}
}

func devicesCommand() *cobra.Command {
	devices := &cobra.Command{
		Use:   "devices",
		Short: "Manage devices",
	}
	devices.AddCommand(deviceUpdateCommand(), deviceDeleteCommand())
	return devices
}

func deviceUpdateCommand() *cobra.Command {
	var name, deviceType, serialNumber, devicePassword string

	cmd := &cobra.Command{
		Use:   "update <device-id>",
		Short: "Update a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.restore(cmd.Context()); err != nil {
				return err
			}

			updated, err := a.client.UpdateDevice(cmd.Context(), service.Device{
				ID:           args[0],
				Name:         name,
				Type:         deviceType,
				SerialNumber: serialNumber,
				Password:     devicePassword,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated device %s (%s)\n", updated.ID, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "device name")
	cmd.Flags().StringVar(&deviceType, "type", "", "device type")
	cmd.Flags().StringVar(&serialNumber, "serial", "", "serial number")
	cmd.Flags().StringVar(&devicePassword, "device-password", "", "device password")
	return cmd
}

func deviceDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <device-id>",
		Short: "Delete a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.restore(cmd.Context()); err != nil {
				return err
			}
			if err := a.client.DeleteDevice(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted device %s\n", args[0])
			return nil
		},
	}
}

func thresholdsCommand() *cobra.Command {
	thresholds := &cobra.Command{
		Use:   "thresholds",
		Short: "Manage device thresholds",
	}
	thresholds.AddCommand(thresholdsGetCommand(), thresholdsSetCommand())
	return thresholds
}

func thresholdsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <device-id>",
		Short: "Show a device's thresholds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.restore(cmd.Context()); err != nil {
				return err
			}
			t, err := a.client.FetchThresholds(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Temperature: %.1f .. %.1f\n", t.Temperature.Min, t.Temperature.Max)
			fmt.Printf("Humidity:    %.1f .. %.1f\n", t.Humidity.Min, t.Humidity.Max)
			return nil
		},
	}
}

func thresholdsSetCommand() *cobra.Command {
	var tempMin, tempMax, humMin, humMax float64

	cmd := &cobra.Command{
		Use:   "set <device-id>",
		Short: "Replace a device's thresholds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.restore(cmd.Context()); err != nil {
				return err
			}
			updated, err := a.client.UpdateThresholds(cmd.Context(), args[0], service.Thresholds{
				Temperature: service.Range{Min: tempMin, Max: tempMax},
				Humidity:    service.Range{Min: humMin, Max: humMax},
			})
			if err != nil {
				return err
			}
			fmt.Printf("Temperature: %.1f .. %.1f\n", updated.Temperature.Min, updated.Temperature.Max)
			fmt.Printf("Humidity:    %.1f .. %.1f\n", updated.Humidity.Min, updated.Humidity.Max)
			return nil
		},
	}
	cmd.Flags().Float64Var(&tempMin, "temp-min", 0, "temperature lower bound")
	cmd.Flags().Float64Var(&tempMax, "temp-max", 0, "temperature upper bound")
	cmd.Flags().Float64Var(&humMin, "hum-min", 0, "humidity lower bound")
	cmd.Flags().Float64Var(&humMax, "hum-max", 0, "humidity upper bound")
	return cmd
}
