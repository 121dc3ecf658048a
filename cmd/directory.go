package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/model"
	"github.com/kilianp07/haulplan/infra/directory"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Driver directory commands",
}

var directoryTruckType string

var directoryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List trucks and drivers in the directory",
	RunE:  runDirectoryLs,
}

func init() {
	directoryLsCmd.Flags().StringVarP(&directoryTruckType, "truck-type", "t", "", "only list this truck type")
	directoryCmd.AddCommand(directoryLsCmd)
	rootCmd.AddCommand(directoryCmd)
}

func runDirectoryLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := directory.New(cfg.Directory)
	if err != nil {
		return err
	}
	if c, ok := st.(interface{ Close() error }); ok {
		defer func() { _ = c.Close() }()
	}
	entries, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TRUCK\tDRIVER\tTYPE\tPRIORITY\tSTATUS")
	for _, e := range entries {
		if directoryTruckType != "" && !fleet.SameTruckType(e.TruckType, directoryTruckType) {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Driver, e.TruckType, priorityLabel(e), statusLabel(e.Status))
	}
	return tw.Flush()
}

func priorityLabel(e model.DriverEntry) string {
	if e.Priority == nil {
		return "-"
	}
	return fmt.Sprint(int(*e.Priority))
}

func statusLabel(s model.DriverStatus) string {
	switch s {
	case model.StatusActive:
		return color.New(color.FgGreen).Sprint(s)
	case model.StatusUnavailable:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return color.New(color.FgRed).Sprint(s)
	}
}
