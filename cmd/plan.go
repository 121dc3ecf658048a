package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilianp07/haulplan/app"
	"github.com/kilianp07/haulplan/core/report"
	"github.com/kilianp07/haulplan/pkg/export"
)

var planOpts struct {
	input        string
	format       string
	assign       bool
	outputFormat string
	output       string
	quiet        bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Normalize a schedule export and optionally assign trucks",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planOpts.input, "input", "i", "", "schedule export (csv, json or xlsx)")
	f.StringVar(&planOpts.format, "input-format", "", "input format, guessed from the file extension when empty")
	f.BoolVar(&planOpts.assign, "assign", false, "assign trucks from the driver directory")
	f.StringVarP(&planOpts.outputFormat, "format", "f", "json", "output format: json or csv")
	f.StringVarP(&planOpts.output, "output", "o", "", "output file, stdout when empty")
	f.BoolVarP(&planOpts.quiet, "quiet", "q", false, "do not print the summary")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	in, err := os.Open(planOpts.input)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	res, err := svc.Plan(cmd.Context(), app.PlanRequest{
		Source: filepath.Base(planOpts.input),
		Format: planOpts.format,
		Reader: in,
		Assign: planOpts.assign,
	})
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(planOpts.output)
	if err != nil {
		return err
	}
	if err := export.Write(out, planOpts.outputFormat, res.Schedule); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if !planOpts.quiet {
		printSummary(cmd.ErrOrStderr(), res)
	}
	return nil
}

func printSummary(w io.Writer, res *app.PlanResult) {
	_, _ = fmt.Fprintf(w, "run %s: %d rows, %d entries", res.RunID, res.Stats.Rows, res.Stats.Entries)
	if res.Stats.Defaulted > 0 {
		_, _ = fmt.Fprintf(w, ", %s", color.New(color.FgYellow).Sprintf("%d fields defaulted", res.Stats.Defaulted))
	}
	_, _ = fmt.Fprintln(w)
	for _, ts := range res.Summary.Types {
		_, _ = fmt.Fprintf(w, "  %-18s %3d entries  %s  %s%s\n",
			ts.TruckType, ts.Entries,
			color.New(color.FgGreen).Sprintf("%3d assigned", ts.Assigned),
			unassignedLabel(ts),
			quantityLabel(ts))
	}
}

func unassignedLabel(ts report.TypeSummary) string {
	s := fmt.Sprintf("%3d TBD", ts.Unassigned)
	if ts.Unassigned == 0 {
		return s
	}
	return color.New(color.FgRed).Sprint(s)
}

func quantityLabel(ts report.TypeSummary) string {
	if ts.Quantity.IsZero() {
		return ""
	}
	if ts.Unit == "" {
		return "  qty " + ts.Quantity.String()
	}
	return fmt.Sprintf("  qty %s %s", ts.Quantity.String(), ts.Unit)
}
