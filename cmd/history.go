package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	corehistory "github.com/kilianp07/haulplan/core/history"
	infrahistory "github.com/kilianp07/haulplan/infra/history"
)

var historyOpts struct {
	truck     string
	truckType string
	since     time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded assignment runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyOpts.truck, "truck", "", "only runs that assigned this truck")
	f.StringVar(&historyOpts.truckType, "truck-type", "", "only runs that touched this truck type")
	f.DurationVar(&historyOpts.since, "since", 0, "only runs newer than this, e.g. 168h")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := infrahistory.New(cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	q := corehistory.Query{Truck: historyOpts.truck, TruckType: historyOpts.truckType}
	if historyOpts.since > 0 {
		q.Start = time.Now().Add(-historyOpts.since)
	}
	recs, err := st.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RUN\tTIME\tSOURCE\tENTRIES\tASSIGNED\tTBD")
	for _, r := range recs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.ID, r.Timestamp.Local().Format(time.DateTime), r.Source, r.Entries, r.Assigned, r.Unassigned)
	}
	return tw.Flush()
}
