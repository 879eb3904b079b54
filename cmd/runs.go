package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/econ-intel/internal/model"
	"github.com/sells-group/econ-intel/internal/report"
	"github.com/sells-group/econ-intel/internal/store"
)

var (
	runsStatus string
	runsLimit  int
	showJSON   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list runs")
		}

		for _, r := range runs {
			anomalies := 0
			if r.Result != nil {
				anomalies = len(r.Result.Anomalies)
			}
			fmt.Printf("%s  %-10s  %s  anomalies=%d\n",
				r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04:05"), anomalies)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the report for one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "get run")
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}
		_, err = os.Stdout.WriteString(report.FormatMarkdown(run))
		return err
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by run status")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the raw run record")
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(showCmd)
}
