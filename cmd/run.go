package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/econ-intel/internal/report"
	"github.com/sells-group/econ-intel/internal/source"
	"github.com/sells-group/econ-intel/internal/store"
	"github.com/sells-group/econ-intel/internal/workflow"
	"github.com/sells-group/econ-intel/pkg/insights"
	"github.com/sells-group/econ-intel/pkg/notion"
)

var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one full intelligence run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		registry := source.DefaultRegistry(cfg.Fetch)
		orch := workflow.New(cfg, registry, st)

		run, err := orch.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "workflow run")
		}

		paths, err := report.Write(cfg.Output.Dir, cfg.Output.Formats, run)
		if err != nil {
			return eris.Wrap(err, "write reports")
		}
		zap.L().Info("reports written", zap.Strings("paths", paths))

		// Optional sinks.
		if cfg.Anthropic.Key != "" && run.Result != nil && len(run.Result.Anomalies) > 0 {
			gen := insights.NewGenerator(insights.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
			commentary, genErr := gen.Commentary(ctx, run.Result.Anomalies)
			if genErr != nil {
				zap.L().Warn("anomaly commentary failed", zap.Error(genErr))
			} else if commentary != "" {
				path := filepath.Join(cfg.Output.Dir, run.ID+"-commentary.md")
				if writeErr := os.WriteFile(path, []byte(commentary+"\n"), 0o644); writeErr != nil {
					zap.L().Warn("write commentary failed", zap.Error(writeErr))
				} else {
					zap.L().Info("commentary written", zap.String("path", path))
				}
			}
		}
		if cfg.Notion.Token != "" && cfg.Notion.RunDB != "" {
			client := notion.NewClient(cfg.Notion.Token)
			pageID, pubErr := notion.PublishRun(ctx, client, cfg.Notion.RunDB, run)
			if pubErr != nil {
				zap.L().Warn("notion publish failed", zap.Error(pubErr))
			} else {
				zap.L().Info("run published to notion", zap.String("page_id", pageID))
			}
		}

		if runJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}
		_, err = os.Stdout.WriteString(report.FormatMarkdown(run))
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the raw run record instead of the report")
	rootCmd.AddCommand(runCmd)
}
