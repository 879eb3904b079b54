package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/econ-intel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "econ-intel",
	Short: "Multi-source economic indicator intelligence",
	Long:  "Fetches GDP (PPP), HDI, happiness, and cost-of-living data from independent public sources, reconciles disagreement between them, ranks countries, and flags anomalous indicator combinations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments set the environment directly.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
