package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/econ-intel/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured upstream sources per indicator",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := source.DefaultRegistry(cfg.Fetch)
		for _, indicator := range registry.Indicators() {
			sources, err := registry.ForIndicator(indicator)
			if err != nil {
				return err
			}
			fmt.Printf("%s:\n", indicator.Label())
			for _, s := range sources {
				fmt.Printf("  - %s\n", s.ID())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
