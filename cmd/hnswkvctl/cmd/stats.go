package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print index-global state for a namespace",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	idx, err := openIndex(ctx)
	if err != nil {
		return err
	}

	stats, err := idx.Stats(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "namespace:  %s\n", namespaceFlag)
	fmt.Fprintf(w, "num_points: %d\n", stats.NumPoints)
	fmt.Fprintf(w, "num_layers: %d\n", stats.NumLayers)
	fmt.Fprintf(w, "M:          %d\n", stats.Config.M)
	fmt.Fprintf(w, "ef_search:  %d\n", stats.Config.EFSearch)
	return nil
}
