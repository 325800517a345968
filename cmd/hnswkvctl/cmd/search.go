package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchK int

var searchCmd = &cobra.Command{
	Use:   "search <v1,v2,...,vN>",
	Short: "Find the k nearest points to a query vector",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "k", "k", 10, "number of neighbors to return")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, err := parseVector(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	idx, err := openIndex(ctx)
	if err != nil {
		return err
	}

	results, err := idx.KNNSearch(ctx, query, searchK)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "id=%d distance=%.6f metadata=%q\n", uint32(r.ID), r.Distance, string(r.Metadata))
	}
	return nil
}
