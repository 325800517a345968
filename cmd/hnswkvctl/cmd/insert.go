package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var insertMetadata string

var insertCmd = &cobra.Command{
	Use:   "insert <v1,v2,...,vN>",
	Short: "Insert a vector into the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsert,
}

func init() {
	insertCmd.Flags().StringVar(&insertMetadata, "metadata", "", "opaque metadata bytes to attach")
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	vector, err := parseVector(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	idx, err := openIndex(ctx)
	if err != nil {
		return err
	}

	var meta []byte
	if insertMetadata != "" {
		meta = []byte(insertMetadata)
	}

	id, err := idx.Insert(ctx, vector, meta)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inserted id=%d\n", uint32(id))
	return nil
}

func parseVector(raw string) ([]float32, error) {
	fields := strings.Split(raw, ",")
	vector := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("parse vector component %q: %w", f, err)
		}
		vector[i] = float32(v)
	}
	return vector, nil
}
