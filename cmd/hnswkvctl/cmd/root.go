package cmd

import (
	"github.com/spf13/cobra"
)

var (
	backendFlag   string
	namespaceFlag string
	dimensionFlag int
)

var rootCmd = &cobra.Command{
	Use:   "hnswkvctl",
	Short: "hnswkvctl drives an hnswkv index from the command line",
	Long: `hnswkvctl is a thin client over the hnswkv index package.

It is a diagnostic and demo tool, not part of the core: the same
backend a production service points at hnswkv.index.Open can be
inspected here with insert/search/stats subcommands.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "memory", "backend to use: memory|dynamodb|s3")
	rootCmd.PersistentFlags().StringVar(&namespaceFlag, "namespace", "default", "contract namespace to open")
	rootCmd.PersistentFlags().IntVar(&dimensionFlag, "dimension", 4, "vector dimension for this index")
}
