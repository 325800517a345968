// Command hnswkvctl is a thin CLI consumer of the public index API. It
// lives outside the core packages (hnsw, store, kv, codec): a library/binary
// boundary, not a place for index logic to leak into.
package main

import (
	"os"

	"github.com/contextvault/hnswkv/cmd/hnswkvctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
