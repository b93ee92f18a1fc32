package main

import (
	"context"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkio/pkg/chunkfile"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize chunk counts, depth and payload sizes",
		Long: `The info command walks a chunk file and reports the number of chunks,
how many of them are containers, the deepest nesting level, the total raw
payload size and a histogram of chunk type tags.

Example:
  chunkctl info box.w3d
  chunkctl info box.w3d --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args)
		},
	}
}

func runInfo(ctx context.Context, args []string) error {
	path := args[0]
	nodes, err := inspectFile(ctx, path, 0)
	if err != nil {
		return err
	}
	stats := chunkfile.Summarize(nodes)

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nChunk File Information:\n")
	printInfo("  File: %s\n", path)
	if stat, err := os.Stat(path); err == nil {
		printInfo("  Size: %d bytes\n", stat.Size())
	}
	printInfo("  Top-level chunks: %d\n", len(nodes))
	printInfo("  Chunks: %d\n", stats.Chunks)
	printInfo("  Containers: %d\n", stats.Containers)
	printInfo("  Max depth: %d\n", stats.MaxDepth)
	printInfo("  Payload bytes: %d\n", stats.PayloadBytes)

	ids := make([]uint32, 0, len(stats.ByType))
	for id := range stats.ByType {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	printInfo("\nChunk Types:\n")
	for _, id := range ids {
		printInfo("  0x%08X: %d\n", id, stats.ByType[id])
	}
	return nil
}
