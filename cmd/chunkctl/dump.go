package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkio/pkg/chunkfile"
)

var (
	dumpMaxNodes int
	dumpOffsets  bool
	dumpDepth    int
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the chunk tree of a file",
		Long: `The dump command walks every chunk in a file and prints its type tag,
payload length and whether it holds sub-chunks, indented by nesting level.

Example:
  chunkctl dump box.w3d
  chunkctl dump box.w3d --offsets --depth 2
  chunkctl dump box.w3d --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), args)
		},
	}
	cmd.Flags().IntVar(&dumpMaxNodes, "max-nodes", 0, "Stop after this many chunks (0 = unlimited)")
	cmd.Flags().BoolVar(&dumpOffsets, "offsets", false, "Show the file offset of each chunk header")
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Only print this many levels (0 = all)")
	return cmd
}

func runDump(ctx context.Context, args []string) error {
	path := args[0]
	printVerbose("Dumping: %s\n", path)

	nodes, err := inspectFile(ctx, path, dumpMaxNodes)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(nodes)
	}

	chunkfile.Walk(nodes, func(n *chunkfile.Node) bool {
		printInfo("%s\n", formatNode(n, dumpOffsets))
		return dumpDepth == 0 || n.Depth+1 < dumpDepth
	})
	return nil
}

func formatNode(n *chunkfile.Node, offsets bool) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", n.Depth))
	fmt.Fprintf(&sb, "0x%08X len=%d", n.ID, n.Length)
	if n.HasSubChunks {
		fmt.Fprintf(&sb, " [%d children]", len(n.Children))
	}
	if offsets {
		fmt.Fprintf(&sb, " @0x%X", n.Offset)
	}
	return sb.String()
}
