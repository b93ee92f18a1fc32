package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkio/cmd/chunkctl/logger"
	"github.com/joshuapare/chunkio/pkg/chunkfile"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Audit the chunk structure of a file",
		Long: `The verify command checks that every chunk fits inside its parent and
the file, that containers are tiled exactly by their children and that
nesting stays within --max-depth. All issues are reported, not just the
first. The command exits non-zero when any issue is found.

Example:
  chunkctl verify box.w3d
  chunkctl verify box.w3d --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), args)
		},
	}
}

func runVerify(ctx context.Context, args []string) error {
	path := args[0]
	data, release, err := chunkfile.MapFile(path)
	if err != nil {
		return err
	}
	defer release()

	rep, err := chunkfile.Verify(ctx, data, &chunkfile.VerifyOptions{MaxDepth: maxDepth})
	if err != nil {
		return err
	}
	for _, issue := range rep.Issues {
		logger.Warn("structural issue", "path", path, "kind", issue.Kind.String(), "offset", issue.Offset)
	}

	if jsonOut {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		printInfo("\nVerification: %s\n", path)
		printInfo("  Chunks: %d\n", rep.Chunks)
		printInfo("  Max depth: %d\n", rep.MaxDepth)
		for _, issue := range rep.Issues {
			printInfo("  ✗ %s\n", issue)
		}
		if rep.OK() {
			printInfo("  ✓ Structure valid\n")
		}
	}

	if !rep.OK() {
		return fmt.Errorf("%s: %d structural issue(s)", path, len(rep.Issues))
	}
	return nil
}
