package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkio/chunk"
	"github.com/joshuapare/chunkio/cmd/chunkctl/logger"
	"github.com/joshuapare/chunkio/pkg/chunkfile"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	maxDepth int
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Inspect and verify nested binary chunk files",
	Long: `chunkctl inspects W3D-style chunk files: it prints the chunk tree,
summarizes chunk types and sizes, and audits the nesting structure for
overruns and truncation without needing to understand any chunk type.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&maxDepth, "max-depth", chunk.DefaultMaxDepth, "Maximum chunk nesting depth")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger.Init(logger.Options{Out: os.Stderr, Level: level})
}

// readerOptions returns chunk reader options honoring the global flags.
func readerOptions() *chunk.Options {
	return &chunk.Options{MaxDepth: maxDepth, Logger: logger.L}
}

// inspectFile maps path and returns its chunk tree.
func inspectFile(ctx context.Context, path string, maxNodes int) ([]*chunkfile.Node, error) {
	data, release, err := chunkfile.MapFile(path)
	if err != nil {
		return nil, err
	}
	defer release()

	logger.Debug("inspecting", "path", path, "bytes", len(data))
	nodes, err := chunkfile.Inspect(ctx, bytes.NewReader(data), &chunkfile.InspectOptions{
		MaxNodes: maxNodes,
		Reader:   readerOptions(),
	})
	if err != nil {
		return nodes, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
