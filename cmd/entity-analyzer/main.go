// Package main implements the entity-analyzer CLI: a one-shot "analyze"
// command for a single document and a "serve" command that consumes
// source entities from NATS JetStream continuously.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "entity-analyzer",
		Short:   "Extracts and resolves entities from source document text",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: layered project/user config)")

	rootCmd.AddCommand(newAnalyzeCmd(&configPath))
	rootCmd.AddCommand(newServeCmd(&configPath))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}
