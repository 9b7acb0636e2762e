package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/entity-analyzer/config"
	"github.com/c360studio/entity-analyzer/ontology"
)

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var entityID string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run one source document through the extract-aggregate-resolve pipeline",
		Long:  "Reads a document (a file path, or stdin if omitted), feeds its text through one Run, and prints the resulting entity plus any derived entities.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			text, err := readInput(args)
			if err != nil {
				return err
			}

			if entityID == "" {
				entityID = "source.document." + uuid.NewString()
			}

			app, err := NewApp(cfg)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}

			return runAnalyze(cmd.Context(), app, entityID, text)
		},
	}

	cmd.Flags().StringVar(&entityID, "id", "", "Entity id for the document (default: a generated source.document.<uuid>)")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		loader := config.NewLoader(nil)
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(ctx context.Context, app *App, entityID, text string) error {
	source := ontology.NewEntity(entityID, "Document")

	run, err := app.analyzer.NewRun(ctx, source)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	run.Feed(ctx, text)

	result, err := run.Flush(ctx)
	if err != nil {
		return fmt.Errorf("flush run: %w", err)
	}

	out, err := marshalIndented(result.Output)
	if err != nil {
		return fmt.Errorf("marshal output entity: %w", err)
	}
	fmt.Println(out)

	for _, derived := range result.Derived {
		fmt.Println()
		rendered, err := marshalIndented(derived)
		if err != nil {
			return fmt.Errorf("marshal derived entity: %w", err)
		}
		fmt.Println(rendered)
	}

	if len(result.Trace.Rejections) > 0 {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "rejections:")
		for reason, count := range result.Trace.Rejections {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", reason, count)
		}
	}

	return nil
}
