package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/config"
	"github.com/BerylCAtieno/strategy-mapper/internal/export"
	"github.com/BerylCAtieno/strategy-mapper/internal/gemini"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/spf13/cobra"
)

// newAssistant connects to Gemini. Tests replace it with a fake.
var newAssistant = func(ctx context.Context, cfg *config.Config, logger logging.Logger) (workspace.Assistant, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	client, err := gemini.NewGeminiClient(ctx, cfg.Gemini, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

var now = time.Now

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapctl",
		Short: "Work with strategy map data from the command line",
		Long: `mapctl imports free-text lists of schools and services, geocodes them with
Gemini and writes the result in any of the export formats the map offers.

Settings are read the same way as the server: .env, an optional YAML file
given with --config, then GEMINI_API_KEY and MAPPER_* environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(NewDemoCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewGeocodeCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and builds a logger that writes to stderr
// so stdout stays free for exported data.
func loadConfig(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return cfg, logging.NewNopLogger(), nil
	}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "console"
	cfg.Log.OutputPaths = []string{"stderr"}
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", string(export.FormatJSON), "Output format: json, yaml, xlsx or md")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}

// writeExport encodes data in the --format flag's format to --output, or to
// the command's stdout when no output file is given.
func writeExport(cmd *cobra.Command, data export.Data) error {
	name, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, data); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d entries to %s\n", len(data.Clients), path)
	}
	return nil
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
