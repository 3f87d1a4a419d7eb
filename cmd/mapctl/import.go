package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BerylCAtieno/strategy-mapper/internal/export"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/spf13/cobra"
)

func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Extract and geocode entries from free text",
		Long: `Import reads a free-text list of schools or services from a file, or from
stdin when the file is "-" or omitted, extracts the entries with Gemini and
geocodes each one. Entries that cannot be located are skipped.

Examples:
  mapctl import schools.txt
  pbpaste | mapctl import --format md --analyze -o report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImportCmd,
	}
	addOutputFlags(cmd)
	cmd.Flags().Bool("analyze", false, "Include a strategic analysis of the imported entries")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	analyze, err := cmd.Flags().GetBool("analyze")
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	assistant, closeFn, err := newAssistant(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	stderr := cmd.ErrOrStderr()
	importer := workspace.NewImporter(assistant, logger)
	clients, err := importer.Run(ctx, text, func(msg string) {
		fmt.Fprintln(stderr, msg)
	})
	if err != nil {
		return fmt.Errorf("%s (%w)", workspace.UserMessage(err), err)
	}

	data := export.Data{GeneratedAt: now().UTC(), Clients: clients}
	if analyze {
		fmt.Fprintln(stderr, "Analyzing...")
		insight, err := assistant.StrategicAnalysis(ctx, clients)
		if err != nil {
			logger.Warn("strategic analysis failed", logging.Err(err))
			fmt.Fprintln(stderr, "Strategic analysis unavailable, writing entries only.")
		} else {
			data.Insight = insight
		}
	}
	return writeExport(cmd, data)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(b), nil
}
