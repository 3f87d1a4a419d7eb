package main

import (
	"github.com/BerylCAtieno/strategy-mapper/internal/export"
	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/spf13/cobra"
)

func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the demo dataset",
		Long: `Write the three demo entries the map starts with. No API key is needed.

Examples:
  mapctl demo
  mapctl demo --format xlsx -o demo.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeExport(cmd, export.Data{
				GeneratedAt: now().UTC(),
				Clients:     models.DemoClients(),
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}
