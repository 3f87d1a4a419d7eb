package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/spf13/cobra"
)

func NewGeocodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <address>",
		Short: "Resolve one address to coordinates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := strings.Join(args, " ")

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			assistant, closeFn, err := newAssistant(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := assistant.Geocode(cmd.Context(), address)
			if err == nil && res == nil {
				err = workspace.ErrLocationNotFound
			}
			if err == nil {
				err = res.Validate()
			}
			if err != nil {
				return fmt.Errorf("%s (%w)", workspace.UserMessage(workspace.ErrLocationNotFound), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
