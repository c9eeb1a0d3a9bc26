package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marcpd/internal/candidatecache"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var registrationPath string
	var renewalPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import candidate datasets into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			registrationPath = strings.TrimSpace(registrationPath)
			renewalPath = strings.TrimSpace(renewalPath)
			if registrationPath == "" && renewalPath == "" {
				return fmt.Errorf("nothing to import: pass --registrations and/or --renewals")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := candidatecache.Open(cfg)
			if err != nil {
				return fmt.Errorf("open candidate cache: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if registrationPath != "" {
				n, err := store.Import(cmd.Context(), candidatecache.DatasetRegistration, registrationPath)
				if err != nil {
					return fmt.Errorf("import registrations: %w", err)
				}
				fmt.Fprintf(out, "Imported %d registration records\n", n)
			}
			if renewalPath != "" {
				n, err := store.Import(cmd.Context(), candidatecache.DatasetRenewal, renewalPath)
				if err != nil {
					return fmt.Errorf("import renewals: %w", err)
				}
				fmt.Fprintf(out, "Imported %d renewal records\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&registrationPath, "registrations", "", "JSON-lines file of registration records")
	cmd.Flags().StringVar(&renewalPath, "renewals", "", "JSON-lines file of renewal records")
	return cmd
}
