package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Weakky/introspection-cli/pkg/connector"
	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/logger"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the schemas or databases reachable with the given credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(os.Stderr, debug)

		if err := applyDefaults(); err != nil {
			return err
		}
		desc, err := credentials.Resolve(&connFlags)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		conn, err := connector.New(ctx, desc, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to disconnect")
			}
		}()

		schemas, err := conn.ListSchemas(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Available schemas for %s:\n", desc.Family())
		for _, name := range schemas {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	},
}
