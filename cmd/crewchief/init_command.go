package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and data directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Garage database ready at %s\n", store.Path())
				return nil
			})
		},
	}
}
