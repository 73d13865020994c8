package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "crewchief",
		Short:         "Personal vehicle maintenance tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newAddCarCommand(ctx))
	rootCmd.AddCommand(newListCarsCommand(ctx))
	rootCmd.AddCommand(newShowCarCommand(ctx))
	rootCmd.AddCommand(newUpdateCarCommand(ctx))
	rootCmd.AddCommand(newRemoveCarCommand(ctx))
	rootCmd.AddCommand(newLogServiceCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newUpdateServiceCommand(ctx))
	rootCmd.AddCommand(newDeleteServiceCommand(ctx))
	rootCmd.AddCommand(newAddPartCommand(ctx))
	rootCmd.AddCommand(newListPartsCommand(ctx))
	rootCmd.AddCommand(newUpdatePartCommand(ctx))
	rootCmd.AddCommand(newDeletePartCommand(ctx))
	rootCmd.AddCommand(newSetIntervalCommand(ctx))
	rootCmd.AddCommand(newCheckDueCommand(ctx))
	rootCmd.AddCommand(newCostsCommand(ctx))
	rootCmd.AddCommand(newDashboardCommand(ctx))
	rootCmd.AddCommand(newSummaryCommand(ctx))
	rootCmd.AddCommand(newSuggestCommand(ctx))
	rootCmd.AddCommand(newTrackPrepCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
