package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crewchief/internal/advisor"
	"crewchief/internal/garage"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "AI summary of the garage's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			adv, err := ctx.newAdvisor()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				snapshot, err := store.Snapshot(cmd.Context())
				if err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
				if len(snapshot.Cars) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Garage is empty, nothing to summarize.")
					return nil
				}
				summary, err := adv.GarageSummary(cmd.Context(), snapshot)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(summary))
				return nil
			})
		},
	}
}

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "AI maintenance suggestions, one per car",
		RunE: func(cmd *cobra.Command, args []string) error {
			adv, err := ctx.newAdvisor()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				snapshot, err := store.Snapshot(cmd.Context())
				if err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
				if len(snapshot.Cars) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Garage is empty, nothing to suggest.")
					return nil
				}
				suggestions, err := adv.SuggestMaintenance(cmd.Context(), snapshot)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, suggestions)
				}
				printSuggestions(cmd, suggestions)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printSuggestions(cmd *cobra.Command, suggestions []advisor.MaintenanceSuggestion) {
	out := cmd.OutOrStdout()
	for i, suggestion := range suggestions {
		if i > 0 {
			fmt.Fprintln(out)
		}
		header := fmt.Sprintf("%s [%s]", suggestion.CarLabel, strings.ToUpper(suggestion.Priority))
		if suggestion.Degraded {
			header += " (manual review needed)"
		}
		fmt.Fprintln(out, header)
		for _, action := range suggestion.SuggestedActions {
			fmt.Fprintf(out, "  - %s\n", action)
		}
		if suggestion.Reasoning != "" {
			fmt.Fprintf(out, "  Why: %s\n", suggestion.Reasoning)
		}
	}
}

func newTrackPrepCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "track-prep <car-id>",
		Short: "AI track day preparation checklist for one car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := parseID(args[0])
			if err != nil {
				return err
			}
			adv, err := ctx.newAdvisor()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, carID)
				if err != nil {
					return err
				}
				history, err := store.EventsForCar(cmd.Context(), carID, 20)
				if err != nil {
					return fmt.Errorf("load history: %w", err)
				}
				events := make([]garage.MaintenanceEvent, 0, len(history))
				for _, event := range history {
					events = append(events, *event)
				}

				checklist, err := adv.TrackPrep(cmd.Context(), *car, events)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, checklist)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Track prep: %s\n\n", checklist.CarLabel)
				fmt.Fprintln(out, "Critical:")
				for _, item := range checklist.CriticalItems {
					fmt.Fprintf(out, "  [ ] %s\n", item)
				}
				if len(checklist.RecommendedItems) > 0 {
					fmt.Fprintln(out, "\nRecommended:")
					for _, item := range checklist.RecommendedItems {
						fmt.Fprintf(out, "  [ ] %s\n", item)
					}
				}
				if checklist.Notes != "" {
					fmt.Fprintf(out, "\nNotes: %s\n", checklist.Notes)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
