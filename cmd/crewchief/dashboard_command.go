package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Render a one-shot garage dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				cars, err := store.ListCars(cmd.Context())
				if err != nil {
					return fmt.Errorf("list cars: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(cars) == 0 {
					fmt.Fprintln(out, "Garage is empty. Add a car with `crewchief add-car`.")
					return nil
				}

				fmt.Fprintln(out, "GARAGE")
				rows := make([][]string, 0, len(cars))
				for _, car := range cars {
					rows = append(rows, []string{
						car.DisplayName(),
						string(car.UsageType),
						formatMiles(car.CurrentOdometer),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Car", "Usage", "Odometer"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))

				thresholds := ctx.dueThresholds()
				printedDueHeader := false
				for _, car := range cars {
					services, err := store.DueServices(cmd.Context(), car.ID, thresholds)
					if err != nil {
						return fmt.Errorf("due services: %w", err)
					}
					var due []garage.DueService
					for _, service := range services {
						if service.Due {
							due = append(due, service)
						}
					}
					if len(due) == 0 {
						continue
					}
					if !printedDueHeader {
						fmt.Fprintln(out, "\nDUE SERVICES")
						printedDueHeader = true
					}
					fmt.Fprintf(out, "%s\n", car.DisplayName())
					fmt.Fprintln(out, renderDueTable(due))
				}

				events, err := store.ListEvents(cmd.Context(), 10)
				if err != nil {
					return fmt.Errorf("recent events: %w", err)
				}
				if len(events) > 0 {
					fmt.Fprintln(out, "\nRECENT SERVICE")
					fmt.Fprintln(out, renderEventTable(events, true))
				}
				return nil
			})
		},
	}
}
