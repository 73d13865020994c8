package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func newCostsCommand(ctx *commandContext) *cobra.Command {
	var (
		carID   int64
		perMile bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Report maintenance spend, optionally per mile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				if carID > 0 {
					if _, err := requireCar(cmd.Context(), store, carID); err != nil {
						return err
					}
				}

				summary, err := store.CostSummary(cmd.Context(), carID)
				if err != nil {
					return fmt.Errorf("cost summary: %w", err)
				}

				type carReport struct {
					Car     string              `json:"car"`
					Costs   garage.CarCosts     `json:"costs"`
					PerMile *garage.CostPerMile `json:"per_mile,omitempty"`
				}
				var report []carReport
				for _, costs := range summary {
					car, err := requireCar(cmd.Context(), store, costs.CarID)
					if err != nil {
						return err
					}
					entry := carReport{Car: car.DisplayName(), Costs: costs}
					if perMile {
						cpm, err := store.CostPerMile(cmd.Context(), costs.CarID)
						if err != nil {
							return fmt.Errorf("cost per mile: %w", err)
						}
						entry.PerMile = &cpm
					}
					report = append(report, entry)
				}

				if jsonOut {
					return writeJSON(cmd, report)
				}
				if len(report) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No costs recorded")
					return nil
				}

				out := cmd.OutOrStdout()
				for _, entry := range report {
					fmt.Fprintf(out, "%s: %s across %d services\n", entry.Car, formatMoney(entry.Costs.Total), entry.Costs.Count)
					rows := make([][]string, 0, len(entry.Costs.ByType))
					for _, byType := range entry.Costs.ByType {
						rows = append(rows, []string{
							string(byType.ServiceType),
							fmt.Sprintf("%d", byType.Count),
							formatMoney(byType.Total),
							formatMoney(byType.Average),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Service", "Count", "Total", "Average"},
						rows,
						[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
					))
					if entry.PerMile != nil && entry.PerMile.TotalMiles > 0 {
						fmt.Fprintf(out, "Cost per mile: %s over %s miles\n",
							formatMoney(entry.PerMile.CostPerMile), formatMiles(entry.PerMile.TotalMiles))
					}
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&carID, "car", 0, "Limit to one car by id")
	cmd.Flags().BoolVar(&perMile, "per-mile", false, "Include cost-per-mile figures")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
