package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func newSetIntervalCommand(ctx *commandContext) *cobra.Command {
	var (
		serviceType string
		miles       int64
		months      int
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "set-interval <car-id>",
		Short: "Set how often a service type is due for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := parseID(args[0])
			if err != nil {
				return err
			}
			parsedType, err := parseServiceTypeFlag(serviceType)
			if err != nil {
				return err
			}
			if miles <= 0 && months <= 0 {
				return fmt.Errorf("set at least one of --miles or --months")
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, carID)
				if err != nil {
					return err
				}
				interval, err := store.SetInterval(cmd.Context(), &garage.MaintenanceInterval{
					CarID:          carID,
					ServiceType:    parsedType,
					IntervalMiles:  miles,
					IntervalMonths: months,
					Notes:          notes,
				})
				if err != nil {
					return fmt.Errorf("set interval: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Set %s interval for %s:", interval.ServiceType, car.DisplayName())
				if interval.IntervalMiles > 0 {
					fmt.Fprintf(out, " every %s miles", formatMiles(interval.IntervalMiles))
				}
				if interval.IntervalMonths > 0 {
					fmt.Fprintf(out, " every %d months", interval.IntervalMonths)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&serviceType, "type", "", "Service type ("+joinServiceTypes()+")")
	cmd.Flags().Int64Var(&miles, "miles", 0, "Interval in miles (0 disables the mileage check)")
	cmd.Flags().IntVar(&months, "months", 0, "Interval in months (0 disables the calendar check)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newCheckDueCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "check-due [car-id]",
		Short: "Check which services are due or coming up",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				var cars []*garage.Car
				if len(args) == 1 {
					carID, err := parseID(args[0])
					if err != nil {
						return err
					}
					car, err := requireCar(cmd.Context(), store, carID)
					if err != nil {
						return err
					}
					cars = []*garage.Car{car}
				} else {
					listed, err := store.ListCars(cmd.Context())
					if err != nil {
						return fmt.Errorf("list cars: %w", err)
					}
					cars = listed
				}

				thresholds := ctx.dueThresholds()
				type dueRow struct {
					Car string              `json:"car"`
					Due []garage.DueService `json:"due"`
				}
				var report []dueRow
				for _, car := range cars {
					services, err := store.DueServices(cmd.Context(), car.ID, thresholds)
					if err != nil {
						return fmt.Errorf("check due for %s: %w", car.DisplayName(), err)
					}
					filtered := services[:0]
					for _, service := range services {
						if service.Due || all {
							filtered = append(filtered, service)
						}
					}
					if len(filtered) > 0 {
						report = append(report, dueRow{Car: car.DisplayName(), Due: filtered})
					}
				}

				if jsonOut {
					return writeJSON(cmd, report)
				}
				if len(report) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing due. Nice work.")
					return nil
				}
				for _, row := range report {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", row.Car)
					fmt.Fprintln(cmd.OutOrStdout(), renderDueTable(row.Due))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "Include intervals that are not due yet")
	return cmd
}

func renderDueTable(services []garage.DueService) string {
	rows := make([][]string, 0, len(services))
	for _, service := range services {
		milesUntil := "-"
		if service.HasMilesCheck {
			milesUntil = formatMiles(service.MilesUntilDue)
		}
		monthsUntil := "-"
		if service.HasMonthsCheck {
			monthsUntil = strconv.Itoa(service.MonthsUntilDue)
		}
		status := "ok"
		if service.Due {
			status = service.Reason
		}
		rows = append(rows, []string{
			string(service.ServiceType),
			milesUntil,
			monthsUntil,
			status,
		})
	}
	return renderTable(
		[]string{"Service", "Miles left", "Months left", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}
