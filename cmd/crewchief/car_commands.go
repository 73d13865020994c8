package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func newAddCarCommand(ctx *commandContext) *cobra.Command {
	var (
		nickname string
		year     int
		carMake  string
		model    string
		trim     string
		vin      string
		usage    string
		odometer int64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add-car",
		Short: "Add a vehicle to the garage",
		RunE: func(cmd *cobra.Command, args []string) error {
			usageType, err := parseUsageTypeFlag(usage)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := store.AddCar(cmd.Context(), &garage.Car{
					Nickname:        nickname,
					Year:            year,
					Make:            carMake,
					Model:           model,
					Trim:            trim,
					VIN:             vin,
					UsageType:       usageType,
					CurrentOdometer: odometer,
					Notes:           notes,
				})
				if err != nil {
					return fmt.Errorf("add car: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added car %d: %s\n", car.ID, car.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname for the vehicle")
	cmd.Flags().IntVar(&year, "year", 0, "Model year")
	cmd.Flags().StringVar(&carMake, "make", "", "Manufacturer")
	cmd.Flags().StringVar(&model, "model", "", "Model name")
	cmd.Flags().StringVar(&trim, "trim", "", "Trim level")
	cmd.Flags().StringVar(&vin, "vin", "", "Vehicle identification number")
	cmd.Flags().StringVar(&usage, "usage", "daily", "Usage type (daily, track, project, show, other)")
	cmd.Flags().Int64Var(&odometer, "odometer", 0, "Current odometer reading in miles")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("make")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func newListCarsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list-cars",
		Short: "List all vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				cars, err := store.ListCars(cmd.Context())
				if err != nil {
					return fmt.Errorf("list cars: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd, cars)
				}
				if len(cars) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cars in the garage. Add one with `crewchief add-car`.")
					return nil
				}
				rows := make([][]string, 0, len(cars))
				for _, car := range cars {
					rows = append(rows, []string{
						strconv.FormatInt(car.ID, 10),
						car.DisplayName(),
						string(car.UsageType),
						formatMiles(car.CurrentOdometer),
						dash(car.VIN),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Car", "Usage", "Odometer", "VIN"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newShowCarCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show-car <id>",
		Short: "Show one vehicle with recent history and parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, id)
				if err != nil {
					return err
				}
				events, err := store.EventsForCar(cmd.Context(), id, 5)
				if err != nil {
					return fmt.Errorf("load history: %w", err)
				}
				parts, err := store.ListParts(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("load parts: %w", err)
				}

				if jsonOut {
					return writeJSON(cmd, map[string]any{
						"car":    car,
						"events": events,
						"parts":  parts,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", car.DisplayName())
				fmt.Fprintf(out, "  Usage:    %s\n", car.UsageType)
				fmt.Fprintf(out, "  Odometer: %s miles\n", formatMiles(car.CurrentOdometer))
				if car.Trim != "" {
					fmt.Fprintf(out, "  Trim:     %s\n", car.Trim)
				}
				if car.VIN != "" {
					fmt.Fprintf(out, "  VIN:      %s\n", car.VIN)
				}
				if car.Notes != "" {
					fmt.Fprintf(out, "  Notes:    %s\n", car.Notes)
				}

				if len(events) > 0 {
					fmt.Fprintln(out, "\nRecent service:")
					fmt.Fprintln(out, renderEventTable(events, false))
				}
				if len(parts) > 0 {
					fmt.Fprintln(out, "\nParts profile:")
					fmt.Fprintln(out, renderPartTable(parts))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newUpdateCarCommand(ctx *commandContext) *cobra.Command {
	var (
		nickname string
		usage    string
		odometer int64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "update-car <id>",
		Short: "Update a vehicle's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, id)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("nickname") {
					car.Nickname = nickname
				}
				if cmd.Flags().Changed("usage") {
					usageType, err := parseUsageTypeFlag(usage)
					if err != nil {
						return err
					}
					car.UsageType = usageType
				}
				if cmd.Flags().Changed("odometer") {
					car.CurrentOdometer = odometer
				}
				if cmd.Flags().Changed("notes") {
					car.Notes = notes
				}
				if err := store.UpdateCar(cmd.Context(), car); err != nil {
					return fmt.Errorf("update car: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated car %d: %s\n", car.ID, car.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname for the vehicle")
	cmd.Flags().StringVar(&usage, "usage", "", "Usage type (daily, track, project, show, other)")
	cmd.Flags().Int64Var(&odometer, "odometer", 0, "Current odometer reading in miles")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newRemoveCarCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove-car <id>",
		Short: "Remove a vehicle and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("remove-car deletes the car and all its service history; re-run with --force to confirm")
			}
			return ctx.withStore(func(store *garage.Store) error {
				removed, err := store.RemoveCar(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("remove car: %w", err)
				}
				if !removed {
					return fmt.Errorf("no car with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed car %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation requirement")
	return cmd
}
