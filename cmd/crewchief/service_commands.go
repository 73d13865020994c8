package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func renderEventTable(events []*garage.MaintenanceEvent, withCarColumn bool) string {
	headers := []string{"ID", "Date", "Type", "Odometer", "Cost", "Description"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	if withCarColumn {
		headers = append([]string{"Car"}, headers...)
		aligns = append([]columnAlignment{alignRight}, aligns...)
	}

	rows := make([][]string, 0, len(events))
	for _, event := range events {
		row := []string{
			strconv.FormatInt(event.ID, 10),
			event.ServiceDate.Format("2006-01-02"),
			string(event.ServiceType),
			formatMiles(event.Odometer),
			formatMoney(event.Cost),
			dash(event.Description),
		}
		if withCarColumn {
			row = append([]string{strconv.FormatInt(event.CarID, 10)}, row...)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func newLogServiceCommand(ctx *commandContext) *cobra.Command {
	var (
		date        string
		serviceType string
		odometer    int64
		description string
		parts       string
		cost        float64
		location    string
	)

	cmd := &cobra.Command{
		Use:   "log-service <car-id>",
		Short: "Record a maintenance event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := parseID(args[0])
			if err != nil {
				return err
			}
			serviceDate, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			parsedType, err := parseServiceTypeFlag(serviceType)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, carID)
				if err != nil {
					return err
				}
				event, err := store.AddEvent(cmd.Context(), &garage.MaintenanceEvent{
					CarID:       carID,
					ServiceDate: serviceDate,
					Odometer:    odometer,
					ServiceType: parsedType,
					Description: description,
					Parts:       parts,
					Cost:        cost,
					Location:    location,
				})
				if err != nil {
					return fmt.Errorf("log service: %w", err)
				}
				// Logging a service at a higher mileage advances the car's
				// odometer too.
				if odometer > car.CurrentOdometer {
					car.CurrentOdometer = odometer
					if err := store.UpdateCar(cmd.Context(), car); err != nil {
						return fmt.Errorf("update odometer: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %s (event %d)\n", event.ServiceType, car.DisplayName(), event.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Service date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&serviceType, "type", "", "Service type ("+joinServiceTypes()+")")
	cmd.Flags().Int64Var(&odometer, "odometer", 0, "Odometer at time of service")
	cmd.Flags().StringVar(&description, "description", "", "What was done")
	cmd.Flags().StringVar(&parts, "parts", "", "Parts used")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Total cost")
	cmd.Flags().StringVar(&location, "location", "", "Shop or location")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history [car-id]",
		Short: "Show maintenance history, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *garage.Store) error {
				var (
					events []*garage.MaintenanceEvent
					err    error
				)
				withCarColumn := true
				if len(args) == 1 {
					carID, idErr := parseID(args[0])
					if idErr != nil {
						return idErr
					}
					if _, err := requireCar(cmd.Context(), store, carID); err != nil {
						return err
					}
					events, err = store.EventsForCar(cmd.Context(), carID, limit)
					withCarColumn = false
				} else {
					events, err = store.ListEvents(cmd.Context(), limit)
				}
				if err != nil {
					return fmt.Errorf("load history: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd, events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No maintenance events recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderEventTable(events, withCarColumn))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newUpdateServiceCommand(ctx *commandContext) *cobra.Command {
	var (
		date        string
		serviceType string
		odometer    int64
		description string
		parts       string
		cost        float64
		location    string
	)

	cmd := &cobra.Command{
		Use:   "update-service <event-id>",
		Short: "Update a recorded maintenance event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				event, err := store.GetEvent(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("load event: %w", err)
				}
				if event == nil {
					return fmt.Errorf("no maintenance event with id %d", id)
				}
				if cmd.Flags().Changed("date") {
					serviceDate, err := parseDateFlag(date)
					if err != nil {
						return err
					}
					event.ServiceDate = serviceDate
				}
				if cmd.Flags().Changed("type") {
					parsedType, err := parseServiceTypeFlag(serviceType)
					if err != nil {
						return err
					}
					event.ServiceType = parsedType
				}
				if cmd.Flags().Changed("odometer") {
					event.Odometer = odometer
				}
				if cmd.Flags().Changed("description") {
					event.Description = description
				}
				if cmd.Flags().Changed("parts") {
					event.Parts = parts
				}
				if cmd.Flags().Changed("cost") {
					event.Cost = cost
				}
				if cmd.Flags().Changed("location") {
					event.Location = location
				}
				if err := store.UpdateEvent(cmd.Context(), event); err != nil {
					return fmt.Errorf("update event: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated event %d\n", event.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Service date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&serviceType, "type", "", "Service type ("+joinServiceTypes()+")")
	cmd.Flags().Int64Var(&odometer, "odometer", 0, "Odometer at time of service")
	cmd.Flags().StringVar(&description, "description", "", "What was done")
	cmd.Flags().StringVar(&parts, "parts", "", "Parts used")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Total cost")
	cmd.Flags().StringVar(&location, "location", "", "Shop or location")
	return cmd
}

func newDeleteServiceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-service <event-id>",
		Short: "Delete a recorded maintenance event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				deleted, err := store.DeleteEvent(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("delete event: %w", err)
				}
				if !deleted {
					return fmt.Errorf("no maintenance event with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %d\n", id)
				return nil
			})
		},
	}
}
