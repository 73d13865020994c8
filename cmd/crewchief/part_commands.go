package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crewchief/internal/garage"
)

func renderPartTable(parts []*garage.CarPart) string {
	rows := make([][]string, 0, len(parts))
	for _, part := range parts {
		rows = append(rows, []string{
			strconv.FormatInt(part.ID, 10),
			string(part.Category),
			dash(part.Brand),
			dash(part.PartNumber),
			dash(part.SizeSpec),
			dash(part.Notes),
		})
	}
	return renderTable(
		[]string{"ID", "Category", "Brand", "Part #", "Size/Spec", "Notes"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func newAddPartCommand(ctx *commandContext) *cobra.Command {
	var (
		category   string
		brand      string
		partNumber string
		sizeSpec   string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add-part <car-id>",
		Short: "Record a preferred part or consumable for a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := parseID(args[0])
			if err != nil {
				return err
			}
			parsedCategory, err := parsePartCategoryFlag(category)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				car, err := requireCar(cmd.Context(), store, carID)
				if err != nil {
					return err
				}
				part, err := store.AddPart(cmd.Context(), &garage.CarPart{
					CarID:      carID,
					Category:   parsedCategory,
					Brand:      brand,
					PartNumber: partNumber,
					SizeSpec:   sizeSpec,
					Notes:      notes,
				})
				if err != nil {
					return fmt.Errorf("add part: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s part %d for %s\n", part.Category, part.ID, car.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Part category")
	cmd.Flags().StringVar(&brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&partNumber, "part-number", "", "Part number")
	cmd.Flags().StringVar(&sizeSpec, "size", "", "Size or specification (e.g. 0W-20, 225/45R17)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newListPartsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list-parts [car-id]",
		Short: "List recorded parts, optionally for one vehicle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var carID int64
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				carID = id
			}
			return ctx.withStore(func(store *garage.Store) error {
				parts, err := store.ListParts(cmd.Context(), carID)
				if err != nil {
					return fmt.Errorf("list parts: %w", err)
				}
				if jsonOut {
					return writeJSON(cmd, parts)
				}
				if len(parts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No parts recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderPartTable(parts))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newUpdatePartCommand(ctx *commandContext) *cobra.Command {
	var (
		category   string
		brand      string
		partNumber string
		sizeSpec   string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "update-part <part-id>",
		Short: "Update a recorded part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				part, err := store.GetPart(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("load part: %w", err)
				}
				if part == nil {
					return fmt.Errorf("no part with id %d", id)
				}
				if cmd.Flags().Changed("category") {
					parsedCategory, err := parsePartCategoryFlag(category)
					if err != nil {
						return err
					}
					part.Category = parsedCategory
				}
				if cmd.Flags().Changed("brand") {
					part.Brand = brand
				}
				if cmd.Flags().Changed("part-number") {
					part.PartNumber = partNumber
				}
				if cmd.Flags().Changed("size") {
					part.SizeSpec = sizeSpec
				}
				if cmd.Flags().Changed("notes") {
					part.Notes = notes
				}
				if err := store.UpdatePart(cmd.Context(), part); err != nil {
					return fmt.Errorf("update part: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated part %d\n", part.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Part category")
	cmd.Flags().StringVar(&brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&partNumber, "part-number", "", "Part number")
	cmd.Flags().StringVar(&sizeSpec, "size", "", "Size or specification")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newDeletePartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-part <part-id>",
		Short: "Delete a recorded part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *garage.Store) error {
				deleted, err := store.DeletePart(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("delete part: %w", err)
				}
				if !deleted {
					return fmt.Errorf("no part with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted part %d\n", id)
				return nil
			})
		},
	}
}
