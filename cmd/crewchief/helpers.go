package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"crewchief/internal/garage"
)

var numberPrinter = message.NewPrinter(language.AmericanEnglish)

func formatMoney(amount float64) string {
	return numberPrinter.Sprintf("$%.2f", amount)
}

func formatMiles(miles int64) string {
	return numberPrinter.Sprintf("%d", miles)
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseDateFlag(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "today") {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(time.DateOnly, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return parsed, nil
}

func parseServiceTypeFlag(value string) (garage.ServiceType, error) {
	serviceType, ok := garage.ParseServiceType(value)
	if !ok {
		return "", fmt.Errorf("unknown service type %q (known: %s)", value, joinServiceTypes())
	}
	return serviceType, nil
}

func parseUsageTypeFlag(value string) (garage.UsageType, error) {
	usage, ok := garage.ParseUsageType(value)
	if !ok {
		known := make([]string, 0, len(garage.AllUsageTypes()))
		for _, u := range garage.AllUsageTypes() {
			known = append(known, string(u))
		}
		return "", fmt.Errorf("unknown usage type %q (known: %s)", value, strings.Join(known, ", "))
	}
	return usage, nil
}

func parsePartCategoryFlag(value string) (garage.PartCategory, error) {
	category, ok := garage.ParsePartCategory(value)
	if !ok {
		known := make([]string, 0, len(garage.AllPartCategories()))
		for _, c := range garage.AllPartCategories() {
			known = append(known, string(c))
		}
		return "", fmt.Errorf("unknown part category %q (known: %s)", value, strings.Join(known, ", "))
	}
	return category, nil
}

func joinServiceTypes() string {
	known := make([]string, 0, len(garage.AllServiceTypes()))
	for _, s := range garage.AllServiceTypes() {
		known = append(known, string(s))
	}
	return strings.Join(known, ", ")
}

// requireCar loads a car or returns a user-facing error naming the id.
func requireCar(ctx context.Context, store *garage.Store, id int64) (*garage.Car, error) {
	car, err := store.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("no car with id %d", id)
	}
	return car, nil
}
