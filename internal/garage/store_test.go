package garage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "garage.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func addTestCar(t *testing.T, store *Store) *Car {
	t.Helper()
	car, err := store.AddCar(context.Background(), &Car{
		Nickname:        "Blue",
		Year:            2019,
		Make:            "Mazda",
		Model:           "MX-5",
		UsageType:       UsageTrack,
		CurrentOdometer: 42000,
	})
	if err != nil {
		t.Fatalf("add car: %v", err)
	}
	return car
}

func TestAddAndGetCar(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	if car.ID == 0 {
		t.Fatal("expected assigned id")
	}

	loaded, err := store.GetCar(context.Background(), car.ID)
	if err != nil {
		t.Fatalf("get car: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected car")
	}
	if loaded.DisplayName() != "Blue (2019 Mazda MX-5)" {
		t.Fatalf("display name = %q", loaded.DisplayName())
	}
	if loaded.UsageType != UsageTrack || loaded.CurrentOdometer != 42000 {
		t.Fatalf("unexpected car %+v", loaded)
	}
	if loaded.CreatedAt.IsZero() || loaded.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}
}

func TestGetCarMissing(t *testing.T) {
	store := newTestStore(t)
	car, err := store.GetCar(context.Background(), 99)
	if err != nil {
		t.Fatalf("get car: %v", err)
	}
	if car != nil {
		t.Fatalf("expected nil, got %+v", car)
	}
}

func TestUpdateCar(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)

	car.CurrentOdometer = 43500
	car.Notes = "new tires soon"
	if err := store.UpdateCar(context.Background(), car); err != nil {
		t.Fatalf("update car: %v", err)
	}

	loaded, err := store.GetCar(context.Background(), car.ID)
	if err != nil {
		t.Fatalf("get car: %v", err)
	}
	if loaded.CurrentOdometer != 43500 || loaded.Notes != "new tires soon" {
		t.Fatalf("unexpected car %+v", loaded)
	}
}

func TestRemoveCarCascades(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	event, err := store.AddEvent(ctx, &MaintenanceEvent{
		CarID:       car.ID,
		ServiceDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		ServiceType: ServiceOilChange,
		Odometer:    41000,
	})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	part, err := store.AddPart(ctx, &CarPart{CarID: car.ID, Category: PartOil, Brand: "Motul"})
	if err != nil {
		t.Fatalf("add part: %v", err)
	}
	if _, err := store.SetInterval(ctx, &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange, IntervalMiles: 5000}); err != nil {
		t.Fatalf("set interval: %v", err)
	}

	removed, err := store.RemoveCar(ctx, car.ID)
	if err != nil {
		t.Fatalf("remove car: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}

	if got, err := store.GetEvent(ctx, event.ID); err != nil || got != nil {
		t.Fatalf("expected cascaded event delete, got %+v err %v", got, err)
	}
	if got, err := store.GetPart(ctx, part.ID); err != nil || got != nil {
		t.Fatalf("expected cascaded part delete, got %+v err %v", got, err)
	}
	if intervals, err := store.ListIntervals(ctx, car.ID); err != nil || len(intervals) != 0 {
		t.Fatalf("expected cascaded interval delete, got %v err %v", intervals, err)
	}
}

func TestAddEventRequiresDate(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	if _, err := store.AddEvent(context.Background(), &MaintenanceEvent{
		CarID:       car.ID,
		ServiceType: ServiceOilChange,
	}); err == nil {
		t.Fatal("expected error for zero service date")
	}
}

func TestEventsForCarNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		if _, err := store.AddEvent(ctx, &MaintenanceEvent{
			CarID:       car.ID,
			ServiceDate: date,
			ServiceType: ServiceOilChange,
		}); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}

	events, err := store.EventsForCar(ctx, car.ID, 2)
	if err != nil {
		t.Fatalf("events for car: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].ServiceDate.After(events[1].ServiceDate) {
		t.Fatalf("expected newest first, got %v then %v", events[0].ServiceDate, events[1].ServiceDate)
	}
}

func TestSetIntervalReplaces(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	if _, err := store.SetInterval(ctx, &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange, IntervalMiles: 5000}); err != nil {
		t.Fatalf("set interval: %v", err)
	}
	if _, err := store.SetInterval(ctx, &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange, IntervalMiles: 7500, IntervalMonths: 12}); err != nil {
		t.Fatalf("replace interval: %v", err)
	}

	intervals, err := store.ListIntervals(ctx, car.ID)
	if err != nil {
		t.Fatalf("list intervals: %v", err)
	}
	if len(intervals) != 1 {
		t.Fatalf("expected single interval per service type, got %d", len(intervals))
	}
	if intervals[0].IntervalMiles != 7500 || intervals[0].IntervalMonths != 12 {
		t.Fatalf("unexpected interval %+v", intervals[0])
	}
}

func TestSetIntervalRequiresDimension(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	if _, err := store.SetInterval(context.Background(), &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange}); err == nil {
		t.Fatal("expected error when neither miles nor months set")
	}
}

func TestAddEventTouchesInterval(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	if _, err := store.SetInterval(ctx, &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange, IntervalMiles: 5000}); err != nil {
		t.Fatalf("set interval: %v", err)
	}
	serviceDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.AddEvent(ctx, &MaintenanceEvent{
		CarID:       car.ID,
		ServiceDate: serviceDate,
		ServiceType: ServiceOilChange,
		Odometer:    40000,
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	interval, err := store.GetInterval(ctx, car.ID, ServiceOilChange)
	if err != nil {
		t.Fatalf("get interval: %v", err)
	}
	if interval == nil {
		t.Fatal("expected interval")
	}
	if !interval.LastServiceDate.Equal(serviceDate) || interval.LastServiceOdometer != 40000 {
		t.Fatalf("interval not touched: %+v", interval)
	}
}

func TestDueServices(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	if _, err := store.SetInterval(ctx, &MaintenanceInterval{CarID: car.ID, ServiceType: ServiceOilChange, IntervalMiles: 5000}); err != nil {
		t.Fatalf("set interval: %v", err)
	}
	// Serviced 12000 miles ago against a 5000 mile interval.
	if _, err := store.AddEvent(ctx, &MaintenanceEvent{
		CarID:       car.ID,
		ServiceDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ServiceType: ServiceOilChange,
		Odometer:    30000,
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	due, err := store.DueServices(ctx, car.ID, DueThresholds{Miles: 500, Months: 1})
	if err != nil {
		t.Fatalf("due services: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due entry, got %d", len(due))
	}
	if !due[0].Due || due[0].MilesUntilDue != -7000 {
		t.Fatalf("unexpected due entry %+v", due[0])
	}
}

func TestCostSummaryAndPerMile(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	events := []*MaintenanceEvent{
		{CarID: car.ID, ServiceDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), ServiceType: ServiceOilChange, Odometer: 40000, Cost: 80},
		{CarID: car.ID, ServiceDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), ServiceType: ServiceOilChange, Odometer: 41000, Cost: 90},
		{CarID: car.ID, ServiceDate: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), ServiceType: ServiceTires, Odometer: 41500, Cost: 600},
	}
	for _, event := range events {
		if _, err := store.AddEvent(ctx, event); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}

	summary, err := store.CostSummary(ctx, car.ID)
	if err != nil {
		t.Fatalf("cost summary: %v", err)
	}
	if len(summary) != 1 {
		t.Fatalf("expected 1 car summary, got %d", len(summary))
	}
	if summary[0].Total != 770 || summary[0].Count != 3 {
		t.Fatalf("unexpected summary %+v", summary[0])
	}
	var oilTotal float64
	for _, byType := range summary[0].ByType {
		if byType.ServiceType == ServiceOilChange {
			oilTotal = byType.Total
		}
	}
	if oilTotal != 170 {
		t.Fatalf("oil total = %v", oilTotal)
	}

	perMile, err := store.CostPerMile(ctx, car.ID)
	if err != nil {
		t.Fatalf("cost per mile: %v", err)
	}
	// 770 dollars over 42000-40000 miles.
	if perMile.TotalMiles != 2000 {
		t.Fatalf("total miles = %d", perMile.TotalMiles)
	}
	if perMile.CostPerMile != 770.0/2000.0 {
		t.Fatalf("cost per mile = %v", perMile.CostPerMile)
	}
}

func TestSnapshot(t *testing.T) {
	store := newTestStore(t)
	car := addTestCar(t, store)
	ctx := context.Background()

	if _, err := store.AddEvent(ctx, &MaintenanceEvent{
		CarID:       car.ID,
		ServiceDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		ServiceType: ServiceBrakes,
	}); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, err := store.AddPart(ctx, &CarPart{CarID: car.ID, Category: PartBrakePads, Brand: "Hawk"}); err != nil {
		t.Fatalf("add part: %v", err)
	}

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Cars) != 1 || len(snapshot.Events) != 1 || len(snapshot.Parts) != 1 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	if len(snapshot.EventsFor(car.ID)) != 1 || len(snapshot.PartsFor(car.ID)) != 1 {
		t.Fatal("expected per-car filters to match")
	}
	if len(snapshot.EventsFor(car.ID + 1)) != 0 {
		t.Fatal("expected no events for unknown car")
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garage.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	car := addTestCar(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.GetCar(context.Background(), car.ID)
	if err != nil {
		t.Fatalf("get car: %v", err)
	}
	if loaded == nil || loaded.Nickname != "Blue" {
		t.Fatalf("expected persisted car, got %+v", loaded)
	}
}
