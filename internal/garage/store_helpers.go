package garage

import (
	"database/sql"
	"errors"
	"time"
)

const dateFormat = "2006-01-02"

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableDate(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(dateFormat)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func parseDateString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(dateFormat, value); err == nil {
		return t, nil
	}
	return parseTimeString(value)
}

type rowScanner interface{ Scan(dest ...any) error }

const carColumns = "id, nickname, year, make, model, trim, vin, usage_type, current_odometer, notes, created_at, updated_at"

func scanCar(scanner rowScanner) (*Car, error) {
	var (
		id         int64
		nickname   sql.NullString
		year       int
		carMake    string
		model      string
		trim       sql.NullString
		vin        sql.NullString
		usageType  string
		odometer   sql.NullInt64
		notes      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&nickname,
		&year,
		&carMake,
		&model,
		&trim,
		&vin,
		&usageType,
		&odometer,
		&notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	car := &Car{
		ID:              id,
		Nickname:        nickname.String,
		Year:            year,
		Make:            carMake,
		Model:           model,
		Trim:            trim.String,
		VIN:             vin.String,
		UsageType:       UsageType(usageType),
		CurrentOdometer: odometer.Int64,
		Notes:           notes.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		car.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		car.UpdatedAt = updated
	}
	return car, nil
}

const eventColumns = "id, car_id, service_date, odometer, service_type, description, parts, cost, location, created_at"

func scanEvent(scanner rowScanner) (*MaintenanceEvent, error) {
	var (
		id          int64
		carID       int64
		dateRaw     string
		odometer    sql.NullInt64
		serviceType string
		description sql.NullString
		parts       sql.NullString
		cost        sql.NullFloat64
		location    sql.NullString
		createdRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&carID,
		&dateRaw,
		&odometer,
		&serviceType,
		&description,
		&parts,
		&cost,
		&location,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	event := &MaintenanceEvent{
		ID:          id,
		CarID:       carID,
		Odometer:    odometer.Int64,
		ServiceType: ServiceType(serviceType),
		Description: description.String,
		Parts:       parts.String,
		Cost:        cost.Float64,
		Location:    location.String,
	}
	if date, err := parseDateString(dateRaw); err == nil {
		event.ServiceDate = date
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		event.CreatedAt = created
	}
	return event, nil
}

const partColumns = "id, car_id, part_category, brand, part_number, size_spec, notes, created_at, updated_at"

func scanPart(scanner rowScanner) (*CarPart, error) {
	var (
		id         int64
		carID      int64
		category   string
		brand      sql.NullString
		partNumber sql.NullString
		sizeSpec   sql.NullString
		notes      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&carID,
		&category,
		&brand,
		&partNumber,
		&sizeSpec,
		&notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	part := &CarPart{
		ID:         id,
		CarID:      carID,
		Category:   PartCategory(category),
		Brand:      brand.String,
		PartNumber: partNumber.String,
		SizeSpec:   sizeSpec.String,
		Notes:      notes.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		part.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		part.UpdatedAt = updated
	}
	return part, nil
}

const intervalColumns = "id, car_id, service_type, interval_miles, interval_months, last_service_date, last_service_odometer, notes, created_at, updated_at"

func scanInterval(scanner rowScanner) (*MaintenanceInterval, error) {
	var (
		id           int64
		carID        int64
		serviceType  string
		miles        sql.NullInt64
		months       sql.NullInt64
		lastDateRaw  sql.NullString
		lastOdometer sql.NullInt64
		notes        sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&carID,
		&serviceType,
		&miles,
		&months,
		&lastDateRaw,
		&lastOdometer,
		&notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	interval := &MaintenanceInterval{
		ID:                  id,
		CarID:               carID,
		ServiceType:         ServiceType(serviceType),
		IntervalMiles:       miles.Int64,
		IntervalMonths:      int(months.Int64),
		LastServiceOdometer: lastOdometer.Int64,
		Notes:               notes.String,
	}
	if lastDateRaw.Valid {
		if date, err := parseDateString(lastDateRaw.String); err == nil {
			interval.LastServiceDate = date
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		interval.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		interval.UpdatedAt = updated
	}
	return interval, nil
}
