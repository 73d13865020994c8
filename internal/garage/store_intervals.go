package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SetInterval creates or replaces the interval for a car/service-type pair.
func (s *Store) SetInterval(ctx context.Context, interval *MaintenanceInterval) (*MaintenanceInterval, error) {
	if interval == nil {
		return nil, errors.New("interval is nil")
	}
	if interval.IntervalMiles <= 0 && interval.IntervalMonths <= 0 {
		return nil, errors.New("interval requires miles or months")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	if err := s.execWithoutResultRetry(
		ctx,
		`REPLACE INTO maintenance_intervals (
            car_id, service_type, interval_miles, interval_months,
            last_service_date, last_service_odometer, notes,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		interval.CarID,
		string(interval.ServiceType),
		nullableInt(interval.IntervalMiles),
		nullableInt(int64(interval.IntervalMonths)),
		nullableDate(interval.LastServiceDate),
		nullableInt(interval.LastServiceOdometer),
		nullableString(interval.Notes),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("set interval: %w", err)
	}

	return s.GetInterval(ctx, interval.CarID, interval.ServiceType)
}

// GetInterval fetches one interval by car and service type. Returns nil when not found.
func (s *Store) GetInterval(ctx context.Context, carID int64, serviceType ServiceType) (*MaintenanceInterval, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+intervalColumns+` FROM maintenance_intervals WHERE car_id = ? AND service_type = ?`,
		carID,
		string(serviceType),
	)
	interval, err := scanInterval(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interval: %w", err)
	}
	return interval, nil
}

// ListIntervals returns all intervals for one vehicle ordered by service type.
func (s *Store) ListIntervals(ctx context.Context, carID int64) ([]*MaintenanceInterval, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+intervalColumns+` FROM maintenance_intervals WHERE car_id = ? ORDER BY service_type`,
		carID,
	)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}
	defer rows.Close()

	var intervals []*MaintenanceInterval
	for rows.Next() {
		interval, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, rows.Err()
}

// touchInterval advances last-service tracking after a matching event is logged.
func (s *Store) touchInterval(ctx context.Context, carID int64, serviceType ServiceType, serviceDate time.Time, odometer int64) error {
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE maintenance_intervals
         SET last_service_date = ?, last_service_odometer = ?, updated_at = ?
         WHERE car_id = ? AND service_type = ?`,
		serviceDate.UTC().Format(dateFormat),
		nullableInt(odometer),
		time.Now().UTC().Format(time.RFC3339Nano),
		carID,
		string(serviceType),
	); err != nil {
		return fmt.Errorf("touch interval: %w", err)
	}
	return nil
}

// DueThresholds configures how early a service counts as "due soon".
type DueThresholds struct {
	Miles  int64
	Months int
}

// DueServices evaluates every interval for a car against its current odometer
// and today's date. Intervals with no recorded last service report no status
// for that dimension.
func (s *Store) DueServices(ctx context.Context, carID int64, thresholds DueThresholds) ([]DueService, error) {
	car, err := s.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, nil
	}

	intervals, err := s.ListIntervals(ctx, carID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC()
	var due []DueService
	for _, interval := range intervals {
		due = append(due, evaluateInterval(car, interval, today, thresholds))
	}
	return due, nil
}

func evaluateInterval(car *Car, interval *MaintenanceInterval, today time.Time, thresholds DueThresholds) DueService {
	result := DueService{
		ServiceType:    interval.ServiceType,
		IntervalMiles:  interval.IntervalMiles,
		IntervalMonths: interval.IntervalMonths,
	}

	if interval.IntervalMiles > 0 && car.CurrentOdometer > 0 && interval.LastServiceOdometer > 0 {
		milesSince := car.CurrentOdometer - interval.LastServiceOdometer
		milesUntil := interval.IntervalMiles - milesSince
		result.HasMilesCheck = true
		result.MilesUntilDue = milesUntil
		switch {
		case milesSince >= interval.IntervalMiles:
			result.Due = true
			result.Reason = fmt.Sprintf("overdue by %d miles", milesSince-interval.IntervalMiles)
		case milesUntil <= thresholds.Miles:
			result.Due = true
			result.Reason = fmt.Sprintf("due soon (%d miles remaining)", milesUntil)
		}
	}

	if interval.IntervalMonths > 0 && !interval.LastServiceDate.IsZero() {
		monthsSince := monthsBetween(interval.LastServiceDate, today)
		monthsUntil := interval.IntervalMonths - monthsSince
		result.HasMonthsCheck = true
		result.MonthsUntilDue = monthsUntil
		switch {
		case monthsSince >= interval.IntervalMonths:
			result.Due = true
			reason := fmt.Sprintf("overdue by %d months", monthsSince-interval.IntervalMonths)
			if result.Reason != "" {
				result.Reason += " and " + reason
			} else {
				result.Reason = reason
			}
		case monthsUntil <= thresholds.Months && !result.Due:
			result.Due = true
			result.Reason = fmt.Sprintf("due soon (%d month(s) remaining)", monthsUntil)
		}
	}

	return result
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
