package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddCar inserts a new vehicle and returns it with its assigned ID.
func (s *Store) AddCar(ctx context.Context, car *Car) (*Car, error) {
	if car == nil {
		return nil, errors.New("car is nil")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO cars (
            nickname, year, make, model, trim, vin, usage_type,
            current_odometer, notes, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(car.Nickname),
		car.Year,
		car.Make,
		car.Model,
		nullableString(car.Trim),
		nullableString(car.VIN),
		string(car.UsageType),
		nullableInt(car.CurrentOdometer),
		nullableString(car.Notes),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetCar(ctx, id)
}

// GetCar fetches a vehicle by identifier. Returns nil when not found.
func (s *Store) GetCar(ctx context.Context, id int64) (*Car, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = ?`, id)
	car, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}
	return car, nil
}

// ListCars returns all vehicles ordered by identifier.
func (s *Store) ListCars(ctx context.Context) ([]*Car, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// UpdateCar persists changes to an existing vehicle.
func (s *Store) UpdateCar(ctx context.Context, car *Car) error {
	if car == nil {
		return errors.New("car is nil")
	}
	car.UpdatedAt = time.Now().UTC()
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE cars
         SET nickname = ?, year = ?, make = ?, model = ?, trim = ?,
             vin = ?, usage_type = ?, current_odometer = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(car.Nickname),
		car.Year,
		car.Make,
		car.Model,
		nullableString(car.Trim),
		nullableString(car.VIN),
		string(car.UsageType),
		nullableInt(car.CurrentOdometer),
		nullableString(car.Notes),
		car.UpdatedAt.Format(time.RFC3339Nano),
		car.ID,
	); err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	return nil
}

// RemoveCar deletes a vehicle along with its events, parts, and intervals.
func (s *Store) RemoveCar(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete car: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Snapshot loads the garage data used as advisor context.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot

	cars, err := s.ListCars(ctx)
	if err != nil {
		return snapshot, err
	}
	for _, car := range cars {
		snapshot.Cars = append(snapshot.Cars, *car)
	}

	events, err := s.ListEvents(ctx, 0)
	if err != nil {
		return snapshot, err
	}
	for _, event := range events {
		snapshot.Events = append(snapshot.Events, *event)
	}

	for _, car := range cars {
		parts, err := s.ListParts(ctx, car.ID)
		if err != nil {
			return snapshot, err
		}
		for _, part := range parts {
			snapshot.Parts = append(snapshot.Parts, *part)
		}
	}

	return snapshot, nil
}
