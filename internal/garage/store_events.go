package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddEvent inserts a maintenance event and returns it with its assigned ID.
// When the event's service type has a configured interval for the car, the
// interval's last-service tracking is advanced as well.
func (s *Store) AddEvent(ctx context.Context, event *MaintenanceEvent) (*MaintenanceEvent, error) {
	if event == nil {
		return nil, errors.New("event is nil")
	}
	if event.ServiceDate.IsZero() {
		return nil, errors.New("service date required")
	}
	now := time.Now().UTC()

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO maintenance_events (
            car_id, service_date, odometer, service_type, description,
            parts, cost, location, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.CarID,
		event.ServiceDate.UTC().Format(dateFormat),
		nullableInt(event.Odometer),
		string(event.ServiceType),
		nullableString(event.Description),
		nullableString(event.Parts),
		nullableFloat(event.Cost),
		nullableString(event.Location),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := s.touchInterval(ctx, event.CarID, event.ServiceType, event.ServiceDate, event.Odometer); err != nil {
		return nil, err
	}

	return s.GetEvent(ctx, id)
}

// GetEvent fetches a maintenance event by identifier. Returns nil when not found.
func (s *Store) GetEvent(ctx context.Context, id int64) (*MaintenanceEvent, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM maintenance_events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// EventsForCar returns maintenance events for one vehicle, newest first.
// A zero limit returns all events.
func (s *Store) EventsForCar(ctx context.Context, carID int64, limit int) ([]*MaintenanceEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM maintenance_events WHERE car_id = ? ORDER BY service_date DESC, id DESC`
	args := []any{carID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEvents(ctx, query, args...)
}

// ListEvents returns maintenance events across all vehicles, newest first.
// A zero limit returns all events.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]*MaintenanceEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM maintenance_events ORDER BY service_date DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEvents(ctx, query, args...)
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]*MaintenanceEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*MaintenanceEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// UpdateEvent persists changes to an existing maintenance event.
func (s *Store) UpdateEvent(ctx context.Context, event *MaintenanceEvent) error {
	if event == nil {
		return errors.New("event is nil")
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE maintenance_events
         SET service_date = ?, odometer = ?, service_type = ?, description = ?,
             parts = ?, cost = ?, location = ?
         WHERE id = ?`,
		event.ServiceDate.UTC().Format(dateFormat),
		nullableInt(event.Odometer),
		string(event.ServiceType),
		nullableString(event.Description),
		nullableString(event.Parts),
		nullableFloat(event.Cost),
		nullableString(event.Location),
		event.ID,
	); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// DeleteEvent removes a maintenance event by identifier.
func (s *Store) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM maintenance_events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
