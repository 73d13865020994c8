package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddPart inserts a part record and returns it with its assigned ID.
func (s *Store) AddPart(ctx context.Context, part *CarPart) (*CarPart, error) {
	if part == nil {
		return nil, errors.New("part is nil")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO car_parts (
            car_id, part_category, brand, part_number, size_spec, notes,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		part.CarID,
		string(part.Category),
		nullableString(part.Brand),
		nullableString(part.PartNumber),
		nullableString(part.SizeSpec),
		nullableString(part.Notes),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert part: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetPart(ctx, id)
}

// GetPart fetches a part by identifier. Returns nil when not found.
func (s *Store) GetPart(ctx context.Context, id int64) (*CarPart, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+partColumns+` FROM car_parts WHERE id = ?`, id)
	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}
	return part, nil
}

// ListParts returns parts ordered by category. A zero carID lists every
// vehicle's parts.
func (s *Store) ListParts(ctx context.Context, carID int64) ([]*CarPart, error) {
	query := `SELECT ` + partColumns + ` FROM car_parts ORDER BY car_id, part_category, id`
	args := []any{}
	if carID > 0 {
		query = `SELECT ` + partColumns + ` FROM car_parts WHERE car_id = ? ORDER BY part_category, id`
		args = append(args, carID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []*CarPart
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// UpdatePart persists changes to an existing part record.
func (s *Store) UpdatePart(ctx context.Context, part *CarPart) error {
	if part == nil {
		return errors.New("part is nil")
	}
	part.UpdatedAt = time.Now().UTC()
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE car_parts
         SET part_category = ?, brand = ?, part_number = ?, size_spec = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		string(part.Category),
		nullableString(part.Brand),
		nullableString(part.PartNumber),
		nullableString(part.SizeSpec),
		nullableString(part.Notes),
		part.UpdatedAt.Format(time.RFC3339Nano),
		part.ID,
	); err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// DeletePart removes a part record by identifier.
func (s *Store) DeletePart(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM car_parts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete part: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
