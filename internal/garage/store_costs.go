package garage

import (
	"context"
	"database/sql"
	"fmt"
)

const costAggregateQuery = `
SELECT
    car_id,
    service_type,
    COUNT(*) AS service_count,
    SUM(cost) AS total_cost,
    AVG(cost) AS avg_cost,
    MAX(cost) AS max_cost,
    MIN(cost) AS min_cost
FROM maintenance_events
WHERE cost IS NOT NULL`

// CostSummary aggregates maintenance spend grouped by car and service type.
// A zero carID aggregates every vehicle.
func (s *Store) CostSummary(ctx context.Context, carID int64) ([]CarCosts, error) {
	query := costAggregateQuery
	var args []any
	if carID > 0 {
		query += ` AND car_id = ?`
		args = append(args, carID)
	}
	query += ` GROUP BY car_id, service_type ORDER BY car_id, service_type`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cost summary: %w", err)
	}
	defer rows.Close()

	var (
		result []CarCosts
		byCar  = map[int64]int{}
	)
	for rows.Next() {
		var (
			rowCarID    int64
			serviceType string
			count       int
			total       sql.NullFloat64
			average     sql.NullFloat64
			maxCost     sql.NullFloat64
			minCost     sql.NullFloat64
		)
		if err := rows.Scan(&rowCarID, &serviceType, &count, &total, &average, &maxCost, &minCost); err != nil {
			return nil, fmt.Errorf("scan cost row: %w", err)
		}

		idx, ok := byCar[rowCarID]
		if !ok {
			idx = len(result)
			byCar[rowCarID] = idx
			result = append(result, CarCosts{CarID: rowCarID})
		}

		result[idx].ByType = append(result[idx].ByType, ServiceCost{
			ServiceType: ServiceType(serviceType),
			Count:       count,
			Total:       total.Float64,
			Average:     average.Float64,
			Max:         maxCost.Float64,
			Min:         minCost.Float64,
		})
		result[idx].Total += total.Float64
		result[idx].Count += count
	}
	return result, rows.Err()
}

// CostPerMile estimates maintenance spend per mile for one vehicle. The
// starting odometer is the earliest recorded service odometer, or zero when
// no event carries one.
func (s *Store) CostPerMile(ctx context.Context, carID int64) (CostPerMile, error) {
	var result CostPerMile

	car, err := s.GetCar(ctx, carID)
	if err != nil {
		return result, err
	}
	if car == nil || car.CurrentOdometer == 0 {
		return result, nil
	}

	var totalCost sql.NullFloat64
	if err := s.db.QueryRowContext(
		ctx,
		`SELECT SUM(cost) FROM maintenance_events WHERE car_id = ? AND cost IS NOT NULL`,
		carID,
	).Scan(&totalCost); err != nil {
		return result, fmt.Errorf("total cost: %w", err)
	}

	var minOdometer sql.NullInt64
	if err := s.db.QueryRowContext(
		ctx,
		`SELECT MIN(odometer) FROM maintenance_events WHERE car_id = ? AND odometer IS NOT NULL`,
		carID,
	).Scan(&minOdometer); err != nil {
		return result, fmt.Errorf("min odometer: %w", err)
	}

	result.TotalCost = totalCost.Float64
	result.TotalMiles = car.CurrentOdometer - minOdometer.Int64
	if result.TotalMiles > 0 {
		result.CostPerMile = result.TotalCost / float64(result.TotalMiles)
	}
	return result, nil
}
