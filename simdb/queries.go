package simdb

import (
	"context"
	"database/sql"
	"fmt"
)

// Queries holds the prepared statement surface of the database
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// ReplaceReservoirs replaces the reservoir definitions with those of the
// active dataset. Called on every dataset (re)load.
func (q *Queries) ReplaceReservoirs(ctx context.Context, reservoirs []Reservoir) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservoirs;`); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error clearing reservoirs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reservoirs (reservoir_id, name, capacity, horizon_weeks)
		VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, r := range reservoirs {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, r.Capacity, r.HorizonWeeks); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting reservoir: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// GetReservoir returns one reservoir definition
func (q *Queries) GetReservoir(ctx context.Context, id string) (Reservoir, error) {
	var r Reservoir
	err := q.db.QueryRowContext(ctx, `
		SELECT reservoir_id, name, capacity, horizon_weeks
		FROM reservoirs WHERE reservoir_id = ?;
	`, id).Scan(&r.ID, &r.Name, &r.Capacity, &r.HorizonWeeks)
	return r, err
}

// ListReservoirs returns all reservoir definitions
func (q *Queries) ListReservoirs(ctx context.Context) ([]Reservoir, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT reservoir_id, name, capacity, horizon_weeks
		FROM reservoirs ORDER BY rowid;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var reservoirs []Reservoir
	for rows.Next() {
		var r Reservoir
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity, &r.HorizonWeeks); err != nil {
			return nil, err
		}
		reservoirs = append(reservoirs, r)
	}
	return reservoirs, rows.Err()
}

// InsertRun stores a run summary together with its weekly records
func (q *Queries) InsertRun(ctx context.Context, run Run, weeks []RunWeek) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, dataset, weeks, outlet_release, unfulfilled_demand, created_at)
		VALUES (?, ?, ?, ?, ?, ?);
	`, run.ID, run.Dataset, run.Weeks, run.OutletRelease, run.UnfulfilledDemand, run.CreatedAt)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_weeks (run_id, reservoir_id, week, stored_volume, release, unfulfilled_demand)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, w := range weeks {
		_, err := stmt.ExecContext(ctx, w.RunID, w.ReservoirID, w.Week,
			w.StoredVolume, w.Release, w.UnfulfilledDemand)
		if err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting run week: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// GetRun returns one run summary
func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	var r Run
	err := q.db.QueryRowContext(ctx, `
		SELECT run_id, dataset, weeks, outlet_release, unfulfilled_demand, created_at
		FROM runs WHERE run_id = ?;
	`, id).Scan(&r.ID, &r.Dataset, &r.Weeks, &r.OutletRelease, &r.UnfulfilledDemand, &r.CreatedAt)
	return r, err
}

// ListRuns returns the most recent runs, newest first
func (q *Queries) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT run_id, dataset, weeks, outlet_release, unfulfilled_demand, created_at
		FROM runs ORDER BY created_at DESC, run_id LIMIT ?;
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Weeks, &r.OutletRelease, &r.UnfulfilledDemand, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetStorageSeries returns the stored-volume series of one reservoir in one
// run, ordered by week. Week 0 (the initial condition) is included.
func (q *Queries) GetStorageSeries(ctx context.Context, runID, reservoirID string) ([]float64, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT stored_volume FROM run_weeks
		WHERE run_id = ? AND reservoir_id = ?
		ORDER BY week;
	`, runID, reservoirID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var series []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		series = append(series, v)
	}
	return series, rows.Err()
}

// GetRunWeekTotals aggregates a run week by week: total unfulfilled demand
// across the cascade and the release of the outlet reservoir.
func (q *Queries) GetRunWeekTotals(ctx context.Context, runID, outletReservoirID string) ([]WeekTotal, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT week,
		       MAX(CASE WHEN reservoir_id = ? THEN release ELSE 0 END),
		       SUM(unfulfilled_demand)
		FROM run_weeks
		WHERE run_id = ? AND week >= 1
		GROUP BY week
		ORDER BY week;
	`, outletReservoirID, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var totals []WeekTotal
	for rows.Next() {
		var t WeekTotal
		if err := rows.Scan(&t.Week, &t.OutletRelease, &t.UnfulfilledDemand); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
