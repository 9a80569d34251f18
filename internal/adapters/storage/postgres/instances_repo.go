package postgres

import (
	"context"
	"database/sql"

	"event-publisher/internal/domain/instances"
)

type InstancesRepo struct {
	db *sql.DB
}

func NewInstancesRepo(db *sql.DB) *InstancesRepo {
	return &InstancesRepo{db: db}
}

// Replace swaps the whole materialized set in one transaction, so readers
// never observe a half-rebuilt list.
func (r *InstancesRepo) Replace(ctx context.Context, rows []instances.InstanceRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_instances`); err != nil {
		return err
	}

	for i, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event_instances (
				ord, record_id,
				title, description, audience, space,
				start_at, end_at,
				facility_series_id, public_series_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			i,
			row.RecordID,
			row.Title,
			row.Description,
			row.Audience,
			row.Space,
			row.Start,
			row.End,
			row.FacilitySeriesID,
			row.PublicSeriesID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *InstancesRepo) List(ctx context.Context) ([]instances.InstanceRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			record_id,
			title, description, audience, space,
			start_at, end_at,
			facility_series_id, public_series_id
		FROM event_instances
		ORDER BY ord
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]instances.InstanceRow, 0)
	for rows.Next() {
		var row instances.InstanceRow
		err := rows.Scan(
			&row.RecordID,
			&row.Title, &row.Description, &row.Audience, &row.Space,
			&row.Start, &row.End,
			&row.FacilitySeriesID, &row.PublicSeriesID,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
