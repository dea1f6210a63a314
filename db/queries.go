package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateSchema creates the wide visits table for the given visit count.
func (q *Queries) CreateSchema(ctx context.Context, visits int32) error {
	if visits < 1 {
		return fmt.Errorf("visit count %d, must be >= 1", visits)
	}
	if _, err := q.db.Exec(ctx, wideTableDDL(visits)); err != nil {
		return fmt.Errorf("create %s: %w", WideTableName, err)
	}
	return nil
}

// DropSchema removes the wide visits table.
func (q *Queries) DropSchema(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, "DROP TABLE IF EXISTS "+WideTableName); err != nil {
		return fmt.Errorf("drop %s: %w", WideTableName, err)
	}
	return nil
}

// InsertWideRows bulk-loads wide rows with COPY. Every row must carry
// exactly one WideVisit per visit index.
func (q *Queries) InsertWideRows(ctx context.Context, rows []WideRow, visits int32) (int64, error) {
	for i, r := range rows {
		if int32(len(r.Visits)) != visits {
			return 0, fmt.Errorf("row %d has %d visits, table has %d", i, len(r.Visits), visits)
		}
	}
	copied, err := q.db.CopyFrom(ctx,
		pgx.Identifier{WideTableName},
		wideColumns(visits),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			vals := make([]any, 0, 1+4*len(r.Visits))
			vals = append(vals, r.PatientID)
			for _, v := range r.Visits {
				vals = append(vals, v.VisitDate, v.OnMedication, v.Symptom, v.AdverseEvent)
			}
			return vals, nil
		}),
	)
	if err != nil {
		return copied, fmt.Errorf("copy %s: %w", WideTableName, err)
	}
	return copied, nil
}

// LongVisits runs the UNION ALL pivot and returns the long rows ordered
// by (patient_id, visit).
func (q *Queries) LongVisits(ctx context.Context, visits int32) ([]LongRow, error) {
	if visits < 1 {
		return nil, fmt.Errorf("visit count %d, must be >= 1", visits)
	}
	rows, err := q.db.Query(ctx, longUnionSQL(visits))
	if err != nil {
		return nil, fmt.Errorf("query long visits: %w", err)
	}
	defer rows.Close()

	var out []LongRow
	for rows.Next() {
		var r LongRow
		if err := rows.Scan(&r.PatientID, &r.Visit, &r.VisitDate,
			&r.OnMedication, &r.Symptom, &r.AdverseEvent); err != nil {
			return nil, fmt.Errorf("scan long row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read long rows: %w", err)
	}
	return out, nil
}

// CountWide returns the number of patients loaded.
func (q *Queries) CountWide(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+WideTableName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", WideTableName, err)
	}
	return n, nil
}

// CountLong returns the number of rows the pivot produces, which is the
// patient count times the visit count.
func (q *Queries) CountLong(ctx context.Context, visits int32) (int64, error) {
	if visits < 1 {
		return 0, fmt.Errorf("visit count %d, must be >= 1", visits)
	}
	var n int64
	if err := q.db.QueryRow(ctx, longCountSQL(visits)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count long visits: %w", err)
	}
	return n, nil
}
