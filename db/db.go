// Package db is the PostgreSQL layer for the visit cohort: a wide
// visits table bulk-loaded with COPY, and the long shape derived in SQL
// with UNION ALL rather than in memory.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Queries wraps a connection, pool, or transaction.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WideVisit holds one visit's fields within a wide row.
type WideVisit struct {
	VisitDate    pgtype.Date
	OnMedication bool
	Symptom      string
	AdverseEvent bool
}

// WideRow is one patient's row in visits_wide: the key plus one
// WideVisit per visit index, in order.
type WideRow struct {
	PatientID string
	Visits    []WideVisit
}

// LongRow is one patient-visit pair as returned by the UNION ALL query.
type LongRow struct {
	PatientID    string
	Visit        int32
	VisitDate    pgtype.Date
	OnMedication bool
	Symptom      string
	AdverseEvent bool
}
