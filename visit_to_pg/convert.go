package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"visitpivot/cohort"
	"visitpivot/db"
	"visitpivot/table"
)

// wideRowsFromTable converts a wide CSV table into COPY-ready rows.
// Visit indexes must be contiguous from 1, since they become column
// positions in the database schema.
func wideRowsFromTable(t *table.Table, visits []int) ([]db.WideRow, error) {
	for i, v := range visits {
		if v != i+1 {
			return nil, fmt.Errorf("visit indexes must be contiguous from 1, got %v", visits)
		}
	}
	ki, ok := t.ColumnIndex(cohort.ColPatientID)
	if !ok {
		return nil, fmt.Errorf("column %q not found", cohort.ColPatientID)
	}

	type visitCols struct {
		date, med, sym, adv int
	}
	cols := make([]visitCols, len(visits))
	for i, v := range visits {
		var vc visitCols
		for _, bind := range []struct {
			field string
			idx   *int
		}{
			{cohort.ColVisitDate, &vc.date},
			{cohort.ColOnMedication, &vc.med},
			{cohort.ColSymptom, &vc.sym},
			{cohort.ColAdverseEvent, &vc.adv},
		} {
			name := fmt.Sprintf("%s_%d", bind.field, v)
			j, ok := t.ColumnIndex(name)
			if !ok {
				return nil, fmt.Errorf("column %q not found", name)
			}
			*bind.idx = j
		}
		cols[i] = vc
	}

	rows := make([]db.WideRow, len(t.Rows))
	for r, row := range t.Rows {
		wr := db.WideRow{
			PatientID: row[ki],
			Visits:    make([]db.WideVisit, len(visits)),
		}
		for i, vc := range cols {
			date, err := parseDate(row[vc.date])
			if err != nil {
				return nil, fmt.Errorf("row %d visit %d: %w", r+1, visits[i], err)
			}
			med, err := strconv.ParseBool(row[vc.med])
			if err != nil {
				return nil, fmt.Errorf("row %d visit %d: on_medication: %w", r+1, visits[i], err)
			}
			adv, err := strconv.ParseBool(row[vc.adv])
			if err != nil {
				return nil, fmt.Errorf("row %d visit %d: adverse_event: %w", r+1, visits[i], err)
			}
			wr.Visits[i] = db.WideVisit{
				VisitDate:    pgtype.Date{Time: date, Valid: true},
				OnMedication: med,
				Symptom:      row[vc.sym],
				AdverseEvent: adv,
			}
		}
		rows[r] = wr
	}
	return rows, nil
}

// longTableFromRows converts UNION ALL query results back into the long
// table shape, so the SQL pivot can be compared cell-for-cell with the
// in-memory one.
func longTableFromRows(rows []db.LongRow) (*table.Table, error) {
	cols := append([]string{cohort.ColPatientID, table.VisitColumn}, cohort.VisitFields...)
	t, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if !r.VisitDate.Valid {
			return nil, fmt.Errorf("patient %s visit %d: null visit_date", r.PatientID, r.Visit)
		}
		if err := t.AppendRow(r.PatientID, strconv.Itoa(int(r.Visit)),
			r.VisitDate.Time.Format("2006-01-02"),
			strconv.FormatBool(r.OnMedication), r.Symptom,
			strconv.FormatBool(r.AdverseEvent)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		date, err = time.Parse("01/02/2006", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad date %q", s)
		}
	}
	return date, nil
}
