package cohort

import (
	"fmt"
	"strconv"

	"visitpivot/table"
)

// Column names shared by the table and database representations.
const (
	ColPatientID    = "patient_id"
	ColVisitDate    = "visit_date"
	ColOnMedication = "on_medication"
	ColSymptom      = "symptom"
	ColAdverseEvent = "adverse_event"
)

// VisitFields lists the per-visit columns in table order.
var VisitFields = []string{ColVisitDate, ColOnMedication, ColSymptom, ColAdverseEvent}

// VisitTable builds the single-visit table (key plus unsuffixed visit
// fields) from records that must all belong to the same visit index.
func VisitTable(records []VisitRecord) (*table.Table, error) {
	t, err := table.New(append([]string{ColPatientID}, VisitFields...)...)
	if err != nil {
		return nil, err
	}
	for i, r := range records {
		if r.Visit != records[0].Visit {
			return nil, fmt.Errorf("record %d is visit %d, table is visit %d", i, r.Visit, records[0].Visit)
		}
		if err := t.AppendRow(r.PatientID, r.VisitDate,
			strconv.FormatBool(r.OnMedication), r.Symptom,
			strconv.FormatBool(r.AdverseEvent)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LongTable builds the long shape directly from visit records.
func LongTable(records []VisitRecord) (*table.Table, error) {
	cols := append([]string{ColPatientID, table.VisitColumn}, VisitFields...)
	t, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := t.AppendRow(r.PatientID, strconv.Itoa(int(r.Visit)), r.VisitDate,
			strconv.FormatBool(r.OnMedication), r.Symptom,
			strconv.FormatBool(r.AdverseEvent)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WideTable builds the wide shape: the per-visit tables are mapped out
// of the record set and folded together with a join on the patient key.
func WideTable(records []VisitRecord, visits int32) (*table.Table, error) {
	byVisit := make(map[int32][]VisitRecord, visits)
	for _, r := range records {
		if r.Visit < 1 || r.Visit > visits {
			return nil, fmt.Errorf("record for patient %s has visit %d, expected 1-%d", r.PatientID, r.Visit, visits)
		}
		byVisit[r.Visit] = append(byVisit[r.Visit], r)
	}

	indexes := make([]int32, visits)
	for i := range indexes {
		indexes[i] = int32(i + 1)
	}
	perVisit, err := table.TryMap(indexes, func(v int32) (*table.Table, error) {
		return VisitTable(byVisit[v])
	})
	if err != nil {
		return nil, err
	}
	return table.Widen(perVisit, ColPatientID)
}
