package cohort

import (
	"fmt"
	"strconv"
	"testing"

	"visitpivot/table"
)

func testRecords() []VisitRecord {
	var records []VisitRecord
	for v := int32(1); v <= 2; v++ {
		for _, pid := range []string{"p1", "p2", "p3"} {
			records = append(records, VisitRecord{
				PatientID:    pid,
				Visit:        v,
				VisitDate:    fmt.Sprintf("2024-0%d-10", v),
				OnMedication: pid == "p1",
				Symptom:      SymptomMild,
				AdverseEvent: false,
			})
		}
	}
	return records
}

func TestVisitTable(t *testing.T) {
	records := testRecords()[:3] // visit 1 only

	tbl, err := VisitTable(records)
	if err != nil {
		t.Fatalf("VisitTable: %v", err)
	}
	if tbl.NumRows() != 3 {
		t.Errorf("rows = %d, want 3", tbl.NumRows())
	}
	wantCols := []string{"patient_id", "visit_date", "on_medication", "symptom", "adverse_event"}
	for i := range wantCols {
		if tbl.Columns[i] != wantCols[i] {
			t.Fatalf("columns = %v, want %v", tbl.Columns, wantCols)
		}
	}

	med, err := tbl.Cell(0, ColOnMedication)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if med != "true" {
		t.Errorf("on_medication = %q, want %q", med, "true")
	}
}

func TestVisitTableRejectsMixedVisits(t *testing.T) {
	if _, err := VisitTable(testRecords()); err == nil {
		t.Error("expected error for mixed visit indexes, got nil")
	}
}

func TestWideTableShape(t *testing.T) {
	wide, err := WideTable(testRecords(), 2)
	if err != nil {
		t.Fatalf("WideTable: %v", err)
	}
	if wide.NumRows() != 3 {
		t.Errorf("rows = %d, want 3", wide.NumRows())
	}
	// key + 4 fields x 2 visits
	if wide.NumCols() != 9 {
		t.Errorf("columns = %d, want 9", wide.NumCols())
	}
	if _, ok := wide.ColumnIndex("symptom_2"); !ok {
		t.Errorf("missing column symptom_2 in %v", wide.Columns)
	}
}

func TestWideTableRejectsOutOfRangeVisit(t *testing.T) {
	records := testRecords()
	records[0].Visit = 5
	if _, err := WideTable(records, 2); err == nil {
		t.Error("expected error for out-of-range visit, got nil")
	}
}

// The wide table pivoted to long must equal the long table built
// directly from the records: the pivot is lossless.
func TestWideTablePivotsToLongTable(t *testing.T) {
	records := testRecords()

	wide, err := WideTable(records, 2)
	if err != nil {
		t.Fatalf("WideTable: %v", err)
	}
	pivoted, err := table.WideToLong(wide, ColPatientID)
	if err != nil {
		t.Fatalf("WideToLong: %v", err)
	}
	direct, err := LongTable(records)
	if err != nil {
		t.Fatalf("LongTable: %v", err)
	}

	if !pivoted.Equal(direct) {
		t.Errorf("pivoted long table differs from direct long table:\n got %v %v\nwant %v %v",
			pivoted.Columns, pivoted.Rows, direct.Columns, direct.Rows)
	}
}

// Same property on generated data, and in both directions.
func TestGeneratedCohortRoundTrip(t *testing.T) {
	const visits = 3
	_, records, err := NewGenerator(11).Cohort(25, visits)
	if err != nil {
		t.Fatalf("Cohort: %v", err)
	}

	wide, err := WideTable(records, visits)
	if err != nil {
		t.Fatalf("WideTable: %v", err)
	}
	long, err := table.WideToLong(wide, ColPatientID)
	if err != nil {
		t.Fatalf("WideToLong: %v", err)
	}
	if long.NumRows() != len(records) {
		t.Errorf("long rows = %d, want %d", long.NumRows(), len(records))
	}

	back, err := table.LongToWide(long, ColPatientID)
	if err != nil {
		t.Fatalf("LongToWide: %v", err)
	}
	same, err := wide.EqualIgnoringOrder(back)
	if err != nil {
		t.Fatalf("EqualIgnoringOrder: %v", err)
	}
	if !same {
		t.Error("wide -> long -> wide round trip lost tuples")
	}
}

func TestLongTableValues(t *testing.T) {
	records := testRecords()
	long, err := LongTable(records)
	if err != nil {
		t.Fatalf("LongTable: %v", err)
	}
	if long.NumRows() != len(records) {
		t.Fatalf("rows = %d, want %d", long.NumRows(), len(records))
	}
	for i, r := range records {
		visit, err := long.Cell(i, table.VisitColumn)
		if err != nil {
			t.Fatalf("Cell: %v", err)
		}
		if visit != strconv.Itoa(int(r.Visit)) {
			t.Errorf("row %d visit = %q, want %d", i, visit, r.Visit)
		}
		date, err := long.Cell(i, ColVisitDate)
		if err != nil {
			t.Fatalf("Cell: %v", err)
		}
		if date != r.VisitDate {
			t.Errorf("row %d visit_date = %q, want %q", i, date, r.VisitDate)
		}
	}
}
