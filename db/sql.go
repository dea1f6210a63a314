package db

import (
	"fmt"
	"strings"
)

// WideTableName is the one relation this schema defines.
const WideTableName = "visits_wide"

// wideColumns returns the column list for a given visit count, key
// first, matching the wide CSV layout.
func wideColumns(visits int32) []string {
	cols := []string{"patient_id"}
	for v := int32(1); v <= visits; v++ {
		cols = append(cols,
			fmt.Sprintf("visit_date_%d", v),
			fmt.Sprintf("on_medication_%d", v),
			fmt.Sprintf("symptom_%d", v),
			fmt.Sprintf("adverse_event_%d", v),
		)
	}
	return cols
}

// wideTableDDL builds the CREATE TABLE statement. The column set
// depends on the visit count, so the DDL is assembled rather than
// embedded from a static file.
func wideTableDDL(visits int32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", WideTableName)
	b.WriteString("    patient_id text PRIMARY KEY")
	for v := int32(1); v <= visits; v++ {
		fmt.Fprintf(&b, ",\n    visit_date_%d date NOT NULL", v)
		fmt.Fprintf(&b, ",\n    on_medication_%d boolean NOT NULL", v)
		fmt.Fprintf(&b, ",\n    symptom_%d text NOT NULL CHECK (symptom_%d IN ('none', 'mild', 'moderate', 'severe'))", v, v)
		fmt.Fprintf(&b, ",\n    adverse_event_%d boolean NOT NULL", v)
	}
	b.WriteString("\n)")
	return b.String()
}

// longUnionBody builds the SQL translation of the wide→long pivot: one
// SELECT per visit index projecting that visit's columns under their
// unsuffixed names, combined with UNION ALL.
func longUnionBody(visits int32) string {
	var b strings.Builder
	for v := int32(1); v <= visits; v++ {
		if v > 1 {
			b.WriteString("\nUNION ALL\n")
		}
		fmt.Fprintf(&b,
			"SELECT patient_id, %d AS visit, visit_date_%d AS visit_date, on_medication_%d AS on_medication, symptom_%d AS symptom, adverse_event_%d AS adverse_event FROM %s",
			v, v, v, v, v, WideTableName)
	}
	return b.String()
}

// longUnionSQL is the pivot query ordered by (patient_id, visit).
func longUnionSQL(visits int32) string {
	return longUnionBody(visits) + "\nORDER BY patient_id, visit"
}

// longCountSQL counts the pivot output without ordering it.
func longCountSQL(visits int32) string {
	return "SELECT COUNT(*) FROM (\n" + longUnionBody(visits) + "\n) long_visits"
}
