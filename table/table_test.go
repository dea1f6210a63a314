package table

import (
	"strings"
	"testing"
)

// mustTable builds a table or fails the test.
func mustTable(t *testing.T, cols []string, rows ...[]string) *Table {
	t.Helper()
	tbl, err := New(cols...)
	if err != nil {
		t.Fatalf("New(%v): %v", cols, err)
	}
	for _, r := range rows {
		if err := tbl.AppendRow(r...); err != nil {
			t.Fatalf("AppendRow(%v): %v", r, err)
		}
	}
	return tbl
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	if _, err := New("id", "value", "id"); err == nil {
		t.Fatal("expected error for duplicate column, got nil")
	}
}

func TestAppendRowArity(t *testing.T) {
	tbl := mustTable(t, []string{"id", "value"})
	if err := tbl.AppendRow("p1"); err == nil {
		t.Error("expected error for short row, got nil")
	}
	if err := tbl.AppendRow("p1", "a", "extra"); err == nil {
		t.Error("expected error for long row, got nil")
	}
	if err := tbl.AppendRow("p1", "a"); err != nil {
		t.Errorf("AppendRow: %v", err)
	}
}

func TestProject(t *testing.T) {
	tbl := mustTable(t, []string{"id", "a", "b"},
		[]string{"p1", "1", "x"},
		[]string{"p2", "2", "y"},
	)

	got, err := tbl.Project("b", "id")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := mustTable(t, []string{"b", "id"},
		[]string{"x", "p1"},
		[]string{"y", "p2"},
	)
	if !got.Equal(want) {
		t.Errorf("Project = %v, want %v", got.Rows, want.Rows)
	}

	if _, err := tbl.Project("id", "missing"); err == nil {
		t.Error("expected error for unknown column, got nil")
	}
}

func TestRename(t *testing.T) {
	tbl := mustTable(t, []string{"id", "a_1"}, []string{"p1", "x"})

	got, err := tbl.Rename(map[string]string{"a_1": "a"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got.Columns[1] != "a" {
		t.Errorf("renamed column = %q, want %q", got.Columns[1], "a")
	}
	if got.Rows[0][1] != "x" {
		t.Errorf("cell = %q, want %q", got.Rows[0][1], "x")
	}

	if _, err := tbl.Rename(map[string]string{"missing": "x"}); err == nil {
		t.Error("expected error for unknown column, got nil")
	}
	if _, err := tbl.Rename(map[string]string{"a_1": "id"}); err == nil {
		t.Error("expected error for name collision, got nil")
	}
}

func TestRenameDoesNotAliasReceiverRows(t *testing.T) {
	tbl := mustTable(t, []string{"id", "a_1"},
		[]string{"p2", "y"},
		[]string{"p1", "x"},
	)

	got, err := tbl.Rename(map[string]string{"a_1": "a"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if err := got.SortBy("id"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	if err := got.AppendRow("p3", "z"); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	if tbl.NumRows() != 2 || tbl.Rows[0][0] != "p2" || tbl.Rows[1][0] != "p1" {
		t.Errorf("receiver rows changed after mutating renamed table: %v", tbl.Rows)
	}
}

func TestBindRows(t *testing.T) {
	a := mustTable(t, []string{"id", "v"}, []string{"p1", "1"})
	// Same column set, different order: cells must realign.
	b := mustTable(t, []string{"v", "id"}, []string{"2", "p2"})

	got, err := a.BindRows(b)
	if err != nil {
		t.Fatalf("BindRows: %v", err)
	}
	want := mustTable(t, []string{"id", "v"},
		[]string{"p1", "1"},
		[]string{"p2", "2"},
	)
	if !got.Equal(want) {
		t.Errorf("BindRows = %v, want %v", got.Rows, want.Rows)
	}

	c := mustTable(t, []string{"id", "other"}, []string{"p3", "x"})
	if _, err := a.BindRows(c); err == nil {
		t.Error("expected error for mismatched columns, got nil")
	}
}

func TestJoinOn(t *testing.T) {
	a := mustTable(t, []string{"id", "a"},
		[]string{"p1", "1"},
		[]string{"p2", "2"},
	)
	b := mustTable(t, []string{"id", "b"},
		[]string{"p2", "y"},
		[]string{"p1", "x"},
	)

	got, err := a.JoinOn(b, "id")
	if err != nil {
		t.Fatalf("JoinOn: %v", err)
	}
	want := mustTable(t, []string{"id", "a", "b"},
		[]string{"p1", "1", "x"},
		[]string{"p2", "2", "y"},
	)
	if !got.Equal(want) {
		t.Errorf("JoinOn = %v, want %v", got.Rows, want.Rows)
	}
}

func TestJoinOnErrors(t *testing.T) {
	a := mustTable(t, []string{"id", "a"}, []string{"p1", "1"}, []string{"p2", "2"})

	tests := []struct {
		name  string
		other *Table
		key   string
		want  string
	}{
		{
			name:  "missing key column",
			other: mustTable(t, []string{"pid", "b"}, []string{"p1", "x"}, []string{"p2", "y"}),
			key:   "id",
			want:  "missing from second table",
		},
		{
			name:  "duplicate key",
			other: mustTable(t, []string{"id", "b"}, []string{"p1", "x"}, []string{"p1", "y"}),
			key:   "id",
			want:  "duplicate key",
		},
		{
			name:  "row count mismatch",
			other: mustTable(t, []string{"id", "b"}, []string{"p1", "x"}),
			key:   "id",
			want:  "row count mismatch",
		},
		{
			name:  "key not in both rows",
			other: mustTable(t, []string{"id", "b"}, []string{"p1", "x"}, []string{"p9", "y"}),
			key:   "id",
			want:  "missing from second table",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.JoinOn(tc.other, tc.key)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want substring %q", err, tc.want)
			}
		})
	}
}

func TestSortBy(t *testing.T) {
	tbl := mustTable(t, []string{"id", "v"},
		[]string{"p2", "b"},
		[]string{"p1", "a"},
		[]string{"p2", "a"},
	)
	if err := tbl.SortBy("id", "v"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	want := [][]string{{"p1", "a"}, {"p2", "a"}, {"p2", "b"}}
	for i := range want {
		if tbl.Rows[i][0] != want[i][0] || tbl.Rows[i][1] != want[i][1] {
			t.Errorf("row %d = %v, want %v", i, tbl.Rows[i], want[i])
		}
	}
}

func TestEqualIgnoringOrder(t *testing.T) {
	a := mustTable(t, []string{"id", "v"},
		[]string{"p1", "1"},
		[]string{"p2", "2"},
	)
	// Same tuples, different row and column order.
	b := mustTable(t, []string{"v", "id"},
		[]string{"2", "p2"},
		[]string{"1", "p1"},
	)
	same, err := a.EqualIgnoringOrder(b)
	if err != nil {
		t.Fatalf("EqualIgnoringOrder: %v", err)
	}
	if !same {
		t.Error("tables with same tuples reported unequal")
	}

	c := mustTable(t, []string{"id", "v"},
		[]string{"p1", "1"},
		[]string{"p2", "3"},
	)
	same, err = a.EqualIgnoringOrder(c)
	if err != nil {
		t.Fatalf("EqualIgnoringOrder: %v", err)
	}
	if same {
		t.Error("tables with different tuples reported equal")
	}

	d := mustTable(t, []string{"id", "w"}, []string{"p1", "1"}, []string{"p2", "2"})
	same, err = a.EqualIgnoringOrder(d)
	if err != nil {
		t.Fatalf("EqualIgnoringOrder: %v", err)
	}
	if same {
		t.Error("tables with different columns reported equal")
	}
}

func TestCell(t *testing.T) {
	tbl := mustTable(t, []string{"id", "v"}, []string{"p1", "x"})
	got, err := tbl.Cell(0, "v")
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if got != "x" {
		t.Errorf("Cell = %q, want %q", got, "x")
	}
	if _, err := tbl.Cell(0, "missing"); err == nil {
		t.Error("expected error for unknown column, got nil")
	}
	if _, err := tbl.Cell(5, "v"); err == nil {
		t.Error("expected error for out-of-range row, got nil")
	}
}
