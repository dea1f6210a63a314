package table

import (
	"fmt"
	"sort"
)

// Table is a rectangular, column-named table of string cells. It is the
// working representation for both the wide shape (one row per patient,
// per-visit fields suffixed with the visit number) and the long shape
// (one row per patient-visit pair).
//
// Rows are kept in insertion order. Column lookup goes through a lazily
// built name index.
type Table struct {
	Columns []string
	Rows    [][]string

	colIdx map[string]int
}

// New creates an empty table with the given column names.
// Duplicate column names are rejected.
func New(columns ...string) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}, nil
}

// AppendRow adds a row. The row must have exactly one cell per column.
func (t *Table) AppendRow(row ...string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	r := make([]string, len(row))
	copy(r, row)
	t.Rows = append(t.Rows, r)
	return nil
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.colIdx == nil {
		t.colIdx = make(map[string]int, len(t.Columns))
		for i, c := range t.Columns {
			t.colIdx[c] = i
		}
	}
	i, ok := t.colIdx[name]
	return i, ok
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Cell returns the value at (row, column name).
func (t *Table) Cell(row int, col string) (string, error) {
	i, ok := t.ColumnIndex(col)
	if !ok {
		return "", fmt.Errorf("unknown column %q", col)
	}
	if row < 0 || row >= len(t.Rows) {
		return "", fmt.Errorf("row %d out of range (%d rows)", row, len(t.Rows))
	}
	return t.Rows[row][i], nil
}

// Project returns a new table holding only the named columns, in the
// given order. Unknown columns are an error.
func (t *Table) Project(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := t.ColumnIndex(c)
		if !ok {
			return nil, fmt.Errorf("project: unknown column %q", c)
		}
		idx[i] = j
	}
	out, err := New(cols...)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(idx))
		for i, j := range idx {
			nr[i] = row[j]
		}
		out.Rows[r] = nr
	}
	return out, nil
}

// Rename returns a new table with columns renamed per the mapping.
// Columns absent from the mapping keep their names. Renaming an unknown
// column, or renaming two columns to the same name, is an error.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	for old := range mapping {
		if _, ok := t.ColumnIndex(old); !ok {
			return nil, fmt.Errorf("rename: unknown column %q", old)
		}
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if n, ok := mapping[c]; ok {
			cols[i] = n
		} else {
			cols[i] = c
		}
	}
	out, err := New(cols...)
	if err != nil {
		return nil, fmt.Errorf("rename: %w", err)
	}
	out.Rows = append([][]string(nil), t.Rows...)
	return out, nil
}

// BindRows vertically concatenates two tables. Both must have the same
// column set; the other table's columns may appear in a different order
// and are realigned to the receiver's order. Rows of the receiver come
// first.
func (t *Table) BindRows(other *Table) (*Table, error) {
	if len(other.Columns) != len(t.Columns) {
		return nil, fmt.Errorf("bind rows: column count mismatch (%d vs %d)", len(t.Columns), len(other.Columns))
	}
	idx := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		j, ok := other.ColumnIndex(c)
		if !ok {
			return nil, fmt.Errorf("bind rows: column %q missing from second table", c)
		}
		idx[i] = j
	}
	out, err := New(t.Columns...)
	if err != nil {
		return nil, fmt.Errorf("bind rows: %w", err)
	}
	out.Rows = make([][]string, 0, len(t.Rows)+len(other.Rows))
	out.Rows = append(out.Rows, t.Rows...)
	for _, row := range other.Rows {
		nr := make([]string, len(idx))
		for i, j := range idx {
			nr[i] = row[j]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}

// JoinOn horizontally joins two tables on a key column that must be
// unique in both. Every key must appear in both tables (the per-visit
// tables are 1:1 on the subject key). The result carries the receiver's
// columns followed by the other table's non-key columns, with rows in
// the receiver's order.
func (t *Table) JoinOn(other *Table, key string) (*Table, error) {
	ki, ok := t.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("join: key column %q missing from first table", key)
	}
	ko, ok := other.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("join: key column %q missing from second table", key)
	}
	if len(t.Rows) != len(other.Rows) {
		return nil, fmt.Errorf("join: row count mismatch (%d vs %d)", len(t.Rows), len(other.Rows))
	}

	byKey := make(map[string][]string, len(other.Rows))
	for _, row := range other.Rows {
		k := row[ko]
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("join: duplicate key %q in second table", k)
		}
		byKey[k] = row
	}

	cols := make([]string, 0, len(t.Columns)+len(other.Columns)-1)
	cols = append(cols, t.Columns...)
	otherIdx := make([]int, 0, len(other.Columns)-1)
	for j, c := range other.Columns {
		if j == ko {
			continue
		}
		cols = append(cols, c)
		otherIdx = append(otherIdx, j)
	}
	out, err := New(cols...)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}

	seen := make(map[string]struct{}, len(t.Rows))
	out.Rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		k := row[ki]
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("join: duplicate key %q in first table", k)
		}
		seen[k] = struct{}{}
		match, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("join: key %q missing from second table", k)
		}
		nr := make([]string, 0, len(cols))
		nr = append(nr, row...)
		for _, j := range otherIdx {
			nr = append(nr, match[j])
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}

// SortBy sorts rows in place by the named columns, lexicographically.
func (t *Table) SortBy(cols ...string) error {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := t.ColumnIndex(c)
		if !ok {
			return fmt.Errorf("sort: unknown column %q", c)
		}
		idx[i] = j
	}
	sort.SliceStable(t.Rows, func(a, b int) bool {
		for _, j := range idx {
			if t.Rows[a][j] != t.Rows[b][j] {
				return t.Rows[a][j] < t.Rows[b][j]
			}
		}
		return false
	})
	return nil
}

// EqualIgnoringOrder reports whether two tables hold the same multiset
// of rows over the same column set, regardless of row or column order.
// This is the round-trip invariant check: the pivots preserve every
// (key, visit, field, value) tuple but not necessarily row order.
func (t *Table) EqualIgnoringOrder(other *Table) (bool, error) {
	if len(t.Columns) != len(other.Columns) {
		return false, nil
	}
	for _, c := range t.Columns {
		if _, ok := other.ColumnIndex(c); !ok {
			return false, nil
		}
	}
	aligned, err := other.Project(t.Columns...)
	if err != nil {
		return false, fmt.Errorf("compare: %w", err)
	}
	a := &Table{Columns: t.Columns, Rows: append([][]string(nil), t.Rows...)}
	b := &Table{Columns: aligned.Columns, Rows: append([][]string(nil), aligned.Rows...)}
	if err := a.SortBy(a.Columns...); err != nil {
		return false, err
	}
	if err := b.SortBy(b.Columns...); err != nil {
		return false, err
	}
	return a.Equal(b), nil
}

// Equal reports whether two tables have identical columns and rows,
// in order.
func (t *Table) Equal(other *Table) bool {
	if len(t.Columns) != len(other.Columns) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for r := range t.Rows {
		for c := range t.Rows[r] {
			if t.Rows[r][c] != other.Rows[r][c] {
				return false
			}
		}
	}
	return true
}
