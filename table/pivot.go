package table

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// VisitColumn is the explicit occasion-index column of the long shape.
const VisitColumn = "visit"

var suffixRe = regexp.MustCompile(`^(.+)_([0-9]+)$`)

// visitGroup maps a visit index to its suffixed wide columns.
type visitGroup struct {
	visit  int
	fields []string // base field names, without the suffix
}

// discoverVisits scans the wide table's columns for the _<visit> suffix
// convention and groups them by visit index. Every visit must carry the
// same field set; a field present for one visit but missing for another
// is a ragged layout and an error, as is any non-key column without a
// suffix.
func discoverVisits(wide *Table, key string) ([]visitGroup, error) {
	fieldsByVisit := make(map[int][]string)
	var visits []int
	for _, c := range wide.Columns {
		if c == key {
			continue
		}
		m := suffixRe.FindStringSubmatch(c)
		if m == nil {
			return nil, fmt.Errorf("column %q has no visit suffix", c)
		}
		v, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("column %q: bad visit suffix: %w", c, err)
		}
		if _, ok := fieldsByVisit[v]; !ok {
			visits = append(visits, v)
		}
		fieldsByVisit[v] = append(fieldsByVisit[v], m[1])
	}
	if len(visits) == 0 {
		return nil, fmt.Errorf("table has no visit-suffixed columns")
	}
	sort.Ints(visits)

	ref := fieldsByVisit[visits[0]]
	groups := make([]visitGroup, len(visits))
	for i, v := range visits {
		fields := fieldsByVisit[v]
		if err := sameFieldSet(ref, fields); err != nil {
			return nil, fmt.Errorf("visit %d: %w", v, err)
		}
		groups[i] = visitGroup{visit: v, fields: fields}
	}
	return groups, nil
}

func sameFieldSet(ref, fields []string) error {
	if len(ref) != len(fields) {
		return fmt.Errorf("has %d fields, expected %d", len(fields), len(ref))
	}
	set := make(map[string]struct{}, len(ref))
	for _, f := range ref {
		set[f] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := set[f]; !ok {
			return fmt.Errorf("unexpected field %q", f)
		}
	}
	return nil
}

// Widen horizontally joins per-visit tables on the key column into the
// wide shape. Element i holds visit i+1; each non-key column is renamed
// with the _<visit> suffix before joining. This is a reduce over the
// per-visit tables with JoinOn as the binary step.
func Widen(perVisit []*Table, key string) (*Table, error) {
	if len(perVisit) == 0 {
		return nil, fmt.Errorf("widen: no per-visit tables")
	}
	suffixed, err := TryMap(seq(len(perVisit)), func(i int) (*Table, error) {
		t, err := suffixColumns(perVisit[i], key, i+1)
		if err != nil {
			return nil, fmt.Errorf("widen: visit %d: %w", i+1, err)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return TryReduce(suffixed[1:], suffixed[0], func(acc, t *Table) (*Table, error) {
		return acc.JoinOn(t, key)
	})
}

// WideToLong pivots the wide shape into the long shape: for each visit
// index, project the key plus that visit's columns, strip the suffix,
// tag the rows with the visit number, then bind the per-visit slices
// together. The multiset of (key, visit, field, value) tuples is
// preserved exactly.
func WideToLong(wide *Table, key string) (*Table, error) {
	if _, ok := wide.ColumnIndex(key); !ok {
		return nil, fmt.Errorf("wide to long: key column %q not found", key)
	}
	groups, err := discoverVisits(wide, key)
	if err != nil {
		return nil, fmt.Errorf("wide to long: %w", err)
	}

	fields := groups[0].fields
	slices, err := TryMap(groups, func(g visitGroup) (*Table, error) {
		cols := make([]string, 0, len(fields)+1)
		cols = append(cols, key)
		mapping := make(map[string]string, len(fields))
		for _, f := range fields {
			wc := fmt.Sprintf("%s_%d", f, g.visit)
			cols = append(cols, wc)
			mapping[wc] = f
		}
		slice, err := wide.Project(cols...)
		if err != nil {
			return nil, err
		}
		slice, err = slice.Rename(mapping)
		if err != nil {
			return nil, err
		}
		return withVisitColumn(slice, key, g.visit)
	})
	if err != nil {
		return nil, fmt.Errorf("wide to long: %w", err)
	}

	return TryReduce(slices[1:], slices[0], func(acc, t *Table) (*Table, error) {
		return acc.BindRows(t)
	})
}

// LongToWide is the inverse pivot. The long table must carry the visit
// column; duplicate (key, visit) pairs are an error rather than a
// silent overwrite.
func LongToWide(long *Table, key string) (*Table, error) {
	ki, ok := long.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("long to wide: key column %q not found", key)
	}
	vi, ok := long.ColumnIndex(VisitColumn)
	if !ok {
		return nil, fmt.Errorf("long to wide: %q column not found", VisitColumn)
	}

	var fields []string
	for _, c := range long.Columns {
		if c != key && c != VisitColumn {
			fields = append(fields, c)
		}
	}

	seen := make(map[string]struct{}, len(long.Rows))
	byVisit := make(map[int]struct{})
	var visits []int
	for _, row := range long.Rows {
		v, err := strconv.Atoi(row[vi])
		if err != nil {
			return nil, fmt.Errorf("long to wide: bad visit value %q: %w", row[vi], err)
		}
		pair := row[ki] + "\x00" + row[vi]
		if _, dup := seen[pair]; dup {
			return nil, fmt.Errorf("long to wide: duplicate (key, visit) pair (%s, %d)", row[ki], v)
		}
		seen[pair] = struct{}{}
		if _, ok := byVisit[v]; !ok {
			byVisit[v] = struct{}{}
			visits = append(visits, v)
		}
	}
	sort.Ints(visits)

	if len(visits) == 0 {
		return New(key)
	}

	perVisit, err := TryMap(visits, func(v int) (*Table, error) {
		want := strconv.Itoa(v)
		slice, err := New(long.Columns...)
		if err != nil {
			return nil, err
		}
		slice.Rows = Filter(long.Rows, func(row []string) bool { return row[vi] == want })
		slice, err = slice.Project(append([]string{key}, fields...)...)
		if err != nil {
			return nil, err
		}
		return suffixColumns(slice, key, v)
	})
	if err != nil {
		return nil, fmt.Errorf("long to wide: %w", err)
	}

	return TryReduce(perVisit[1:], perVisit[0], func(acc, t *Table) (*Table, error) {
		return acc.JoinOn(t, key)
	})
}

// Visits returns the sorted visit indexes present in a wide table's
// suffixed columns.
func Visits(wide *Table, key string) ([]int, error) {
	groups, err := discoverVisits(wide, key)
	if err != nil {
		return nil, err
	}
	return Map(groups, func(g visitGroup) int { return g.visit }), nil
}

// suffixColumns renames every non-key column with the _<visit> suffix.
func suffixColumns(t *Table, key string, visit int) (*Table, error) {
	mapping := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		if c == key {
			continue
		}
		mapping[c] = fmt.Sprintf("%s_%d", c, visit)
	}
	return t.Rename(mapping)
}

// withVisitColumn inserts the visit column right after the key column.
func withVisitColumn(t *Table, key string, visit int) (*Table, error) {
	ki, ok := t.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("key column %q not found", key)
	}
	cols := make([]string, 0, len(t.Columns)+1)
	for i, c := range t.Columns {
		cols = append(cols, c)
		if i == ki {
			cols = append(cols, VisitColumn)
		}
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	v := strconv.Itoa(visit)
	out.Rows = Map(t.Rows, func(row []string) []string {
		nr := make([]string, 0, len(row)+1)
		for i, cell := range row {
			nr = append(nr, cell)
			if i == ki {
				nr = append(nr, v)
			}
		}
		return nr
	})
	return out, nil
}

// seq returns [0, 1, ..., n-1].
func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
