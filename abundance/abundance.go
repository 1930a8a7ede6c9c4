// Package abundance loads the fractional abundance of every collision partner
// in each medium kind.
//
// The input is a comma-separated table with a header row and a "collider"
// index column:
//
//	collider,name,diffuse,dense
//	H2,molecular hydrogen,0.5,1.0
//	e,electrons,1e-4,
//
// Columns whose cells are all numbers (or empty) are kinds; any other column
// is a label and ignored. An empty cell means the partner has no defined
// fraction in that kind.
package abundance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// IndexColumn is the header of the partner column.
const IndexColumn = "collider"

// Table holds fractions by partner and kind. It is read-only once built.
type Table struct {
	partners []string
	kinds    []string
	index    map[string]int
	values   [][]float64 // [partner][kind], NaN when undefined
}

// FromMap builds a table from fractions keyed by partner; each slice is
// aligned with kinds, NaN meaning undefined. Partners are stored sorted.
func FromMap(kinds []string, fractions map[string][]float64) (*Table, error) {
	t := &Table{kinds: append([]string(nil), kinds...), index: make(map[string]int, len(fractions))}
	for p := range fractions {
		t.partners = append(t.partners, p)
	}
	sort.Strings(t.partners)
	for i, p := range t.partners {
		vals := fractions[p]
		if len(vals) != len(kinds) {
			return nil, fmt.Errorf("%w: partner %q has %d values for %d kinds", ErrMalformed, p, len(vals), len(kinds))
		}
		t.index[p] = i
		t.values = append(t.values, append([]float64(nil), vals...))
	}
	return t, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abundance: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a fractional-abundance table from r.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, perr)
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header", ErrMalformed)
	}

	header := records[0]
	idx := -1
	for j, h := range header {
		header[j] = strings.TrimSpace(h)
		if header[j] == IndexColumn {
			idx = j
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: header %v", ErrMissingIndex, header)
	}
	body := records[1:]

	var kindCols []int
	for j := range header {
		if j == idx {
			continue
		}
		if numericColumn(body, j) {
			kindCols = append(kindCols, j)
		}
	}

	t := &Table{index: make(map[string]int, len(body))}
	for _, j := range kindCols {
		t.kinds = append(t.kinds, header[j])
	}
	for n, rec := range body {
		partner := strings.TrimSpace(rec[idx])
		if _, dup := t.index[partner]; dup {
			return nil, fmt.Errorf("row %d: %q: %w", n+2, partner, ErrDuplicatePartner)
		}
		vals := make([]float64, len(kindCols))
		for k, j := range kindCols {
			vals[k] = parseCell(rec[j])
		}
		t.index[partner] = len(t.partners)
		t.partners = append(t.partners, partner)
		t.values = append(t.values, vals)
	}

	return t, nil
}

// numericColumn reports whether every non-empty cell of column j is a float.
// csv.Reader already rejects ragged rows.
func numericColumn(rows [][]string, j int) bool {
	for _, r := range rows {
		c := strings.TrimSpace(r[j])
		if c == "" {
			continue
		}
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			return false
		}
	}
	return true
}

func parseCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Partners returns the partners in file order.
func (t *Table) Partners() []string { return append([]string(nil), t.partners...) }

// Kinds returns the kind columns in file order.
func (t *Table) Kinds() []string { return append([]string(nil), t.kinds...) }

// HasKind reports whether kind is a column of the table.
func (t *Table) HasKind(kind string) bool {
	return t.kindIndex(kind) >= 0
}

// Fraction returns the abundance of partner in kind. The second result is
// false when the partner or kind is unknown or the cell is empty.
func (t *Table) Fraction(partner, kind string) (float64, bool) {
	i, ok := t.index[partner]
	if !ok {
		return 0, false
	}
	k := t.kindIndex(kind)
	if k < 0 {
		return 0, false
	}
	v := t.values[i][k]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (t *Table) kindIndex(kind string) int {
	for k, name := range t.kinds {
		if name == kind {
			return k
		}
	}
	return -1
}
