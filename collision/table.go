// Package collision parses collisional rate coefficient files and holds them
// as one table indexed by (upper level, lower level, partner).
//
// Columns are temperatures, ascending. A table merged from several partner
// files carries the union of their grids, with NaN where a file has no
// sample; interp.Normalize turns such a table into a rectangular one.
package collision

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ncrit/table"
)

// Key identifies one rate row.
type Key struct {
	Upper   int    // nu
	Lower   int    // nl
	Partner string // collider, from the file name
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%d,%s)", k.Upper, k.Lower, k.Partner)
}

// Table is an immutable rate table: one row per Key, one column per temperature.
type Table struct {
	temps []float64
	keys  []Key
	rates *table.Dense
	index map[Key]int
}

// New assembles a Table. temps must be strictly ascending, keys unique and
// rates must be len(keys)×len(temps). The inputs are copied.
func New(temps []float64, keys []Key, rates *table.Dense) (*Table, error) {
	if rates == nil || rates.Rows() != len(keys) || rates.Cols() != len(temps) {
		return nil, fmt.Errorf("New: %d keys × %d temperatures: %w", len(keys), len(temps), ErrBadGrid)
	}
	for j := 1; j < len(temps); j++ {
		if !(temps[j] > temps[j-1]) {
			return nil, fmt.Errorf("New: temperature %g after %g: %w", temps[j], temps[j-1], ErrBadGrid)
		}
	}
	for _, t := range temps {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("New: temperature %g: %w", t, ErrBadGrid)
		}
	}

	index := make(map[Key]int, len(keys))
	for i, k := range keys {
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("New: %v: %w", k, ErrDuplicateKey)
		}
		index[k] = i
	}

	return &Table{
		temps: append([]float64(nil), temps...),
		keys:  append([]Key(nil), keys...),
		rates: rates.Clone(),
		index: index,
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.keys) }

// Temperatures returns a copy of the temperature grid.
func (t *Table) Temperatures() []float64 { return append([]float64(nil), t.temps...) }

// Keys returns a copy of the row keys, in row order.
func (t *Table) Keys() []Key { return append([]Key(nil), t.keys...) }

// Rates returns a copy of the rate grid.
func (t *Table) Rates() *table.Dense { return t.rates.Clone() }

// Row returns the key and a copy of the rates of row i.
func (t *Table) Row(i int) (Key, []float64, error) {
	vals, err := t.rates.Row(i)
	if err != nil {
		return Key{}, nil, err
	}
	return t.keys[i], vals, nil
}

// Lookup returns the rates of the row with key k.
func (t *Table) Lookup(k Key) ([]float64, bool) {
	i, ok := t.index[k]
	if !ok {
		return nil, false
	}
	vals, _ := t.rates.Row(i)
	return vals, true
}

// Rate returns the rate of key k at temperature temp. The second result is
// false when either is absent; a NaN rate with true means "no sample".
func (t *Table) Rate(k Key, temp float64) (float64, bool) {
	i, ok := t.index[k]
	if !ok {
		return 0, false
	}
	j := sort.SearchFloat64s(t.temps, temp)
	if j == len(t.temps) || t.temps[j] != temp {
		return 0, false
	}
	v, _ := t.rates.At(i, j)
	return v, true
}

// Partners returns the distinct partners, sorted.
func (t *Table) Partners() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, k := range t.keys {
		if _, ok := seen[k.Partner]; ok {
			continue
		}
		seen[k.Partner] = struct{}{}
		out = append(out, k.Partner)
	}
	sort.Strings(out)
	return out
}

// UpperLevels returns the distinct upper levels, ascending.
func (t *Table) UpperLevels() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, k := range t.keys {
		if _, ok := seen[k.Upper]; ok {
			continue
		}
		seen[k.Upper] = struct{}{}
		out = append(out, k.Upper)
	}
	sort.Ints(out)
	return out
}

// Complete reports whether no cell is NaN.
func (t *Table) Complete() bool {
	for j := range t.temps {
		if !t.rates.ColComplete(j) {
			return false
		}
	}
	return true
}

// SelectTemperatures returns a new table keeping only the given column
// indices, which must be ascending.
func (t *Table) SelectTemperatures(cols []int) (*Table, error) {
	temps := make([]float64, len(cols))
	for k, j := range cols {
		if j < 0 || j >= len(t.temps) {
			return nil, fmt.Errorf("SelectTemperatures: column %d: %w", j, table.ErrOutOfRange)
		}
		temps[k] = t.temps[j]
	}
	rates, err := t.rates.SelectCols(cols)
	if err != nil {
		return nil, err
	}
	return New(temps, t.keys, rates)
}

// Equal reports whether both tables hold the same keys, grid and rates.
func (t *Table) Equal(o *Table) bool {
	if len(t.keys) != len(o.keys) || len(t.temps) != len(o.temps) {
		return false
	}
	for i := range t.keys {
		if t.keys[i] != o.keys[i] {
			return false
		}
	}
	for j := range t.temps {
		if t.temps[j] != o.temps[j] {
			return false
		}
	}
	return t.rates.Equal(o.rates)
}
