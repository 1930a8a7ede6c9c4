package collision

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/ncrit/table"
)

// Merge concatenates tables into one. The temperature grid becomes the
// ascending union of all grids; a row has NaN at every temperature its own
// file did not sample. Rows keep input order. A key present in two tables is
// ErrDuplicateKey.
// Complexity: O(R*T) for R rows and T union temperatures.
func Merge(tables ...*Table) (*Table, error) {
	var union []float64
	seen := make(map[float64]struct{})
	rows := 0
	for _, t := range tables {
		rows += t.Len()
		for _, temp := range t.temps {
			if _, ok := seen[temp]; !ok {
				seen[temp] = struct{}{}
				union = append(union, temp)
			}
		}
	}
	sort.Float64s(union)

	col := make(map[float64]int, len(union))
	for j, temp := range union {
		col[temp] = j
	}

	rates, err := table.NewMissing(rows, len(union))
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, rows)
	owner := make(map[Key]int, rows)
	i := 0
	for n, t := range tables {
		for r, k := range t.keys {
			if prev, dup := owner[k]; dup {
				return nil, fmt.Errorf("Merge: %v in tables %d and %d: %w", k, prev, n, ErrDuplicateKey)
			}
			owner[k] = n
			keys = append(keys, k)
			for j, temp := range t.temps {
				v, _ := t.rates.At(r, j)
				_ = rates.Set(i, col[temp], v)
			}
			i++
		}
	}

	return New(union, keys, rates)
}

// ascending returns the column permutation that sorts temps.
func ascending(temps []float64) []int {
	order := make([]int, len(temps))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return temps[order[a]] < temps[order[b]] })
	return order
}
