package interp

import (
	"math"
	"sort"

	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/internal/logger"
)

// Report describes what Normalize changed.
type Report struct {
	Filled  int                           // cells filled by interpolation
	Dropped []IncompleteColliderDataError // dropped columns, ascending temperature
}

// Complete reports whether no column was dropped.
func (r *Report) Complete() bool { return len(r.Dropped) == 0 }

// Normalize returns a copy of t with interior gaps filled and incomplete
// temperature columns removed. t itself is not modified. Running Normalize on
// its own output returns an equal table and an empty report.
// Complexity: O(R*T).
func Normalize(t *collision.Table) (*collision.Table, *Report, error) {
	temps := t.Temperatures()
	keys := t.Keys()
	rates := t.Rates()
	rep := &Report{}

	for i := 0; i < rates.Rows(); i++ {
		row, err := rates.Row(i)
		if err != nil {
			return nil, nil, err
		}
		n := fillRow(temps, row)
		if n == 0 {
			continue
		}
		rep.Filled += n
		if err := rates.SetRow(i, row); err != nil {
			return nil, nil, err
		}
	}

	keep := make([]int, 0, len(temps))
	for j, temp := range temps {
		missing := rates.MissingInCol(j)
		if len(missing) == 0 {
			keep = append(keep, j)
			continue
		}
		d := IncompleteColliderDataError{Temperature: temp, Rows: len(missing), Partners: partnersOf(keys, missing)}
		rep.Dropped = append(rep.Dropped, d)
		logger.Warn("dropping temperature column", "temperature", temp, "rows", d.Rows, "partners", d.Partners)
	}

	filled, err := collision.New(temps, keys, rates)
	if err != nil {
		return nil, nil, err
	}
	if len(keep) == len(temps) {
		return filled, rep, nil
	}
	out, err := filled.SelectTemperatures(keep)
	if err != nil {
		return nil, nil, err
	}
	return out, rep, nil
}

// fillRow linearly interpolates every NaN of row that has a known sample on
// both sides, in place, and returns how many cells it filled.
func fillRow(temps, row []float64) int {
	filled := 0
	prev := -1 // index of the last known sample
	for j, v := range row {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && j-prev > 1 {
			x0, y0 := temps[prev], row[prev]
			x1, y1 := temps[j], v
			for k := prev + 1; k < j; k++ {
				row[k] = y0 + (y1-y0)*(temps[k]-x0)/(x1-x0)
				filled++
			}
		}
		prev = j
	}
	return filled
}

func partnersOf(keys []collision.Key, rows []int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, i := range rows {
		p := keys[i].Partner
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
