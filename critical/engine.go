package critical

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ncrit/abundance"
	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/internal/logger"
	"github.com/katalvlaran/ncrit/lines"
)

// SumRadiativeRate returns the sum of Einstein A over every transition whose
// upper level is level. The order of transitions does not matter.
// Returns ErrUnknownLevel when no transition leaves level.
func SumRadiativeRate(t *lines.Table, level int) (float64, error) {
	if t == nil {
		return 0, fmt.Errorf("SumRadiativeRate: %w", ErrNilInput)
	}
	var (
		sum   float64
		found bool
	)
	for _, tr := range t.Transitions {
		if tr.Upper == level {
			sum += tr.EinsteinA
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("level %d in %s: %w", level, t.Source, ErrUnknownLevel)
	}
	return sum, nil
}

// CriticalDensity computes the critical-density curve of level in kind.
//
// Implementation:
//   - Stage 1: sum the collision rates of level over lower levels, per partner.
//   - Stage 2: weight each partner by its fraction in kind and sum, in sorted
//     partner order; partners without a fraction are excluded.
//   - Stage 3: divide radiative by the denominator at each temperature; a
//     zero denominator gives NaN.
//
// NaN rate samples are skipped in Stage 1. Normalize the table first
// (interp.Normalize) to avoid them.
//
// Errors: ErrNilInput, ErrUnknownKind, ErrNoCollisionRates.
// Complexity: O(R*T) for R collision rows and T temperatures.
func CriticalDensity(kind string, level int, radiative float64, c *collision.Table, a *abundance.Table) (*Curve, error) {
	if c == nil || a == nil {
		return nil, fmt.Errorf("CriticalDensity: %w", ErrNilInput)
	}
	if !a.HasKind(kind) {
		return nil, fmt.Errorf("%q (have %v): %w", kind, a.Kinds(), ErrUnknownKind)
	}

	temps := c.Temperatures()
	perPartner, err := ratesByPartner(c, level, len(temps))
	if err != nil {
		return nil, err
	}

	partners := make([]string, 0, len(perPartner))
	for p := range perPartner {
		partners = append(partners, p)
	}
	sort.Strings(partners)

	curve := &Curve{Level: level, Kind: kind, Radiative: radiative}
	denom := make([]float64, len(temps))
	for _, p := range partners {
		frac, ok := a.Fraction(p, kind)
		if !ok {
			curve.Excluded = append(curve.Excluded, p)
			logger.Debug("partner has no fraction, excluded", "partner", p, "kind", kind, "level", level)
			continue
		}
		curve.Partners = append(curve.Partners, p)
		for j, r := range perPartner[p] {
			denom[j] += frac * r
		}
	}

	curve.Points = make([]Point, len(temps))
	for j, temp := range temps {
		curve.Points[j] = Point{Temperature: temp, Density: ratio(radiative, denom[j])}
	}
	return curve, nil
}

// ratesByPartner sums the rows of level over lower levels, grouped by partner.
func ratesByPartner(c *collision.Table, level, width int) (map[string][]float64, error) {
	out := make(map[string][]float64)
	for i, k := range c.Keys() {
		if k.Upper != level {
			continue
		}
		_, row, err := c.Row(i)
		if err != nil {
			return nil, err
		}
		acc, ok := out[k.Partner]
		if !ok {
			acc = make([]float64, width)
			out[k.Partner] = acc
		}
		for j, v := range row {
			if !math.IsNaN(v) {
				acc[j] += v
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("level %d: %w", level, ErrNoCollisionRates)
	}
	return out, nil
}

// ratio returns num/den, or NaN when den is zero or the quotient is infinite.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	r := num / den
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}
