package critical

import "math"

// Point is one sample of a critical-density curve. Density is NaN when
// undefined.
type Point struct {
	Temperature float64 // K
	Density     float64 // cm⁻³
}

// Undefined reports whether the density could not be computed.
func (p Point) Undefined() bool { return math.IsNaN(p.Density) }

// Curve is the critical density of one upper level in one medium kind.
type Curve struct {
	Level     int
	Kind      string
	Radiative float64  // summed Einstein A of the level, s⁻¹
	Partners  []string // partners contributing to the denominator, sorted
	Excluded  []string // partners with rates but no fraction for Kind, sorted
	Points    []Point  // ascending temperature
}

// Defined returns the points with a defined density.
func (c *Curve) Defined() []Point {
	out := make([]Point, 0, len(c.Points))
	for _, p := range c.Points {
		if !p.Undefined() {
			out = append(out, p)
		}
	}
	return out
}

// At returns the density at temperature t.
func (c *Curve) At(t float64) (float64, bool) {
	for _, p := range c.Points {
		if p.Temperature == t {
			return p.Density, true
		}
	}
	return 0, false
}
