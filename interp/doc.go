// Package interp completes a merged collision table.
//
// Partner files rarely share one temperature grid, so a merged table has
// gaps. Normalize fills a gap by linear interpolation in temperature between
// the nearest known samples of the same row. Nothing is borrowed from other
// rows or partners and nothing is extrapolated.
//
// A column still holding a gap for any row is then dropped for the whole
// table, which keeps the result rectangular: every surviving row is defined
// at every surviving temperature. Each dropped column is returned in the
// Report and logged as a warning.
//
//	T        10     20     30     40
//	H2      1.0    NaN    3.0    4.0      → 2.0 filled at T=20
//	He      NaN    5.0    6.0    7.0      → T=10 cannot be filled
//
//	result  T = 20, 30, 40
package interp
