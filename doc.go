// Package ncrit computes critical densities of molecular transitions from
// LAMDA-style radiative and collisional data.
//
// The critical density of an upper level u in a medium kind k is
//
//	n_crit(u, k, T) = Σ_l A(u→l) / Σ_p f(p, k) · Σ_l C_p(u→l, T)
//
// where A are Einstein coefficients, f the fractional abundance of collision
// partner p and C_p its collisional de-excitation rate at temperature T.
//
// The work is split across subpackages:
//
//	source/      locate line and collision files for a species under a data directory
//	table/       dense float64 grid with NaN as the missing-sample marker
//	lines/       line-file parser with per-column type inference
//	collision/   collision-rate parser and cross-partner merge
//	interp/      fill interior gaps in temperature, drop incomplete temperatures
//	abundance/   fractional abundances per partner and kind
//	critical/    radiative sums, critical-density curves, concurrent batches
//	export/      CSV and JSON writers for curves
//
// The ncrit command (cmd/ncrit) wires them together.
package ncrit
