// Package critical derives critical densities from radiative and collisional
// rates.
//
// For an upper level u and a medium kind k:
//
//	A_u      = Σ_l A(u→l)                         SumRadiativeRate
//	C_u,p(T) = Σ_l q_p(u→l, T)                    per partner p
//	D_u,k(T) = Σ_p x_p,k · C_u,p(T)               x = fractional abundance
//	n_crit   = A_u / D_u,k(T)
//
// Partners without a fraction for k are left out of D. A temperature where D
// is exactly zero yields NaN: the point is kept in the curve and callers skip
// it (see Curve.Defined) rather than treating it as an error.
//
// Every function is pure. Curves fans the work out over levels and kinds.
package critical
