// Package table provides the float64 grid that backs the collision rate tables.
//
// Dense is a row-major rows×cols grid stored in one flat slice. Unlike a
// linear-algebra matrix it treats NaN as a first-class value: a NaN cell means
// "no sample here" and is what the interpolation and column-dropping passes
// look for.
//
// Zero-width grids are legal. A collision table whose every temperature was
// rejected still has rows, just no columns.
//
// Complexity:
//
//	At/Set are O(1) with bounds checks.
//	Clone, SelectCols and the column scans are O(rows*cols).
package table
