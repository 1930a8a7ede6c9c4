// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"math"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major grid of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense grid initialized to zeros.
// Stage 1 (Validate): ensure rows and cols are non-negative.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewMissing creates an r×c Dense grid with every cell set to NaN.
// Complexity: O(r*c).
func NewMissing(rows, cols int) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	nan := math.NaN()
	for i := range d.data {
		d.data[i] = nan
	}

	return d, nil
}

// FromRows builds a Dense grid from equally long rows. The input is copied.
// Returns ErrDimensionMismatch when a row length differs from cols.
// Complexity: O(r*c).
func FromRows(rows [][]float64, cols int) (*Dense, error) {
	d, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, denseErrorf("FromRows", i, len(row), ErrDimensionMismatch)
		}
		copy(d.data[i*cols:(i+1)*cols], row)
	}

	return d, nil
}

// Rows returns the number of rows in the grid.
func (m *Dense) Rows() int {
	return m.r
}

// Cols returns the number of columns in the grid.
func (m *Dense) Cols() int {
	return m.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). NaN is accepted and marks a missing sample.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// SetRow overwrites row i with vals.
// Complexity: O(c).
func (m *Dense) SetRow(i int, vals []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf("SetRow", i, 0, ErrOutOfRange)
	}
	if len(vals) != m.c {
		return denseErrorf("SetRow", i, len(vals), ErrDimensionMismatch)
	}
	copy(m.data[i*m.c:(i+1)*m.c], vals)

	return nil
}

// ColComplete reports whether column j holds no NaN.
// Complexity: O(r).
func (m *Dense) ColComplete(j int) bool {
	for i := 0; i < m.r; i++ {
		if math.IsNaN(m.data[i*m.c+j]) {
			return false
		}
	}

	return true
}

// MissingInCol returns the row indices whose cell in column j is NaN,
// in ascending order.
// Complexity: O(r).
func (m *Dense) MissingInCol(j int) []int {
	var rows []int
	for i := 0; i < m.r; i++ {
		if math.IsNaN(m.data[i*m.c+j]) {
			rows = append(rows, i)
		}
	}

	return rows
}

// SelectCols returns a new grid holding only the given columns, in the given order.
// Stage 1 (Validate): every index must be in range.
// Stage 2 (Execute): copy row by row.
// Complexity: O(r*len(cols)).
func (m *Dense) SelectCols(cols []int) (*Dense, error) {
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return nil, denseErrorf("SelectCols", 0, j, ErrOutOfRange)
		}
	}
	out, err := NewDense(m.r, len(cols))
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		src := i * m.c
		dst := i * out.c
		for k, j := range cols {
			out.data[dst+k] = m.data[src+j]
		}
	}

	return out, nil
}

// Clone returns a deep copy of the grid.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// Equal reports whether both grids have the same shape and cells.
// NaN cells compare equal to NaN cells.
func (m *Dense) Equal(o *Dense) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i, v := range m.data {
		w := o.data[i]
		if math.IsNaN(v) && math.IsNaN(w) {
			continue
		}
		if v != w {
			return false
		}
	}

	return true
}
