package collision_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/table"
)

func mustTable(t *testing.T, temps []float64, keys []collision.Key, rows [][]float64) *collision.Table {
	t.Helper()
	d, err := table.FromRows(rows, len(temps))
	require.NoError(t, err)
	tbl, err := collision.New(temps, keys, d)
	require.NoError(t, err)
	return tbl
}

func TestNew_Validation(t *testing.T) {
	k := collision.Key{Upper: 2, Lower: 1, Partner: "H2"}
	d, err := table.FromRows([][]float64{{1, 2}}, 2)
	require.NoError(t, err)

	_, err = collision.New([]float64{20, 10}, []collision.Key{k}, d)
	assert.ErrorIs(t, err, collision.ErrBadGrid)

	_, err = collision.New([]float64{10}, []collision.Key{k}, d)
	assert.ErrorIs(t, err, collision.ErrBadGrid)

	d2, err := table.FromRows([][]float64{{1, 2}, {3, 4}}, 2)
	require.NoError(t, err)
	_, err = collision.New([]float64{10, 20}, []collision.Key{k, k}, d2)
	assert.ErrorIs(t, err, collision.ErrDuplicateKey)
}

func TestTable_IsolatedFromInputs(t *testing.T) {
	temps := []float64{10, 20}
	d, err := table.FromRows([][]float64{{1, 2}}, 2)
	require.NoError(t, err)
	k := collision.Key{Upper: 2, Lower: 1, Partner: "H2"}
	tbl, err := collision.New(temps, []collision.Key{k}, d)
	require.NoError(t, err)

	temps[0] = 99
	require.NoError(t, d.Set(0, 0, 99))
	got, _ := tbl.Lookup(k)
	assert.Equal(t, []float64{1, 2}, got)
	assert.Equal(t, []float64{10, 20}, tbl.Temperatures())
}

func TestMerge_UnionGrid(t *testing.T) {
	h2 := collision.Key{Upper: 2, Lower: 1, Partner: "H2"}
	he := collision.Key{Upper: 2, Lower: 1, Partner: "He"}
	a := mustTable(t, []float64{10, 30}, []collision.Key{h2}, [][]float64{{1, 3}})
	b := mustTable(t, []float64{20, 30}, []collision.Key{he}, [][]float64{{5, 6}})

	m, err := collision.Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, m.Temperatures())
	assert.Equal(t, []collision.Key{h2, he}, m.Keys())

	row, _ := m.Lookup(h2)
	assert.Equal(t, 1.0, row[0])
	assert.True(t, math.IsNaN(row[1]))
	assert.Equal(t, 3.0, row[2])
	assert.Equal(t, []int{2}, m.UpperLevels())
}

func TestMerge_DuplicateKey(t *testing.T) {
	k := collision.Key{Upper: 2, Lower: 1, Partner: "H2"}
	a := mustTable(t, []float64{10}, []collision.Key{k}, [][]float64{{1}})
	b := mustTable(t, []float64{20}, []collision.Key{k}, [][]float64{{2}})

	_, err := collision.Merge(a, b)
	assert.ErrorIs(t, err, collision.ErrDuplicateKey)
}

func TestSelectTemperatures(t *testing.T) {
	k := collision.Key{Upper: 2, Lower: 1, Partner: "H2"}
	tbl := mustTable(t, []float64{10, 20, 30}, []collision.Key{k}, [][]float64{{1, 2, 3}})

	s, err := tbl.SelectTemperatures([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30}, s.Temperatures())
	row, _ := s.Lookup(k)
	assert.Equal(t, []float64{1, 3}, row)
	assert.False(t, s.Equal(tbl))
	assert.True(t, tbl.Equal(tbl))

	_, err = tbl.SelectTemperatures([]int{5})
	assert.ErrorIs(t, err, table.ErrOutOfRange)
}
