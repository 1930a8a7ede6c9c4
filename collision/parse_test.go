package collision_test

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/source"
)

// rateFile renders a collision file with the standard 8-line preamble.
func rateFile(nrows, header string, rows ...string) string {
	var b strings.Builder
	b.WriteString("!MOLECULE\nCO\n!NUMBER OF COLL TRANS\n")
	b.WriteString(nrows + "\n")
	b.WriteString("!NUMBER OF COLL TEMPS\n3\n!COLL TEMPS\n")
	b.WriteString(header + "\n")
	b.WriteString("!TRANS + UP + LOW + COLLRATES(cm^3 s^-1)\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

func TestParse_Basic(t *testing.T) {
	in := rateFile("2", "  100.0  10.0  50.0",
		"2 1 3.0e-11 1.0e-11 2.0e-11",
		"",
		"3 1 6.0e-11 4.0e-11 5.0e-11",
		"9 9 1 1 1", // past nrows, ignored
	)
	tbl, err := collision.Parse(strings.NewReader(in), "data/rates_H2_co.dat")
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 50, 100}, tbl.Temperatures(), "columns sorted ascending")
	require.Equal(t, 2, tbl.Len())

	k, row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, collision.Key{Upper: 2, Lower: 1, Partner: "H2"}, k)
	assert.Equal(t, []float64{1e-11, 2e-11, 3e-11}, row)

	v, ok := tbl.Rate(collision.Key{Upper: 3, Lower: 1, Partner: "H2"}, 50)
	require.True(t, ok)
	assert.Equal(t, 5e-11, v)

	_, ok = tbl.Rate(collision.Key{Upper: 3, Lower: 1, Partner: "H2"}, 75)
	assert.False(t, ok)
	assert.True(t, tbl.Complete())
}

func TestParse_LeadingIndexColumnDropped(t *testing.T) {
	in := rateFile("2", "10 20",
		"1 2 1 1e-10 2e-10",
		"2 3 1 3e-10 4e-10",
	)
	tbl, err := collision.Parse(strings.NewReader(in), "rates_e_co.dat")
	require.NoError(t, err)

	got, ok := tbl.Lookup(collision.Key{Upper: 3, Lower: 1, Partner: "e"})
	require.True(t, ok)
	assert.Equal(t, []float64{3e-10, 4e-10}, got)
}

func TestParse_NaNCellKept(t *testing.T) {
	in := rateFile("1", "10 20 30", "2 1 1e-10 NaN 3e-10")
	tbl, err := collision.Parse(strings.NewReader(in), "rates_H_co.dat")
	require.NoError(t, err)

	v, ok := tbl.Rate(collision.Key{Upper: 2, Lower: 1, Partner: "H"}, 20)
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
	assert.False(t, tbl.Complete())
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		path string
	}{
		{"ShortPreamble", "a\nb\nc\n", "rates_H2_co.dat"},
		{"NonIntegerCount", rateFile("two", "10 20", "2 1 1 2"), "rates_H2_co.dat"},
		{"EmptyHeader", rateFile("1", "   ", "2 1"), "rates_H2_co.dat"},
		{"TextHeader", rateFile("1", "nu nl 10 20", "2 1 1 2"), "rates_H2_co.dat"},
		{"RepeatedTemperature", rateFile("1", "10 10", "2 1 1 2"), "rates_H2_co.dat"},
		{"Misaligned", rateFile("1", "10 20", "2 1 1"), "rates_H2_co.dat"},
		{"TooWide", rateFile("1", "10 20", "0 0 2 1 1 2"), "rates_H2_co.dat"},
		{"TextLevel", rateFile("1", "10 20", "x 1 1 2"), "rates_H2_co.dat"},
		{"TextRate", rateFile("1", "10 20", "2 1 1 fast"), "rates_H2_co.dat"},
		{"TooFewRows", rateFile("3", "10 20", "2 1 1 2"), "rates_H2_co.dat"},
		{"DuplicateRow", rateFile("2", "10 20", "2 1 1 2", "2 1 3 4"), "rates_H2_co.dat"},
		{"NoPartner", rateFile("1", "10 20", "2 1 1 2"), "co.dat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := collision.Parse(strings.NewReader(tc.in), tc.path)
			require.ErrorIs(t, err, collision.ErrMalformedCollisionFile)

			var mf *collision.MalformedFileError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tc.path, mf.Path)
		})
	}
}

func TestPartnerFromPath(t *testing.T) {
	cases := map[string]string{
		"/data/Collisions/rates_H2_co.dat": "H2",
		"coll_oH2_12c16o_dat":              "oH2",
		"x_e.dat":                          "e",
	}
	for path, want := range cases {
		got, err := collision.PartnerFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestLoad_MergesPartners(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, source.DefaultCollisionsDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("rates_H2_co.dat", rateFile("1", "10 20", "2 1 1e-10 2e-10"))
	write("rates_He_co.dat", rateFile("1", "20 40", "2 1 5e-11 6e-11"))
	write("rates_H2_cs.dat", rateFile("1", "10", "2 1 9"))

	d, err := source.NewDir(root)
	require.NoError(t, err)

	tbl, err := collision.Load(d, "co")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 40}, tbl.Temperatures())
	assert.Equal(t, []string{"H2", "He"}, tbl.Partners())

	he, ok := tbl.Lookup(collision.Key{Upper: 2, Lower: 1, Partner: "He"})
	require.True(t, ok)
	assert.True(t, math.IsNaN(he[0]))
	assert.Equal(t, []float64{5e-11, 6e-11}, he[1:])

	_, err = collision.Load(d, "hcn")
	assert.ErrorIs(t, err, source.ErrMissingSource)
}

func TestLoad_MalformedAborts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, source.DefaultCollisionsDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rates_H2_co.dat"),
		[]byte(rateFile("1", "10", "2 1 1e-10")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rates_He_co.dat"),
		[]byte(rateFile("?", "10", "2 1 1e-10")), 0o644))

	d, err := source.NewDir(root)
	require.NoError(t, err)
	_, err = collision.Load(d, "co")
	require.ErrorIs(t, err, collision.ErrMalformedCollisionFile)
	assert.Contains(t, err.Error(), "rates_He_co.dat")
}

func ExamplePartnerFromPath() {
	p, _ := collision.PartnerFromPath("Collisions/rates_oH2_co.dat")
	fmt.Println(p)
	// Output: oH2
}
