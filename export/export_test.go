package export_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncrit/critical"
	"github.com/katalvlaran/ncrit/export"
)

func sample() []*critical.Curve {
	return []*critical.Curve{
		{
			Level:     2,
			Kind:      "dense",
			Radiative: 1e-4,
			Partners:  []string{"H2"},
			Points: []critical.Point{
				{Temperature: 50, Density: 2e6},
				{Temperature: 100, Density: math.NaN()},
			},
		},
		{
			Level:    3,
			Kind:     "diffuse",
			Excluded: []string{"e"},
			Points:   []critical.Point{{Temperature: 50, Density: 1.5e4}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sample()))

	want := "level,kind,temperature,density\n" +
		"2,dense,50,2e+06\n" +
		"2,dense,100,\n" +
		"3,diffuse,50,15000\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))
	assert.Equal(t, "level,kind,temperature,density\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, "run-1", sample()))

	var doc struct {
		RunID  string `json:"run_id"`
		Curves []struct {
			Level    int      `json:"level"`
			Kind     string   `json:"kind"`
			Partners []string `json:"partners"`
			Excluded []string `json:"excluded"`
			Points   []struct {
				Temperature float64  `json:"temperature"`
				Density     *float64 `json:"density"`
			} `json:"points"`
		} `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "run-1", doc.RunID)
	require.Len(t, doc.Curves, 2)
	first := doc.Curves[0]
	assert.Equal(t, 2, first.Level)
	require.Len(t, first.Points, 2)
	require.NotNil(t, first.Points[0].Density)
	assert.Equal(t, 2e6, *first.Points[0].Density)
	assert.Nil(t, first.Points[1].Density, "undefined density is null")

	assert.Equal(t, []string{}, doc.Curves[1].Partners)
	assert.Equal(t, []string{"e"}, doc.Curves[1].Excluded)
	assert.Contains(t, buf.String(), `"density": null`)
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, "RUN42", sample()))
	assert.NotContains(t, buf.String(), "RUN42", "CSV carries no run id")

	buf.Reset()
	require.NoError(t, export.Write(&buf, export.FormatJSON, "abc", sample()))
	assert.Contains(t, buf.String(), `"run_id": "abc"`)

	err := export.Write(&buf, "xml", "", sample())
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}
