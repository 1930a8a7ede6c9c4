// Package export writes critical-density curves for downstream tools.
//
// CSV output is long-form, one row per point:
//
//	level,kind,temperature,density
//	2,dense,50,2e+06
//	2,dense,100,
//
// An empty density cell (CSV) or null (JSON) marks an undefined point.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/ncrit/critical"
)

// ErrUnknownFormat is returned by Write for a format other than FormatCSV or FormatJSON.
var ErrUnknownFormat = errors.New("export: unknown format")

// Output formats accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Header is the CSV header row.
var Header = []string{"level", "kind", "temperature", "density"}

// Write dispatches to WriteCSV or WriteJSON by format. runID is only
// recorded in JSON output.
func Write(w io.Writer, format, runID string, curves []*critical.Curve) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, curves)
	case FormatJSON:
		return WriteJSON(w, runID, curves)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// WriteCSV writes curves in long form.
func WriteCSV(w io.Writer, curves []*critical.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, c := range curves {
		level := strconv.Itoa(c.Level)
		for _, p := range c.Points {
			rec := []string{level, c.Kind, formatFloat(p.Temperature), ""}
			if !p.Undefined() {
				rec[3] = formatFloat(p.Density)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

type jsonDoc struct {
	RunID  string      `json:"run_id,omitempty"`
	Curves []jsonCurve `json:"curves"`
}

type jsonCurve struct {
	Level     int         `json:"level"`
	Kind      string      `json:"kind"`
	Radiative float64     `json:"radiative"`
	Partners  []string    `json:"partners"`
	Excluded  []string    `json:"excluded,omitempty"`
	Points    []jsonPoint `json:"points"`
}

type jsonPoint struct {
	Temperature float64  `json:"temperature"`
	Density     *float64 `json:"density"` // nil when undefined
}

// WriteJSON writes a single document holding runID and every curve.
func WriteJSON(w io.Writer, runID string, curves []*critical.Curve) error {
	doc := jsonDoc{RunID: runID, Curves: make([]jsonCurve, 0, len(curves))}
	for _, c := range curves {
		jc := jsonCurve{
			Level:     c.Level,
			Kind:      c.Kind,
			Radiative: c.Radiative,
			Partners:  c.Partners,
			Excluded:  c.Excluded,
			Points:    make([]jsonPoint, len(c.Points)),
		}
		if jc.Partners == nil {
			jc.Partners = []string{}
		}
		for i, p := range c.Points {
			jc.Points[i].Temperature = p.Temperature
			if !p.Undefined() {
				d := p.Density
				jc.Points[i].Density = &d
			}
		}
		doc.Curves = append(doc.Curves, jc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
