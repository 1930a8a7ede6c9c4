package lines

import (
	"strconv"
	"strings"
)

// Well-known column names.
const (
	ColUpper = "nu"
	ColLower = "nl"
	ColUnit  = "unit"

	// markerQuant and markerInfo bracket the quantum-number columns.
	markerQuant = "quant:"
	markerInfo  = "info:"
)

// EinsteinColumns lists the accepted spellings of the Einstein A header,
// in lookup order. The first one present in a file wins.
var EinsteinColumns = []string{"Aij(s-1)", "Aein(s-1)"}

// Kind is the inferred type of a column.
type Kind int

const (
	// KindInt marks a column whose every cell is an integer.
	KindInt Kind = iota
	// KindFloat marks a numeric column with at least one non-integer cell.
	KindFloat
	// KindText marks a column kept as text after ';' stripping.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// Column is one entry of a table schema.
type Column struct {
	Name string
	Kind Kind
}

// Value is a typed cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
}

// String renders the cell the way it would appear in the source file.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return v.Text
	}
}

// Number returns the numeric value of an int or float cell.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Transition is one radiative transition of a species.
type Transition struct {
	Upper     int              // upper level index
	Lower     int              // lower level index
	EinsteinA float64          // spontaneous decay rate, s⁻¹
	Quantum   map[string]Value // quantum numbers by column name
	Source    string           // originating file
}

// Table is the parsed content of one line file.
type Table struct {
	Source      string
	Columns     []Column
	Einstein    string // header spelling of the Einstein column
	Quantum     []string
	Transitions []Transition
}

// Len returns the number of transitions.
func (t *Table) Len() int { return len(t.Transitions) }

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// UpperLevels returns the distinct upper levels in first-seen order.
func (t *Table) UpperLevels() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, tr := range t.Transitions {
		if _, ok := seen[tr.Upper]; ok {
			continue
		}
		seen[tr.Upper] = struct{}{}
		out = append(out, tr.Upper)
	}
	return out
}

// LevelQuantumNumbers returns the upper-level quantum numbers (columns whose
// name contains "u") of the first transition leaving level. It returns nil
// when the level is unknown.
func (t *Table) LevelQuantumNumbers(level int) map[string]Value {
	for _, tr := range t.Transitions {
		if tr.Upper != level {
			continue
		}
		out := make(map[string]Value)
		for name, v := range tr.Quantum {
			if strings.Contains(name, "u") {
				out[name] = v
			}
		}
		return out
	}
	return nil
}
