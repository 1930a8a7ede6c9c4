package lines

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/ncrit/internal/logger"
	"github.com/katalvlaran/ncrit/source"
)

// File layout, 1-based lines.
const (
	countLine  = 1
	headerLine = 3

	// commentPrefix marks lines skipped inside the data block.
	commentPrefix = "#--"
)

// Load resolves the single line file for species in dir and parses it.
// More than one or no matching file is an error (see source.ErrAmbiguousSource
// and source.ErrMissingSource).
func Load(dir *source.Dir, species ...string) (*Table, error) {
	path, err := dir.LineFile(species...)
	if err != nil {
		return nil, err
	}
	return ParseFile(path)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed line file", "path", path, "transitions", t.Len(), "einstein", t.Einstein)
	return t, nil
}

// Parse reads a line file from r. src names the input in errors and is
// recorded on every transition.
//
// Layout:
//
//	line 1   "# <count>"
//	line 2   ignored
//	line 3   header; first token dropped, "unit" appended
//	line 4+  exactly <count> whitespace-separated rows
//
// A row with one field more than the header starts with its own index, which
// is dropped. Blank lines and lines starting with "#--" inside the data block
// are skipped and not counted. Anything after the last counted row is ignored.
func Parse(r io.Reader, src string) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}

	first, ok := next()
	if !ok {
		return nil, readError(sc, src, countLine, "missing row count line")
	}
	count, err := parseCount(first)
	if err != nil {
		return nil, parseErrorf(src, countLine, ErrMalformedLineFile, "%v", err)
	}

	if _, ok = next(); !ok {
		return nil, readError(sc, src, lineNo+1, "missing header")
	}
	header, ok := next()
	if !ok {
		return nil, readError(sc, src, headerLine, "missing header")
	}
	tokens := strings.Fields(header)
	if len(tokens) < 2 {
		return nil, parseErrorf(src, headerLine, ErrMalformedLineFile, "header has %d tokens", len(tokens))
	}
	names := headerNames(tokens)

	cells := make([][]string, len(names)) // column-major raw cells
	for rows := 0; rows < count; {
		line, ok := next()
		if !ok {
			return nil, readError(sc, src, lineNo+1, fmt.Sprintf("expected %d rows, found %d", count, rows))
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		fields := strings.Fields(trimmed)
		switch len(fields) {
		case len(names):
		case len(names) + 1:
			fields = fields[1:] // leading row index
		default:
			return nil, parseErrorf(src, lineNo, ErrMalformedLineFile,
				"row has %d fields, header has %d", len(fields), len(names))
		}
		for j, f := range fields {
			cells[j] = append(cells[j], f)
		}
		rows++
	}

	return build(src, names, cells, count)
}

// parseCount reads "<anything># <n>".
func parseCount(line string) (int, error) {
	_, after, found := strings.Cut(line, "#")
	if !found {
		return 0, fmt.Errorf("row count line %q has no '#'", line)
	}
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(after), " ", ""))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("row count %q is not a non-negative integer", strings.TrimSpace(after))
	}
	return n, nil
}

func readError(sc *bufio.Scanner, src string, line int, msg string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("lines: %s:%d: %w", src, line, err)
	}
	return parseErrorf(src, line, ErrMalformedLineFile, "%s", msg)
}

// build runs the schema pass and assembles transitions.
func build(src string, names []string, cells [][]string, rows int) (*Table, error) {
	t := &Table{Source: src, Columns: make([]Column, len(names))}
	values := make([][]Value, len(names))
	for j, name := range names {
		kind, vals := inferColumn(cells[j])
		t.Columns[j] = Column{Name: name, Kind: kind}
		values[j] = vals
	}

	index := make(map[string]int, len(names))
	for j, n := range names {
		index[n] = j
	}

	upper, err := intColumn(src, index, t.Columns, ColUpper)
	if err != nil {
		return nil, err
	}
	lower, err := intColumn(src, index, t.Columns, ColLower)
	if err != nil {
		return nil, err
	}
	einstein := -1
	for _, name := range EinsteinColumns {
		if j, ok := index[name]; ok {
			einstein = j
			break
		}
	}
	if einstein < 0 {
		return nil, fmt.Errorf("%s: %v: %w", src, EinsteinColumns, ErrMissingColumn)
	}
	if t.Columns[einstein].Kind == KindText {
		return nil, fmt.Errorf("%s: column %q is text: %w", src, names[einstein], ErrColumnType)
	}
	t.Einstein = names[einstein]

	quantum := quantumColumns(names, t.Columns, upper, lower, einstein)
	for _, j := range quantum {
		t.Quantum = append(t.Quantum, names[j])
	}

	t.Transitions = make([]Transition, rows)
	for i := 0; i < rows; i++ {
		a, _ := values[einstein][i].Number()
		tr := Transition{
			Upper:     int(values[upper][i].Int),
			Lower:     int(values[lower][i].Int),
			EinsteinA: a,
			Quantum:   make(map[string]Value, len(quantum)),
			Source:    src,
		}
		for _, j := range quantum {
			tr.Quantum[names[j]] = values[j][i]
		}
		t.Transitions[i] = tr
	}

	return t, nil
}

func intColumn(src string, index map[string]int, cols []Column, name string) (int, error) {
	j, ok := index[name]
	if !ok {
		return 0, fmt.Errorf("%s: %q: %w", src, name, ErrMissingColumn)
	}
	if cols[j].Kind != KindInt {
		return 0, fmt.Errorf("%s: column %q is %s: %w", src, name, cols[j].Kind, ErrColumnType)
	}
	return j, nil
}

// quantumColumns returns the indices of the quantum-number columns: those
// between the "quant:" and "info:" markers when both are present, otherwise
// every int or text column that is not a level, the Einstein column or a unit.
func quantumColumns(names []string, cols []Column, upper, lower, einstein int) []int {
	start, end := -1, -1
	for j, n := range names {
		switch n {
		case markerQuant:
			start = j
		case markerInfo:
			end = j
		}
	}
	var out []int
	if start >= 0 && end > start {
		for j := start + 1; j < end; j++ {
			out = append(out, j)
		}
		return out
	}

	for j, n := range names {
		if j == upper || j == lower || j == einstein || cols[j].Kind == KindFloat {
			continue
		}
		if n == ColUnit || strings.HasPrefix(n, ColUnit+".") {
			continue
		}
		out = append(out, j)
	}
	return out
}
