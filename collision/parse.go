package collision

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/ncrit/internal/logger"
	"github.com/katalvlaran/ncrit/source"
	"github.com/katalvlaran/ncrit/table"
)

// Preamble layout, 1-based lines.
const (
	preambleLines = 8
	nrowsLine     = 4
	headerLine    = 8

	// fixed index columns preceding the temperatures
	indexCols = 2
)

// Load parses every collision file matching any of species in dir and merges
// them into one table.
func Load(dir *source.Dir, species ...string) (*Table, error) {
	paths, err := dir.CollisionFiles(species...)
	if err != nil {
		return nil, err
	}
	t, err := ParseFiles(paths...)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded collision rates",
		"files", len(paths), "rows", t.Len(), "partners", t.Partners(), "temperatures", len(t.temps))
	return t, nil
}

// ParseFiles parses each path and merges the results.
func ParseFiles(paths ...string) (*Table, error) {
	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		t, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return Merge(tables...)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("collision: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed collision file", "path", path, "rows", t.Len(), "temperatures", len(t.temps))
	return t, nil
}

// PartnerFromPath extracts the collision partner from a file name: the second
// '_'-separated token of the base name, extension removed
// ("rates_H2_co.dat" → "H2").
func PartnerFromPath(path string) (string, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "", malformed(path, 0, "file name %q has no partner token", filepath.Base(path))
	}
	return parts[1], nil
}

// Parse reads one collision file. path names the input in errors and yields
// the partner (see PartnerFromPath).
//
// Layout:
//
//	lines 1-7   preamble; line 4 holds the row count
//	line 8      temperature grid
//	line 9+     rows "nu nl r(T1) ... r(Tk)", optionally led by an index column
//
// Blank lines and lines starting with '!' or '#' after the header are skipped
// and not counted. Reading stops after the declared number of rows.
func Parse(r io.Reader, path string) (*Table, error) {
	partner, err := PartnerFromPath(path)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}
	eof := func(want string) error {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("collision: %s: %w", path, err)
		}
		return malformed(path, lineNo+1, "unexpected end of file, expected %s", want)
	}

	nrows := -1
	var temps []float64
	for i := 1; i <= preambleLines; i++ {
		line, ok := next()
		if !ok {
			return nil, eof("preamble")
		}
		switch i {
		case nrowsLine:
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < 0 {
				return nil, malformed(path, i, "row count %q is not a non-negative integer", strings.TrimSpace(line))
			}
			nrows = n
		case headerLine:
			temps, err = parseGrid(path, i, line)
			if err != nil {
				return nil, err
			}
		}
	}

	width := indexCols + len(temps)
	keys := make([]Key, 0, nrows)
	rows := make([][]float64, 0, nrows)
	seen := make(map[Key]int, nrows)
	for len(keys) < nrows {
		line, ok := next()
		if !ok {
			return nil, eof(fmt.Sprintf("%d rows, found %d", nrows, len(keys)))
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '!' || trimmed[0] == '#' {
			continue
		}
		fields := strings.Fields(trimmed)
		switch len(fields) {
		case width:
		case width + 1:
			fields = fields[1:] // leading row index
		default:
			return nil, malformed(path, lineNo, "row has %d fields, header implies %d", len(fields), width)
		}

		nu, err1 := strconv.Atoi(fields[0])
		nl, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, malformed(path, lineNo, "levels %q %q are not integers", fields[0], fields[1])
		}
		key := Key{Upper: nu, Lower: nl, Partner: partner}
		if prev, dup := seen[key]; dup {
			return nil, malformed(path, lineNo, "%v repeats line %d", key, prev)
		}
		seen[key] = lineNo

		vals := make([]float64, len(temps))
		for j, f := range fields[indexCols:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, malformed(path, lineNo, "rate %q at T=%g is not a number", f, temps[j])
			}
			vals[j] = v
		}
		keys = append(keys, key)
		rows = append(rows, vals)
	}

	dense, err := table.FromRows(rows, len(temps))
	if err != nil {
		return nil, fmt.Errorf("collision: %s: %w", path, err)
	}
	// sort columns once so that Merge and New see an ascending grid
	order := ascending(temps)
	sorted := make([]float64, len(temps))
	for k, j := range order {
		sorted[k] = temps[j]
	}
	dense, err = dense.SelectCols(order)
	if err != nil {
		return nil, fmt.Errorf("collision: %s: %w", path, err)
	}

	return New(sorted, keys, dense)
}

// parseGrid reads the temperature header. Every token must be a finite float
// and no temperature may repeat.
func parseGrid(path string, line int, text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, malformed(path, line, "temperature header is empty")
	}
	temps := make([]float64, len(fields))
	seen := make(map[float64]struct{}, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, malformed(path, line, "temperature %q is not a number", f)
		}
		if _, dup := seen[v]; dup {
			return nil, malformed(path, line, "temperature %g appears twice", v)
		}
		seen[v] = struct{}{}
		temps[j] = v
	}
	return temps, nil
}
