package lines

import (
	"strconv"
	"strings"
)

// continuation is the quantum-number continuation mark some files append to cells.
const continuation = ";"

// inferColumn decides the type of one column and converts its cells.
// Stage 1: numeric columns keep their cells verbatim (int when every cell is
// an integer, float otherwise).
// Stage 2: any other column has ';' stripped, then becomes int if every
// stripped cell is an integer, else text.
// Complexity: O(len(cells)).
func inferColumn(cells []string) (Kind, []Value) {
	if allParse(cells, isInt) {
		return KindInt, convert(cells, KindInt)
	}
	if allParse(cells, isFloat) {
		return KindFloat, convert(cells, KindFloat)
	}

	stripped := make([]string, len(cells))
	for i, c := range cells {
		stripped[i] = strings.ReplaceAll(c, continuation, "")
	}
	if allParse(stripped, isInt) {
		return KindInt, convert(stripped, KindInt)
	}

	return KindText, convert(stripped, KindText)
}

func allParse(cells []string, ok func(string) bool) bool {
	for _, c := range cells {
		if !ok(c) {
			return false
		}
	}
	return true
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// convert assumes every cell already passed the check for kind.
func convert(cells []string, kind Kind) []Value {
	out := make([]Value, len(cells))
	for i, c := range cells {
		v := Value{Kind: kind}
		switch kind {
		case KindInt:
			v.Int, _ = strconv.ParseInt(c, 10, 64)
		case KindFloat:
			v.Float, _ = strconv.ParseFloat(c, 64)
		default:
			v.Text = c
		}
		out[i] = v
	}
	return out
}

// headerNames drops the leading index token, appends the trailing unit column
// and disambiguates repeated names as name.1, name.2, ...
func headerNames(tokens []string) []string {
	names := make([]string, 0, len(tokens))
	names = append(names, tokens[1:]...)
	names = append(names, ColUnit)

	count := make(map[string]int, len(names))
	for i, n := range names {
		if k := count[n]; k > 0 {
			names[i] = n + "." + strconv.Itoa(k)
		}
		count[n]++
	}
	return names
}
