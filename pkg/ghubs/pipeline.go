package ghubs

import (
	"regexp"
	"strconv"
	"strings"
)

const sentinelNone = "None"

// Extract selects row's values at positions. If join is non-empty the
// selected values are concatenated into one string with it; otherwise
// each selected column is carried forward as its own value.
func Extract(row []string, positions []int, join string) []string {
	var out []string
	for _, pos := range positions {
		if pos < 0 || pos >= len(row) {
			continue
		}
		out = append(out, row[pos])
	}
	if join != "" {
		return []string{strings.Join(out, join)}
	}
	return out
}

// ApplyTranslate maps raw through f.Translate, expanding to multiple
// values when the map targets a list longer than one. Values absent
// from the map pass through unchanged.
func ApplyTranslate(translate map[string]StringOrList, raw string) []string {
	if repl, ok := translate[raw]; ok {
		return append([]string(nil), repl...)
	}
	return []string{raw}
}

// ApplySeparator splits each value in values by every regex in
// separators, in order, flattening the result. A value is left intact
// if no separator matches it.
func ApplySeparator(separators []string, values []string) ([]string, error) {
	if len(separators) == 0 {
		return values, nil
	}
	cur := values
	for _, pattern := range separators {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		var next []string
		for _, v := range cur {
			for _, piece := range re.Split(v, -1) {
				if piece != "" {
					next = append(next, piece)
				}
			}
		}
		cur = next
	}
	return cur, nil
}

// ApplyFunction evaluates function (a pure arithmetic expression with
// one "{}" placeholder) once per value, substituting the value parsed
// as a float64. Non-numeric values, or an empty function, pass through
// unchanged.
func ApplyFunction(function string, values []string) []string {
	if function == "" {
		return values
	}
	out := make([]string, len(values))
	for i, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			out[i] = v
			continue
		}
		expr := strings.ReplaceAll(function, "{}", strconv.FormatFloat(n, 'f', -1, 64))
		result, err := evalArithmetic(expr)
		if err != nil {
			out[i] = v
			continue
		}
		out[i] = strconv.FormatFloat(result, 'f', -1, 64)
	}
	return out
}

// Validate numeric-parses and bounds-checks each value per f's
// declared type and constraint. A failing value is replaced by the
// "None" sentinel rather than aborting the row.
func Validate(f Field, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = validateOne(f, v)
	}
	return out
}

func validateOne(f Field, v string) string {
	if v == sentinelNone || v == "" {
		return sentinelNone
	}
	if dp, ok := f.Type.DecimalPlaces(); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sentinelNone
		}
		if !withinConstraint(f.Constraint, n) {
			return sentinelNone
		}
		scale := 1.0
		for i := 0; i < dp; i++ {
			scale *= 10
		}
		rounded := float64(int64(n*scale+0.5)) / scale
		return strconv.FormatFloat(rounded, 'f', dp, 64)
	}
	if f.Type.IsNumeric() {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sentinelNone
		}
		if !withinConstraint(f.Constraint, n) {
			return sentinelNone
		}
		return v
	}
	// keyword, date, geo_point: length/enum constraints only.
	if f.Constraint != nil {
		if f.Constraint.Len != nil && len(v) != *f.Constraint.Len {
			return sentinelNone
		}
		if len(f.Constraint.Enum) > 0 && !contains(f.Constraint.Enum, v) {
			return sentinelNone
		}
	}
	return v
}

func withinConstraint(c *Constraint, n float64) bool {
	if c == nil {
		return true
	}
	if c.Min != nil && n < *c.Min {
		return false
	}
	if c.Max != nil && n > *c.Max {
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Process runs the full pipeline for one field against one row:
// extract, translate, separator-split, function, validate, then joins
// the surviving values with ";" for downstream emission.
func Process(f Field, row []string) (string, error) {
	extracted := Extract(row, f.Index, f.Join)
	if len(extracted) == 0 {
		if f.Default != "" {
			return f.Default, nil
		}
		return sentinelNone, nil
	}

	var translated []string
	for _, raw := range extracted {
		translated = append(translated, ApplyTranslate(f.Translate, raw)...)
	}

	split, err := ApplySeparator(f.Separator, translated)
	if err != nil {
		return "", err
	}

	withFn := ApplyFunction(f.Function, split)
	validated := Validate(f, withFn)

	return strings.Join(validated, ";"), nil
}
