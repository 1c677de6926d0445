// Package ghubs models the GenomeHubs data-file config schema: field
// type declarations, constraints, and the include-merge rules that
// let one config pull in sibling configs via "needs". It is
// pure: no file reading happens here, only schema modeling and merge
// logic. internal/io/ingest owns reading the YAML and the data file
// itself.
package ghubs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldType is one of the value types a GenomeHubs field may declare.
type FieldType string

const (
	TypeByte      FieldType = "byte"
	TypeShort     FieldType = "short"
	TypeInteger   FieldType = "integer"
	TypeLong      FieldType = "long"
	TypeFloat     FieldType = "float"
	TypeHalfFloat FieldType = "half_float"
	TypeDouble    FieldType = "double"
	TypeDate      FieldType = "date"
	TypeKeyword   FieldType = "keyword"
	TypeGeoPoint  FieldType = "geo_point"
	Type1dp       FieldType = "1dp"
	Type2dp       FieldType = "2dp"
	Type3dp       FieldType = "3dp"
	Type4dp       FieldType = "4dp"
)

// numericTypes are the field types validated and reported as numbers;
// the Ndp types additionally round to N decimal places on validation.
var numericTypes = map[FieldType]bool{
	TypeByte: true, TypeShort: true, TypeInteger: true, TypeLong: true,
	TypeFloat: true, TypeHalfFloat: true, TypeDouble: true,
	Type1dp: true, Type2dp: true, Type3dp: true, Type4dp: true,
}

// IsNumeric reports whether t is validated as a number.
func (t FieldType) IsNumeric() bool { return numericTypes[t] }

// DecimalPlaces returns the number of decimal places an Ndp type
// rounds to, and false for every other type.
func (t FieldType) DecimalPlaces() (int, bool) {
	switch t {
	case Type1dp:
		return 1, true
	case Type2dp:
		return 2, true
	case Type3dp:
		return 3, true
	case Type4dp:
		return 4, true
	default:
		return 0, false
	}
}

// StringOrList unmarshals from either a single YAML scalar or a
// sequence of scalars. GenomeHubs configs use both spellings
// interchangeably for header, separator, synonyms and translate
// targets.
type StringOrList []string

func (s *StringOrList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v string
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = []string{v}
		return nil
	}
	var v []string
	if err := value.Decode(&v); err != nil {
		return err
	}
	*s = v
	return nil
}

// IntOrList is the numeric counterpart of StringOrList, used for the
// index field: one 0-based column position or a list of them.
type IntOrList []int

func (s *IntOrList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v int
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = []int{v}
		return nil
	}
	var v []int
	if err := value.Decode(&v); err != nil {
		return err
	}
	*s = v
	return nil
}

// Constraint bounds or enumerates the acceptable values of a field.
type Constraint struct {
	Min  *float64 `yaml:"min,omitempty"`
	Max  *float64 `yaml:"max,omitempty"`
	Len  *int     `yaml:"len,omitempty"`
	Enum []string `yaml:"enum,omitempty"`
}

// Bins describes the display binning of a numeric field. Consumed by
// the plotting subsystem, out of scope here; modeled so a config round
// trips without losing the field.
type Bins struct {
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
	Count *int     `yaml:"count,omitempty"`
	H3Res *int     `yaml:"h3res,omitempty"`
	Scale string   `yaml:"scale,omitempty"`
}

// Display groups the presentation hints attached to a field. Also
// consumed only by the plotting subsystem.
type Display struct {
	Group string `yaml:"group,omitempty"`
	Level *int   `yaml:"level,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// Field is one declared attribute, taxon-name, or taxonomy column.
// Header and Index are alternative ways to give the source column(s):
// a literal position list, or header-row names to be resolved into one
// (ResolveHeaderNames does the resolution; it never reads a file
// itself).
type Field struct {
	Type       FieldType               `yaml:"type,omitempty"`
	Constraint *Constraint             `yaml:"constraint,omitempty"`
	Function   string                  `yaml:"function,omitempty"`
	Header     StringOrList            `yaml:"header,omitempty"`
	Index      IntOrList               `yaml:"index,omitempty"`
	Separator  StringOrList            `yaml:"separator,omitempty"`
	Join       string                  `yaml:"join,omitempty"`
	Translate  map[string]StringOrList `yaml:"translate,omitempty"`
	Synonyms   StringOrList            `yaml:"synonyms,omitempty"`
	Default    string                  `yaml:"default,omitempty"`
	Display    *Display                `yaml:"display,omitempty"`
	Bins       *Bins                   `yaml:"bins,omitempty"`
	Status     string                  `yaml:"status,omitempty"`
}

// ResolveHeaderNames fills in f.Index by looking up f.Header against
// header, a file's header row. It is a no-op if f.Header is empty (the
// config already gave literal positions).
func ResolveHeaderNames(f *Field, header []string) error {
	if len(f.Header) == 0 {
		return nil
	}
	lookup := make(map[string]int, len(header))
	for i, h := range header {
		lookup[h] = i
	}
	positions := make([]int, 0, len(f.Header))
	for _, name := range f.Header {
		pos, ok := lookup[name]
		if !ok {
			return &HeaderNameError{Name: name}
		}
		positions = append(positions, pos)
	}
	f.Index = positions
	return nil
}

// HeaderNameError reports a configured column name absent from a
// file's header row.
type HeaderNameError struct{ Name string }

func (e *HeaderNameError) Error() string {
	return fmt.Sprintf("ghubs: column name %q not found in header row", e.Name)
}
