package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SpecKind discriminates the variants of a SpecValue.
type SpecKind int

const (
	SpecString SpecKind = iota
	SpecNumber
	SpecBool
	SpecObject
)

// SpecValue is a tagged union for product specification values: a scalar
// (string, number, bool) or a one-level-deep mapping of scalars. Using an
// explicit union instead of map[string]any keeps comparison logic in
// similarity scoring exhaustive.
type SpecValue struct {
	Kind   SpecKind
	Str    string
	Num    float64
	Bool   bool
	Object map[string]SpecValue
}

// StringSpec builds a string-valued SpecValue.
func StringSpec(s string) SpecValue { return SpecValue{Kind: SpecString, Str: s} }

// NumberSpec builds a number-valued SpecValue.
func NumberSpec(n float64) SpecValue { return SpecValue{Kind: SpecNumber, Num: n} }

// BoolSpec builds a bool-valued SpecValue.
func BoolSpec(b bool) SpecValue { return SpecValue{Kind: SpecBool, Bool: b} }

// ObjectSpec builds a nested SpecValue from scalar members.
func ObjectSpec(m map[string]SpecValue) SpecValue { return SpecValue{Kind: SpecObject, Object: m} }

// MarshalJSON encodes the underlying scalar or object directly, so stored
// specifications look like plain JSON documents.
func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SpecString:
		return json.Marshal(v.Str)
	case SpecNumber:
		return json.Marshal(v.Num)
	case SpecBool:
		return json.Marshal(v.Bool)
	case SpecObject:
		return json.Marshal(v.Object)
	default:
		return nil, fmt.Errorf("spec value: unknown kind %d", v.Kind)
	}
}

// UnmarshalJSON decodes a scalar or a one-level object. Deeper nesting and
// arrays are rejected.
func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case string:
		*v = StringSpec(t)
	case bool:
		*v = BoolSpec(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return fmt.Errorf("spec value: %w", err)
		}
		*v = NumberSpec(n)
	case map[string]any:
		obj := make(map[string]SpecValue, len(t))
		for k, member := range t {
			switch m := member.(type) {
			case string:
				obj[k] = StringSpec(m)
			case bool:
				obj[k] = BoolSpec(m)
			case json.Number:
				n, err := m.Float64()
				if err != nil {
					return fmt.Errorf("spec value %q: %w", k, err)
				}
				obj[k] = NumberSpec(n)
			default:
				return fmt.Errorf("spec value %q: nested non-scalar not supported", k)
			}
		}
		*v = ObjectSpec(obj)
	default:
		return fmt.Errorf("spec value: unsupported JSON type %T", raw)
	}
	return nil
}

// Equal reports strict equality of two spec values.
func (v SpecValue) Equal(o SpecValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case SpecString:
		return v.Str == o.Str
	case SpecNumber:
		return v.Num == o.Num
	case SpecBool:
		return v.Bool == o.Bool
	case SpecObject:
		if len(v.Object) != len(o.Object) {
			return false
		}
		for k, m := range v.Object {
			om, ok := o.Object[k]
			if !ok || !m.Equal(om) {
				return false
			}
		}
		return true
	}
	return false
}

// Matches reports tolerant equality: numbers match within 10% relative
// tolerance, strings match case-insensitively, and objects match on exact
// serialized equality.
func (v SpecValue) Matches(o SpecValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case SpecString:
		return strings.EqualFold(v.Str, o.Str)
	case SpecNumber:
		if v.Num == o.Num {
			return true
		}
		larger := math.Max(math.Abs(v.Num), math.Abs(o.Num))
		if larger == 0 {
			return true
		}
		return math.Abs(v.Num-o.Num)/larger <= 0.1
	case SpecBool:
		return v.Bool == o.Bool
	case SpecObject:
		return v.canonical() == o.canonical()
	}
	return false
}

// canonical returns a stable serialized form of an object value.
func (v SpecValue) canonical() string {
	keys := make([]string, 0, len(v.Object))
	for k := range v.Object {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v.Object[k].scalarString())
		b.WriteByte(';')
	}
	return b.String()
}

// scalarString renders a scalar value as text; objects render via canonical.
func (v SpecValue) scalarString() string {
	switch v.Kind {
	case SpecString:
		return v.Str
	case SpecNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(v.Bool)
	case SpecObject:
		return v.canonical()
	}
	return ""
}

// ScalarStrings returns the textual forms of this value's scalars: the value
// itself for scalar kinds, or each member for one-level objects.
func (v SpecValue) ScalarStrings() []string {
	if v.Kind == SpecObject {
		out := make([]string, 0, len(v.Object))
		for _, m := range v.Object {
			if m.Kind != SpecObject {
				out = append(out, m.scalarString())
			}
		}
		return out
	}
	return []string{v.scalarString()}
}
