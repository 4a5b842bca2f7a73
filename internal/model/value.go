package model

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
)

// ValueKind discriminates the type of a profile value.
type ValueKind int

const (
	// KindAbsent marks a value that was never supplied. It is distinct from
	// an empty string: merge never writes Absent over an existing value.
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindBool
	// KindRaw carries a JSON value we do not interpret (arrays, objects).
	// Raw values round-trip unchanged so the external services can exchange
	// fields this engine knows nothing about.
	KindRaw
)

func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is a tagged variant for heterogeneous case-profile fields.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Raw  json.RawMessage
}

// Absent returns the zero Value.
func Absent() Value {
	return Value{Kind: KindAbsent}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// NumberValue wraps a number.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// RawValue wraps an uninterpreted JSON fragment.
func RawValue(raw json.RawMessage) Value {
	return Value{Kind: KindRaw, Raw: append(json.RawMessage(nil), raw...)}
}

// IsPresent reports whether the value carries usable content. Absent values
// and empty strings count as not present; everything else does.
func (v Value) IsPresent() bool {
	switch v.Kind {
	case KindAbsent:
		return false
	case KindString:
		return v.Str != ""
	case KindRaw:
		return len(v.Raw) > 0 && string(v.Raw) != "null" && string(v.Raw) != `""`
	default:
		return true
	}
}

// Display renders the value for a human-readable table. Absent values render
// as the empty string.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindRaw:
		return string(v.Raw)
	default:
		return ""
	}
}

// MarshalJSON encodes the value as the plain JSON type it wraps.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindRaw:
		if len(v.Raw) == 0 {
			return []byte("null"), nil
		}
		return v.Raw, nil
	default:
		return nil, eris.Errorf("model: marshal unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON decodes a plain JSON value into the matching variant.
// Arrays and objects are kept raw rather than rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*v = Absent()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "model: unmarshal string value")
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return eris.Wrap(err, "model: unmarshal bool value")
		}
		*v = BoolValue(b)
	case '[', '{':
		*v = RawValue(data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return eris.Wrap(err, "model: unmarshal numeric value")
		}
		*v = NumberValue(n)
	}
	return nil
}

// Equal compares two values structurally. Raw values compare by bytes.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindRaw:
		return string(v.Raw) == string(other.Raw)
	default:
		return true
	}
}
