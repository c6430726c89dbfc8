package fit

import (
	"fmt"
	"time"

	"github.com/ridgeway-telemetry/fitdecode/profile"
)

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindTimestamp Kind = iota
	KindByte
	KindEnum
	KindSInt8
	KindUInt8
	KindSInt16
	KindUInt16
	KindSInt32
	KindUInt32
	KindSInt64
	KindUInt64
	KindUInt8z
	KindUInt16z
	KindUInt32z
	KindUInt64z
	KindFloat32
	KindFloat64
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindByte:
		return "byte"
	case KindEnum:
		return "enum"
	case KindSInt8:
		return "sint8"
	case KindUInt8:
		return "uint8"
	case KindSInt16:
		return "sint16"
	case KindUInt16:
		return "uint16"
	case KindSInt32:
		return "sint32"
	case KindUInt32:
		return "uint32"
	case KindSInt64:
		return "sint64"
	case KindUInt64:
		return "uint64"
	case KindUInt8z:
		return "uint8z"
	case KindUInt16z:
		return "uint16z"
	case KindUInt32z:
		return "uint32z"
	case KindUInt64z:
		return "uint64z"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is the tagged union every decoded field is reduced to. Exactly one
// of its internal fields is meaningful, selected by Kind. Array is permitted
// to nest and to hold mixed element kinds (the permissive reading of the
// decoder's one open design question, see DESIGN.md).
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
	t    time.Time
	arr  []Value
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

func newIntValue(k Kind, i int64) Value   { return Value{kind: k, i: i} }
func newUintValue(k Kind, u uint64) Value { return Value{kind: k, u: u} }

// NewTimestamp builds a Timestamp value.
func NewTimestamp(t time.Time) Value { return Value{kind: KindTimestamp, t: t} }

// NewByte builds a Byte value.
func NewByte(b uint8) Value { return newUintValue(KindByte, uint64(b)) }

// NewEnum builds an Enum value (the raw ordinal; see profile enum decoding
// for the human-readable name projection).
func NewEnum(e uint8) Value { return newUintValue(KindEnum, uint64(e)) }

// NewSInt8 builds a SInt8 value.
func NewSInt8(i int8) Value { return newIntValue(KindSInt8, int64(i)) }

// NewUInt8 builds a UInt8 value.
func NewUInt8(u uint8) Value { return newUintValue(KindUInt8, uint64(u)) }

// NewSInt16 builds a SInt16 value.
func NewSInt16(i int16) Value { return newIntValue(KindSInt16, int64(i)) }

// NewUInt16 builds a UInt16 value.
func NewUInt16(u uint16) Value { return newUintValue(KindUInt16, uint64(u)) }

// NewSInt32 builds a SInt32 value.
func NewSInt32(i int32) Value { return newIntValue(KindSInt32, int64(i)) }

// NewUInt32 builds a UInt32 value.
func NewUInt32(u uint32) Value { return newUintValue(KindUInt32, uint64(u)) }

// NewSInt64 builds a SInt64 value.
func NewSInt64(i int64) Value { return newIntValue(KindSInt64, i) }

// NewUInt64 builds a UInt64 value.
func NewUInt64(u uint64) Value { return newUintValue(KindUInt64, u) }

// NewUInt8z builds a UInt8z value (invalid sentinel is 0, not 0xFF).
func NewUInt8z(u uint8) Value { return newUintValue(KindUInt8z, uint64(u)) }

// NewUInt16z builds a UInt16z value.
func NewUInt16z(u uint16) Value { return newUintValue(KindUInt16z, uint64(u)) }

// NewUInt32z builds a UInt32z value.
func NewUInt32z(u uint32) Value { return newUintValue(KindUInt32z, uint64(u)) }

// NewUInt64z builds a UInt64z value.
func NewUInt64z(u uint64) Value { return newUintValue(KindUInt64z, u) }

// NewFloat32 builds a Float32 value.
func NewFloat32(f float32) Value { return Value{kind: KindFloat32, f: float64(f)} }

// NewFloat64 builds a Float64 value.
func NewFloat64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// NewString builds a String value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewArray builds an Array value from already-decoded elements.
func NewArray(elems []Value) Value { return Value{kind: KindArray, arr: elems} }

// Int returns the raw integer payload for any non-float, non-string,
// non-array, non-timestamp kind.
func (v Value) Int() int64 {
	switch v.kind {
	case KindSInt8, KindSInt16, KindSInt32, KindSInt64:
		return v.i
	default:
		return int64(v.u)
	}
}

// String returns a human-readable rendering of v, as fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindTimestamp:
		return v.t.Format(time.RFC3339)
	case KindFloat32, KindFloat64:
		return fmt.Sprintf("%v", v.f)
	case KindString:
		return v.s
	case KindArray:
		return fmt.Sprintf("%v", v.arr)
	case KindSInt8, KindSInt16, KindSInt32, KindSInt64:
		return fmt.Sprintf("%d", v.i)
	default:
		return fmt.Sprintf("%d", v.u)
	}
}

// Time returns the wrapped time.Time for a Timestamp value, or the zero time
// otherwise.
func (v Value) Time() time.Time {
	if v.kind == KindTimestamp {
		return v.t
	}
	return time.Time{}
}

// Elements returns the wrapped slice for an Array value, or nil otherwise.
func (v Value) Elements() []Value {
	if v.kind == KindArray {
		return v.arr
	}
	return nil
}

// Raw returns the string payload for a String value, or "" otherwise.
func (v Value) Raw() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// ToFloat64 coerces v to a float64. Strings and Arrays are not coercible.
func (v Value) ToFloat64() (float64, error) {
	switch v.kind {
	case KindTimestamp:
		return float64(v.t.Unix()), nil
	case KindFloat32, KindFloat64:
		return v.f, nil
	case KindString:
		return 0, newValueError(fmt.Sprintf("cannot convert %s into a float64", v))
	case KindArray:
		return 0, newValueError(fmt.Sprintf("cannot convert %s into a float64", v))
	case KindSInt8, KindSInt16, KindSInt32, KindSInt64:
		return float64(v.i), nil
	default:
		return float64(v.u), nil
	}
}

// ToInt64 coerces v to an int64. Floats, strings and arrays are not
// coercible.
func (v Value) ToInt64() (int64, error) {
	switch v.kind {
	case KindTimestamp:
		return v.t.Unix(), nil
	case KindFloat32, KindFloat64:
		return 0, newValueError(fmt.Sprintf("cannot convert %s into an int64", v))
	case KindString:
		return 0, newValueError(fmt.Sprintf("cannot convert %s into an int64", v))
	case KindArray:
		return 0, newValueError(fmt.Sprintf("cannot convert %s into an int64", v))
	case KindSInt8, KindSInt16, KindSInt32, KindSInt64:
		return v.i, nil
	default:
		return int64(v.u), nil
	}
}

// FitDataField is a profile-resolved field within a FitDataRecord.
type FitDataField struct {
	Name   string
	Number uint8
	Value  Value
	Units  string
}

func (f FitDataField) String() string {
	if f.Units == "" {
		return f.Value.String()
	}
	return fmt.Sprintf("%s %s", f.Value.String(), f.Units)
}

// FitDataRecord is one fully decoded, profile-resolved message.
type FitDataRecord struct {
	Kind   profile.MesgNum
	Fields []FitDataField
}

// FieldByNumber returns the field with the given definition number, if present.
func (r *FitDataRecord) FieldByNumber(num uint8) (FitDataField, bool) {
	for _, f := range r.Fields {
		if f.Number == num {
			return f, true
		}
	}
	return FitDataField{}, false
}

// FieldByName returns the field with the given resolved name, if present.
func (r *FitDataRecord) FieldByName(name string) (FitDataField, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FitDataField{}, false
}

func (r *FitDataRecord) push(f FitDataField) {
	r.Fields = append(r.Fields, f)
}
