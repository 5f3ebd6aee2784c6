package tdif

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// ValueKind identifies which arm of Value is populated.
type ValueKind uint8

const (
	// NullKind is an absent value, encoded as an unquoted \N.
	NullKind ValueKind = iota
	// NumberKind is numeric text, encoded unquoted.
	NumberKind
	// BoolKind is true or false, encoded unquoted.
	BoolKind
	// StringKind is arbitrary text, encoded quoted and escaped.
	StringKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case NumberKind:
		return "number"
	case BoolKind:
		return "boolean"
	case StringKind:
		return "string"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single record field. The zero Value is null.
type Value struct {
	kind ValueKind
	text string
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Int returns a numeric value.
func Int(n int64) Value { return Value{kind: NumberKind, text: strconv.FormatInt(n, 10)} }

// Uint returns a numeric value.
func Uint(n uint64) Value { return Value{kind: NumberKind, text: strconv.FormatUint(n, 10)} }

// Float returns a numeric value rendered in its shortest round-trip form,
// in plain decimal notation unless its magnitude is below 1e-6 or at least 1e21.
func Float(f float64) Value { return Value{kind: NumberKind, text: formatFloat(f, 64)} }

// Number wraps text that is already a rendered number. It is written as-is,
// so the caller is responsible for it being numeric.
func Number(text string) Value { return Value{kind: NumberKind, text: text} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, text: strconv.FormatBool(b)} }

// String returns a text value.
func String(s string) Value { return Value{kind: StringKind, text: s} }

// Kind reports which arm of the value is set.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == NullKind }

// Text returns the unescaped textual form. It is empty for null.
func (v Value) Text() string { return v.text }

// String implements fmt.Stringer for debugging output.
func (v Value) String() string {
	if v.kind == NullKind {
		return "<null>"
	}
	return v.text
}

// ValueOf resolves an arbitrary Go value into a Value.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Value:
		if t == nil {
			return Null()
		}
		return *t
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case uintptr:
		return Uint(uint64(t))
	case float32:
		return Value{kind: NumberKind, text: formatFloat(float64(t), 32)}
	case float64:
		return Float(t)
	case json.Number:
		return Number(t.String())
	case *big.Int:
		if t == nil {
			return Null()
		}
		return Number(t.String())
	case *big.Float:
		if t == nil {
			return Null()
		}
		return Number(t.Text('g', -1))
	case *big.Rat:
		if t == nil {
			return Null()
		}
		return Number(t.RatString())
	case string:
		return String(t)
	case []byte:
		if t == nil {
			return Null()
		}
		return String(string(t))
	case fmt.Stringer:
		if isNilRef(reflect.ValueOf(t)) {
			return Null()
		}
		return String(t.String())
	}

	rv := reflect.ValueOf(x)
	if isNilRef(rv) {
		return Null()
	}
	if rv.Kind() == reflect.Pointer {
		return ValueOf(rv.Elem().Interface())
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32:
		return Value{kind: NumberKind, text: formatFloat(rv.Float(), 32)}
	case reflect.Float64:
		return Float(rv.Float())
	}
	return String(fmt.Sprint(x))
}

// formatFloat renders f the way encoding/json does: the shortest
// representation that round-trips at the given bit size, switching to
// exponent form outside [1e-6, 1e21) with a minimal two-digit exponent.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if format == 'e' {
		// e-07 becomes e-7
		if n := len(s); n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s
}

// isNilRef reports whether rv is a nil pointer, map, slice, func, chan or interface.
func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Values converts each element with ValueOf.
func Values(xs ...any) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = ValueOf(x)
	}
	return out
}
