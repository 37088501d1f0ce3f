// Package serialisable implements an in-memory JSON-like value model with
// two wire formats: a tolerant UTF-8 text encoding and a compact binary
// encoding ("condensed" form) that deduplicates repeated object key-sets.
package serialisable

import "math"

// Kind identifies which payload of a Value is active.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair of an Object, in insertion order.
type Entry struct {
	Key   string
	Value Value
}

type stringBox struct {
	s string
}

type arrayBox struct {
	vals []Value
}

type objectBox struct {
	entries []Entry
}

// Value is a tagged union over the six JSON kinds. It is cheap to copy: a
// copy of a Value that wraps a heap-backed kind (String, Array, Object)
// shares the same backing box. Mutating methods never touch a box in
// place; they call clone first and write through the clone, so callers
// never observe a Value change after it has been handed to them.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  *stringBox
	arr  *arrayBox
	obj  *objectBox
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64. NaN is demoted to Null, so a Number never
// observably holds NaN; infinities are stored as Numbers.
func Number(n float64) Value {
	if math.IsNaN(n) {
		return Null()
	}
	return Value{kind: KindNumber, num: n}
}

// Int wraps an integer as a Number.
func Int(n int64) Value { return Number(float64(n)) }

// Str wraps a string.
func Str(s string) Value {
	return Value{kind: KindString, str: &stringBox{s: s}}
}

// Array builds an Array Value from the given elements.
func Array(vals ...Value) Value {
	cp := make([]Value, len(vals))
	copy(cp, vals)
	return Value{kind: KindArray, arr: &arrayBox{vals: cp}}
}

// Object builds an Object Value from the given entries, preserving order.
func Object(entries ...Entry) Value {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Value{kind: KindObject, obj: &objectBox{entries: cp}}
}

// Kind reports which kind of Value this is.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// clone implements copy-on-write: Value is returned as-is for scalar
// kinds, and with a freshly-boxed copy of the backing storage for
// heap-backed kinds.
func (v Value) clone() Value {
	switch v.kind {
	case KindString:
		return Value{kind: KindString, str: &stringBox{s: v.str.s}}
	case KindArray:
		cp := make([]Value, len(v.arr.vals))
		copy(cp, v.arr.vals)
		return Value{kind: KindArray, arr: &arrayBox{vals: cp}}
	case KindObject:
		cp := make([]Entry, len(v.obj.entries))
		copy(cp, v.obj.entries)
		return Value{kind: KindObject, obj: &objectBox{entries: cp}}
	default:
		return v
	}
}

// AsBool returns the boolean payload, or WrongKind if v is not a Bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &WrongKind{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// AsNumber returns the numeric payload, or WrongKind if v is not a Number.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, &WrongKind{Want: KindNumber, Got: v.kind}
	}
	return v.num, nil
}

// AsInt truncates the numeric payload to int64.
func (v Value) AsInt() (int64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// AsString returns the string payload, or WrongKind if v is not a String.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &WrongKind{Want: KindString, Got: v.kind}
	}
	return v.str.s, nil
}

// Len returns the number of elements/entries for Array/Object, or 0 for
// other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr.vals)
	case KindObject:
		return len(v.obj.entries)
	default:
		return 0
	}
}

// Index returns the element at i of an Array.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindArray {
		return Value{}, &WrongKind{Want: KindArray, Got: v.kind}
	}
	if i < 0 || i >= len(v.arr.vals) {
		return Value{}, &Corrupt{Message: "array index out of range"}
	}
	return v.arr.vals[i], nil
}

// Elements returns a copy of an Array's backing slice.
func (v Value) Elements() ([]Value, error) {
	if v.kind != KindArray {
		return nil, &WrongKind{Want: KindArray, Got: v.kind}
	}
	cp := make([]Value, len(v.arr.vals))
	copy(cp, v.arr.vals)
	return cp, nil
}

// Append returns a new Array Value with val appended.
func (v Value) Append(val Value) (Value, error) {
	if v.kind != KindArray {
		return Value{}, &WrongKind{Want: KindArray, Got: v.kind}
	}
	out := v.clone()
	out.arr.vals = append(out.arr.vals, val)
	return out, nil
}

// Get looks up key in an Object.
func (v Value) Get(key string) (Value, error) {
	if v.kind != KindObject {
		return Value{}, &WrongKind{Want: KindObject, Got: v.kind}
	}
	for _, e := range v.obj.entries {
		if e.Key == key {
			return e.Value, nil
		}
	}
	return Value{}, &MissingKey{Key: key}
}

// Has reports whether key is present in an Object.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	for _, e := range v.obj.entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Entries returns a copy of an Object's entries in their stored order.
func (v Value) Entries() ([]Entry, error) {
	if v.kind != KindObject {
		return nil, &WrongKind{Want: KindObject, Got: v.kind}
	}
	cp := make([]Entry, len(v.obj.entries))
	copy(cp, v.obj.entries)
	return cp, nil
}

// Set returns a new Object Value with key bound to val, replacing any
// existing entry for key and otherwise appending.
func (v Value) Set(key string, val Value) (Value, error) {
	if v.kind != KindObject {
		return Value{}, &WrongKind{Want: KindObject, Got: v.kind}
	}
	out := v.clone()
	for i, e := range out.obj.entries {
		if e.Key == key {
			out.obj.entries[i].Value = val
			return out, nil
		}
	}
	out.obj.entries = append(out.obj.entries, Entry{Key: key, Value: val})
	return out, nil
}

// Equal reports structural equality, ignoring Object key order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str.s == b.str.s
	case KindArray:
		if len(a.arr.vals) != len(b.arr.vals) {
			return false
		}
		for i := range a.arr.vals {
			if !Equal(a.arr.vals[i], b.arr.vals[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj.entries) != len(b.obj.entries) {
			return false
		}
		for _, ea := range a.obj.entries {
			bv, err := b.Get(ea.Key)
			if err != nil || !Equal(ea.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
