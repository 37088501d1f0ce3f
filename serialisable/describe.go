package serialisable

import "encoding/base64"

// Direction tells a Describer which way data is flowing.
type Direction uint8

const (
	// DirectionSave means: read from the slot, write into the object.
	DirectionSave Direction = iota
	// DirectionLoad means: read from the object, write into the slot.
	DirectionLoad
)

// Slot is a typed binding between a struct field and a Value. Bind
// produces the Value to store under a key on save; Apply consumes a
// Value read back from a key on load.
type Slot interface {
	Bind() (Value, error)
	Apply(Value) error
}

// Describer is implemented by user types that can walk their own fields.
// field is called once per field, in a fixed order chosen by the
// implementation, regardless of dir.
type Describer interface {
	Describe(dir Direction, field func(key string, slot Slot))
}

// Save runs d's description in the save direction and returns the
// resulting Object Value.
func Save(d Describer) Value {
	var entries []Entry
	d.Describe(DirectionSave, func(key string, slot Slot) {
		v, err := slot.Bind()
		if err != nil {
			// A Bind error is surfaced as null rather than aborting the
			// walk.
			v = Null()
		}
		entries = append(entries, Entry{Key: key, Value: v})
	})
	return Object(entries...)
}

// Load runs d's description in the load direction against v, an Object
// Value. Missing keys leave their slot untouched and do not error; the
// first per-key decode error aborts the walk.
func Load(v Value, d Describer) error {
	if v.Kind() != KindObject {
		return &WrongKind{Want: KindObject, Got: v.Kind()}
	}
	var firstErr error
	d.Describe(DirectionLoad, func(key string, slot Slot) {
		if firstErr != nil {
			return
		}
		fv, err := v.Get(key)
		if err != nil {
			return // key absent: slot is left unchanged
		}
		if err := slot.Apply(fv); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

// BoolSlot binds *p to a Bool Value.
func BoolSlot(p *bool) Slot { return &boolSlot{p} }

type boolSlot struct{ p *bool }

func (s *boolSlot) Bind() (Value, error) { return Bool(*s.p), nil }
func (s *boolSlot) Apply(v Value) error {
	b, err := v.AsBool()
	if err != nil {
		return err
	}
	*s.p = b
	return nil
}

// IntSlot binds *p, any signed integer type up to 64 bits, to a Number.
func IntSlot[T int | int8 | int16 | int32 | int64](p *T) Slot { return &intSlot[T]{p} }

type intSlot[T int | int8 | int16 | int32 | int64] struct{ p *T }

func (s *intSlot[T]) Bind() (Value, error) { return Int(int64(*s.p)), nil }
func (s *intSlot[T]) Apply(v Value) error {
	n, err := v.AsInt()
	if err != nil {
		return err
	}
	*s.p = T(n)
	return nil
}

// UintSlot binds *p, any unsigned integer type up to 64 bits, to a Number.
func UintSlot[T uint | uint8 | uint16 | uint32 | uint64](p *T) Slot { return &uintSlot[T]{p} }

type uintSlot[T uint | uint8 | uint16 | uint32 | uint64] struct{ p *T }

func (s *uintSlot[T]) Bind() (Value, error) { return Number(float64(*s.p)), nil }
func (s *uintSlot[T]) Apply(v Value) error {
	n, err := v.AsNumber()
	if err != nil {
		return err
	}
	*s.p = T(n)
	return nil
}

// FloatSlot binds *p, float32 or float64, to a Number.
func FloatSlot[T float32 | float64](p *T) Slot { return &floatSlot[T]{p} }

type floatSlot[T float32 | float64] struct{ p *T }

func (s *floatSlot[T]) Bind() (Value, error) { return Number(float64(*s.p)), nil }
func (s *floatSlot[T]) Apply(v Value) error {
	n, err := v.AsNumber()
	if err != nil {
		return err
	}
	*s.p = T(n)
	return nil
}

// StringSlot binds *p to a String Value.
func StringSlot(p *string) Slot { return &stringSlot{p} }

type stringSlot struct{ p *string }

func (s *stringSlot) Bind() (Value, error) { return Str(*s.p), nil }
func (s *stringSlot) Apply(v Value) error {
	str, err := v.AsString()
	if err != nil {
		return err
	}
	*s.p = str
	return nil
}

// BytesSlot binds *p to a base64-encoded String Value, standard alphabet
// with padding.
func BytesSlot(p *[]byte) Slot { return &bytesSlot{p} }

type bytesSlot struct{ p *[]byte }

func (s *bytesSlot) Bind() (Value, error) { return Str(base64.StdEncoding.EncodeToString(*s.p)), nil }
func (s *bytesSlot) Apply(v Value) error {
	str, err := v.AsString()
	if err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return &Corrupt{Message: "invalid base64: " + err.Error()}
	}
	*s.p = decoded
	return nil
}

// ValueSlot passes *p through unchanged.
func ValueSlot(p *Value) Slot { return &valueSlot{p} }

type valueSlot struct{ p *Value }

func (s *valueSlot) Bind() (Value, error) { return *s.p, nil }
func (s *valueSlot) Apply(v Value) error  { *s.p = v; return nil }

// NullableSlot wraps inner so that a nil *p binds to Null, and a Null
// Value on load sets *p to nil instead of calling inner.
func NullableSlot[T any](p **T, inner func(*T) Slot) Slot {
	return &nullableSlot[T]{p: p, inner: inner}
}

type nullableSlot[T any] struct {
	p     **T
	inner func(*T) Slot
}

func (s *nullableSlot[T]) Bind() (Value, error) {
	if *s.p == nil {
		return Null(), nil
	}
	return s.inner(*s.p).Bind()
}

func (s *nullableSlot[T]) Apply(v Value) error {
	if v.IsNull() {
		*s.p = nil
		return nil
	}
	if *s.p == nil {
		*s.p = new(T)
	}
	return s.inner(*s.p).Apply(v)
}

// SliceSlot binds *p to an ordered Array Value, applying elemSlot to each
// element (e.g. SliceSlot(&p, func(e *int) Slot { return IntSlot(e) })).
func SliceSlot[T any](p *[]T, elemSlot func(*T) Slot) Slot {
	return &sliceSlot[T]{p: p, elemSlot: elemSlot}
}

type sliceSlot[T any] struct {
	p        *[]T
	elemSlot func(*T) Slot
}

func (s *sliceSlot[T]) Bind() (Value, error) {
	vals := make([]Value, len(*s.p))
	for i := range *s.p {
		v, err := s.elemSlot(&(*s.p)[i]).Bind()
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	return Array(vals...), nil
}

func (s *sliceSlot[T]) Apply(v Value) error {
	elems, err := v.Elements()
	if err != nil {
		return err
	}
	out := make([]T, len(elems))
	for i, ev := range elems {
		if err := s.elemSlot(&out[i]).Apply(ev); err != nil {
			return err
		}
	}
	*s.p = out
	return nil
}

// MapSlot binds *p to an Object Value keyed by the map's string keys.
func MapSlot[T any](p *map[string]T, elemSlot func(*T) Slot) Slot {
	return &mapSlot[T]{p: p, elemSlot: elemSlot}
}

type mapSlot[T any] struct {
	p        *map[string]T
	elemSlot func(*T) Slot
}

func (s *mapSlot[T]) Bind() (Value, error) {
	entries := make([]Entry, 0, len(*s.p))
	for k, v := range *s.p {
		var elem T = v
		bv, err := s.elemSlot(&elem).Bind()
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: k, Value: bv})
	}
	return Object(entries...), nil
}

func (s *mapSlot[T]) Apply(v Value) error {
	entries, err := v.Entries()
	if err != nil {
		return err
	}
	out := make(map[string]T, len(entries))
	for _, e := range entries {
		var elem T
		if err := s.elemSlot(&elem).Apply(e.Value); err != nil {
			return err
		}
		out[e.Key] = elem
	}
	*s.p = out
	return nil
}
