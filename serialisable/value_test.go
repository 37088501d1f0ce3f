package serialisable

import (
	"errors"
	"testing"
)

func TestValueAccessors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"number", Number(3.5), KindNumber},
		{"string", Str("hi"), KindString},
		{"array", Array(Int(1), Int(2)), KindArray},
		{"object", Object(Entry{"a", Int(1)}), KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Fatalf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestValueWrongKind(t *testing.T) {
	_, err := Str("x").AsBool()
	var wk *WrongKind
	if !errors.As(err, &wk) {
		t.Fatalf("expected *WrongKind, got %T", err)
	}
}

func TestObjectGetMissingKey(t *testing.T) {
	obj := Object(Entry{"a", Int(1)})
	_, err := obj.Get("b")
	if _, ok := err.(*MissingKey); !ok {
		t.Fatalf("expected *MissingKey, got %T", err)
	}
}

func TestObjectSetReplacesAndAppends(t *testing.T) {
	obj := Object(Entry{"a", Int(1)})
	updated, err := obj.Set("a", Int(2))
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := updated.mustGet("a").AsInt(); n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
	if n, _ := obj.mustGet("a").AsInt(); n != 1 {
		t.Fatalf("original object mutated: got %d, want 1", n)
	}

	appended, err := updated.Set("b", Int(3))
	if err != nil {
		t.Fatal(err)
	}
	if appended.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", appended.Len())
	}
}

func (v Value) mustGet(key string) Value {
	got, err := v.Get(key)
	if err != nil {
		panic(err)
	}
	return got
}

func TestArrayAppendDoesNotMutateOriginal(t *testing.T) {
	arr := Array(Int(1), Int(2))
	extended, err := arr.Append(Int(3))
	if err != nil {
		t.Fatal(err)
	}
	if arr.Len() != 2 {
		t.Fatalf("original array mutated: Len() = %d, want 2", arr.Len())
	}
	if extended.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", extended.Len())
	}
}

func TestNaNBecomesNull(t *testing.T) {
	nan := Number(nan())
	if !nan.IsNull() {
		t.Fatalf("Number(NaN) should be Null, got kind %v", nan.Kind())
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEqualIgnoresObjectOrder(t *testing.T) {
	a := Object(Entry{"a", Int(1)}, Entry{"b", Int(2)})
	b := Object(Entry{"b", Int(2)}, Entry{"a", Int(1)})
	if !Equal(a, b) {
		t.Fatal("expected Equal to ignore object entry order")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a := Array(Int(1), Int(2))
	b := Array(Int(1), Int(3))
	if Equal(a, b) {
		t.Fatal("expected arrays with different elements to be unequal")
	}
}
