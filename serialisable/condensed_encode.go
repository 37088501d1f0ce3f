package serialisable

import "math"

// CondensedEncodeOptions configures EncodeCondensed.
type CondensedEncodeOptions struct {
	// PreferredPrecision is the floating-point form the encoder reaches
	// for first when a Number is not exactly integral. The encoder still
	// writes a double when the value is neither exactly representable as
	// a float32 nor has its low 34 mantissa bits clear, or when the
	// magnitude is out of range for the narrower forms.
	PreferredPrecision Precision
}

// DefaultCondensedEncodeOptions returns half precision, the grammar's
// smallest floating form and its default preference.
func DefaultCondensedEncodeOptions() CondensedEncodeOptions {
	return CondensedEncodeOptions{PreferredPrecision: PrecisionHalf}
}

// EncodeCondensed renders v as condensed binary. A single ObjectShapeIndex
// pre-pass over v drives the shape-dictionary forms used for repeated
// object key-sets.
func EncodeCondensed(v Value, opts CondensedEncodeOptions) []byte {
	idx := NewObjectShapeIndex(v)
	e := &condensedEncoder{
		opts:    opts,
		idx:     idx,
		defined: map[int]bool{},
	}
	e.writeValue(v)
	return e.buf
}

type condensedEncoder struct {
	buf     []byte
	opts    CondensedEncodeOptions
	idx     *ObjectShapeIndex
	defined map[int]bool
}

func (e *condensedEncoder) writeValue(v Value) {
	switch v.Kind() {
	case KindNull:
		e.buf = append(e.buf, tagNull)
	case KindBool:
		b, _ := v.AsBool()
		if b {
			e.buf = append(e.buf, tagTrue)
		} else {
			e.buf = append(e.buf, tagFalse)
		}
	case KindNumber:
		n, _ := v.AsNumber()
		e.writeNumber(n)
	case KindString:
		s, _ := v.AsString()
		e.writeString(s)
	case KindArray:
		e.writeArray(v)
	case KindObject:
		e.writeObject(v)
	}
}

func (e *condensedEncoder) writeString(s string) {
	if len(s) < maxShortStringSize {
		e.buf = append(e.buf, tagShortString|byte(len(s)))
		e.buf = append(e.buf, s...)
		return
	}
	e.buf = append(e.buf, tagLongString)
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, tagTerminator)
}

func (e *condensedEncoder) writeNumber(n float64) {
	if i := int64(n); float64(i) == n {
		e.writeInt(i)
		return
	}
	if n == math.Trunc(n) {
		// Integral but outside int64 range (or infinite).
		e.writeFixed(tagDouble, math.Float64bits(n), 8)
		return
	}
	e.writeFloat(n)
}

func (e *condensedEncoder) writeInt(v int64) {
	switch {
	case v >= -16 && v <= 15:
		e.buf = append(e.buf, tagShortInt|(byte(v)&shortIntMask))
	case v >= -2048 && v <= 2047:
		e.buf = append(e.buf, tagMedInt|byte((v&0x0f00)>>8))
		e.buf = append(e.buf, byte(v&0xff))
	case v >= -32768 && v <= 32767:
		e.writeFixed(tagSignedShort, uint64(uint16(int16(v))), 2)
	case v >= 0 && v <= 65535:
		e.writeFixed(tagUnsignedShort, uint64(uint16(v)), 2)
	case v >= -2147483648 && v <= 2147483647:
		e.writeFixed(tagSignedInt, uint64(uint32(int32(v))), 4)
	case v >= 0 && v <= 4294967295:
		e.writeFixed(tagUnsignedInt, uint64(uint32(v)), 4)
	default:
		e.writeFixed(tagSignedLong, uint64(v), 8)
	}
}

func (e *condensedEncoder) writeFixed(tag byte, bits uint64, n int) {
	e.buf = append(e.buf, tag)
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, byte(bits>>(8*i)))
	}
}

// writeFloat implements the adaptive precision selection: double is the
// always-safe fallback; single or half are chosen only when the preference
// is not double, the magnitude is in range, and the value is exactly a
// float32 or its mantissa has enough trailing zero bits that the narrower
// form's imprecision is acceptable.
func (e *condensedEncoder) writeFloat(v float64) {
	bits := math.Float64bits(v)
	abs := math.Abs(v)

	useNarrow := false
	if abs > math.MaxFloat32 || (abs > 0 && abs < math.SmallestNonzeroFloat32) {
		useNarrow = false
	} else if e.opts.PreferredPrecision != PrecisionDouble &&
		(float64(float32(abs)) == abs || (bits&0x00000003ffffffff) == 0) {
		useNarrow = true
	}

	if !useNarrow {
		e.writeFixed(tagDouble, bits, 8)
		return
	}

	useHalf := false
	if abs > halfPrecisionMaxAbs || (abs > 0 && abs < halfPrecisionMinPos) {
		useHalf = false
	} else if e.opts.PreferredPrecision == PrecisionHalf || (bits&0x0003ffffffffffff) == 0 {
		useHalf = true
	}

	if useHalf {
		e.writeHalf(bits)
		return
	}
	e.writeFixed(tagFloat, uint64(math.Float32bits(float32(v))), 4)
}

func (e *condensedEncoder) writeHalf(bits uint64) {
	result := tagHalfFloat | byte((bits&0x8000000000000000)>>57)
	exponent := byte(((bits & 0x7ff0000000000000) >> 52) - halfFloatExponentBias)
	result |= exponent
	mantissa := byte((bits & 0x000fffffffffffff) >> 44)
	e.buf = append(e.buf, result, mantissa)
}

func (e *condensedEncoder) writeArray(v Value) {
	elems, _ := v.Elements()
	if len(elems) < maxShortArraySize {
		e.buf = append(e.buf, tagShortArray|byte(len(elems)))
		for _, el := range elems {
			e.writeValue(el)
		}
		return
	}
	e.buf = append(e.buf, tagLongArray)
	for _, el := range elems {
		e.writeValue(el)
	}
	e.buf = append(e.buf, tagTerminator)
}

func (e *condensedEncoder) writeObject(v Value) {
	entries, _ := v.Entries()
	if len(entries) == 0 {
		e.buf = append(e.buf, tagSmallUnique|0)
		return
	}

	desc, ok := shapeDescriptor(entries)
	if !ok {
		e.writeHashtable(entries)
		return
	}

	ordered := sortedEntries(entries)

	if id, found := e.idx.idFor(desc); found {
		e.writeObjectID(id)
		if !e.defined[id] {
			e.buf = append(e.buf, desc...)
			e.buf = append(e.buf, tagTerminator)
			e.defined[id] = true
		}
		for _, en := range ordered {
			e.writeValue(en.Value)
		}
		return
	}

	if len(entries) < maxSmallUniqueSize {
		e.buf = append(e.buf, tagSmallUnique|byte(len(entries)))
		e.buf = append(e.buf, desc...)
	} else {
		e.buf = append(e.buf, tagLargeUnique)
		e.buf = append(e.buf, desc...)
		e.buf = append(e.buf, tagTerminator)
	}
	for _, en := range ordered {
		e.writeValue(en.Value)
	}
}

func (e *condensedEncoder) writeObjectID(id int) {
	switch {
	case id <= maxCommonObjectID:
		e.buf = append(e.buf, tagCommonObject|byte(id))
	case id <= maxUncommonObjectID:
		e.buf = append(e.buf, tagUncommonObj, byte(id-(maxCommonObjectID+1)))
	default:
		rare := id - rareObjectIDOffset
		e.buf = append(e.buf, tagRareObj, byte(rare>>8), byte(rare&0xff))
	}
}

func (e *condensedEncoder) writeHashtable(entries []Entry) {
	e.buf = append(e.buf, tagHashtable)
	var emptyVal Value
	haveEmpty := false
	for _, en := range entries {
		if en.Key == "" {
			emptyVal = en.Value
			haveEmpty = true
			continue
		}
		e.buf = append(e.buf, en.Key...)
		e.buf = append(e.buf, tagTerminator)
	}
	if haveEmpty {
		e.buf = append(e.buf, tagTerminator)
	}
	e.buf = append(e.buf, tagTerminator)
	for _, en := range entries {
		if en.Key == "" {
			continue
		}
		e.writeValue(en.Value)
	}
	if haveEmpty {
		e.writeValue(emptyVal)
	}
}
