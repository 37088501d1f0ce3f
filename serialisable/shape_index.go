package serialisable

import "sort"

// shapeDescriptor computes the canonical byte representation of an
// Object's key-set: keys in ASCII-ascending order, each key's final byte
// OR-ed with 0x80 as a terminator, an empty key contributing a lone 0x80.
// ok is false if any key byte is not representable (NUL or high-bit set),
// in which case the object must fall back to the hashtable form.
func shapeDescriptor(entries []Entry) (string, bool) {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)

	buf := make([]byte, 0, len(entries)*4)
	for _, key := range keys {
		if key == "" {
			buf = append(buf, stringFinalBitFlip)
			continue
		}
		for i := 0; i < len(key); i++ {
			c := key[i]
			if int8(c) <= 0 {
				return "", false
			}
			if i == len(key)-1 {
				buf = append(buf, c|stringFinalBitFlip)
			} else {
				buf = append(buf, c)
			}
		}
	}
	return string(buf), true
}

// sortedEntries returns entries ordered by ASCII-ascending key, the order
// shape-dictionary forms encode/decode their values in.
func sortedEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ObjectShapeIndex assigns short integer ids to the most frequently
// occurring object shapes in a Value tree, for use by the BinaryCodec
// encoder's shape-dictionary forms. Built once per encode via NewObjectShapeIndex,
// then consulted (read-only) while writing.
type ObjectShapeIndex struct {
	idOf map[string]int
}

// NewObjectShapeIndex walks root in pre-order, counting Object shape
// occurrences, and assigns sequential ids 0..N to shapes occurring at
// least twice, ranked by descending frequency, up to the id ceiling the
// tag grammar can address.
func NewObjectShapeIndex(root Value) *ObjectShapeIndex {
	counts := map[string]int{}
	countShapes(root, counts)

	type ranked struct {
		shape string
		count int
	}
	all := make([]ranked, 0, len(counts))
	for shape, count := range counts {
		all = append(all, ranked{shape, count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].shape < all[j].shape
	})

	idOf := map[string]int{}
	for i, r := range all {
		if r.count <= 1 {
			break
		}
		if i > maxShapeIndexID {
			break
		}
		idOf[r.shape] = i
	}
	return &ObjectShapeIndex{idOf: idOf}
}

func countShapes(v Value, counts map[string]int) {
	switch v.Kind() {
	case KindObject:
		entries, _ := v.Entries()
		if len(entries) == 0 {
			return
		}
		if desc, ok := shapeDescriptor(entries); ok {
			counts[desc]++
		}
		for _, e := range entries {
			countShapes(e.Value, counts)
		}
	case KindArray:
		elems, _ := v.Elements()
		for _, e := range elems {
			countShapes(e, counts)
		}
	}
}

// idFor returns the assigned id for shape, and whether one was assigned.
func (idx *ObjectShapeIndex) idFor(shape string) (int, bool) {
	id, ok := idx.idOf[shape]
	return id, ok
}
