// Package serialisable models JSON-shaped data as a single tagged Value
// type with two interchangeable wire formats: tolerant UTF-8 text and a
// compact "condensed" binary form that deduplicates repeated object
// key-sets through a shape dictionary.
//
// A Value is built with Null, Bool, Number, Str, Array, and Object, read
// back with the As* accessors and Get/Index, and compared structurally
// with Equal. DecodeText/EncodeText implement the textual codec;
// DecodeCondensed/EncodeCondensed implement the binary one. User types
// that want to serialise themselves implement Describer and go through
// Save/Load rather than encoding a Value by hand.
package serialisable
