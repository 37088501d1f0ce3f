package serialisable

import "fmt"

// Position marks a location in source text, used by ParseError.
type Position struct {
	Line   int
	Column int
	Offset int
}

// ParseError reports a textual-grammar violation at a specific position.
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("serialisable: parse error at line %d, column %d: %s",
		e.Position.Line, e.Position.Column, e.Message)
}

// UnexpectedEnd reports that input ended before a value was complete.
type UnexpectedEnd struct {
	Context string
}

func (e *UnexpectedEnd) Error() string {
	return fmt.Sprintf("serialisable: unexpected end of input: %s", e.Context)
}

// WrongKind reports that a Value accessor was called against the wrong Kind.
type WrongKind struct {
	Want Kind
	Got  Kind
}

func (e *WrongKind) Error() string {
	return fmt.Sprintf("serialisable: expected %s, got %s", e.Want, e.Got)
}

// MissingKey reports that a required object key was absent.
type MissingKey struct {
	Key string
}

func (e *MissingKey) Error() string {
	return fmt.Sprintf("serialisable: missing key %q", e.Key)
}

// UnsupportedVersion reports a binary tag this decoder does not implement.
type UnsupportedVersion struct {
	Tag byte
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("serialisable: unsupported tag 0x%02x", e.Tag)
}

// Corrupt reports input that is structurally impossible: a bare terminator
// or unrecognised tag byte in binary input, invalid base64, an unregistered
// polymorphic tag, or an out-of-range array index. Truncated input is
// reported as UnexpectedEnd instead.
type Corrupt struct {
	Message string
}

func (e *Corrupt) Error() string {
	return fmt.Sprintf("serialisable: corrupt input: %s", e.Message)
}
