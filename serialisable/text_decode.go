package serialisable

import (
	"fmt"
	"strconv"
	"strings"
)

// textDecoder is a recursive-descent reader over a byte slice. It tracks
// line/column purely for error reporting; the grammar itself never looks
// back.
type textDecoder struct {
	data []byte
	pos  int
	line int
	col  int
}

// DecodeText parses a single Value from UTF-8 JSON-like text. Whitespace
// between tokens (space, tab, newline, and comma) is skipped uniformly;
// commas are not treated as separators with their own grammar role.
func DecodeText(data []byte) (Value, error) {
	d := &textDecoder{data: data, line: 1, col: 1}
	d.skipWhitespace()
	v, err := d.readValue()
	if err != nil {
		return Value{}, err
	}
	d.skipWhitespace()
	if d.pos != len(d.data) {
		return Value{}, d.errorf("trailing data after value")
	}
	return v, nil
}

func (d *textDecoder) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: Position{Line: d.line, Column: d.col, Offset: d.pos},
	}
}

func (d *textDecoder) peek() (byte, bool) {
	if d.pos >= len(d.data) {
		return 0, false
	}
	return d.data[d.pos], true
}

func (d *textDecoder) advance() byte {
	c := d.data[d.pos]
	d.pos++
	if c == '\n' {
		d.line++
		d.col = 1
	} else {
		d.col++
	}
	return c
}

// skipWhitespace consumes spaces, tabs, newlines, and commas, which are
// all treated as insignificant separators.
func (d *textDecoder) skipWhitespace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r', ',':
			d.advance()
		default:
			return
		}
	}
}

func (d *textDecoder) readValue() (Value, error) {
	c, ok := d.peek()
	if !ok {
		return Value{}, &UnexpectedEnd{Context: "expected value"}
	}
	switch {
	case c == '{':
		return d.readObject()
	case c == '[':
		return d.readArray()
	case c == '"':
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	case c == 't' || c == 'f':
		return d.readBool()
	case c == 'n':
		return d.readNull()
	case c == '-' || (c >= '0' && c <= '9'):
		return d.readNumber()
	default:
		return Value{}, d.errorf("unexpected character %q", c)
	}
}

func (d *textDecoder) readObject() (Value, error) {
	d.advance() // '{'
	var entries []Entry
	d.skipWhitespace()
	for {
		c, ok := d.peek()
		if !ok {
			return Value{}, &UnexpectedEnd{Context: "object"}
		}
		if c == '}' {
			d.advance()
			return Object(entries...), nil
		}
		if c != '"' {
			return Value{}, d.errorf("expected string key, got %q", c)
		}
		key, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		d.skipWhitespace()
		c, ok = d.peek()
		if !ok {
			return Value{}, &UnexpectedEnd{Context: "object, expected ':'"}
		}
		if c != ':' {
			return Value{}, d.errorf("expected ':' after key, got %q", c)
		}
		d.advance()
		d.skipWhitespace()
		val, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
		d.skipWhitespace()
	}
}

func (d *textDecoder) readArray() (Value, error) {
	d.advance() // '['
	var vals []Value
	d.skipWhitespace()
	for {
		c, ok := d.peek()
		if !ok {
			return Value{}, &UnexpectedEnd{Context: "array"}
		}
		if c == ']' {
			d.advance()
			return Array(vals...), nil
		}
		v, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		vals = append(vals, v)
		d.skipWhitespace()
	}
}

// readString decodes a double-quoted string. Recognised escapes are
// \", \n, \\; any other backslash-prefixed byte is consumed and emitted
// literally (the backslash is dropped).
func (d *textDecoder) readString() (string, error) {
	d.advance() // opening quote
	var b strings.Builder
	for {
		c, ok := d.peek()
		if !ok {
			return "", &UnexpectedEnd{Context: "string"}
		}
		if c == '"' {
			d.advance()
			return b.String(), nil
		}
		if c == '\\' {
			d.advance()
			esc, ok := d.peek()
			if !ok {
				return "", &UnexpectedEnd{Context: "string escape"}
			}
			switch esc {
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(esc)
			}
			d.advance()
			continue
		}
		b.WriteByte(c)
		d.advance()
	}
}

func (d *textDecoder) readBool() (Value, error) {
	if d.matchLiteral("true") {
		return Bool(true), nil
	}
	if d.matchLiteral("false") {
		return Bool(false), nil
	}
	return Value{}, d.errorf("invalid literal")
}

func (d *textDecoder) readNull() (Value, error) {
	if d.matchLiteral("null") {
		return Null(), nil
	}
	return Value{}, d.errorf("invalid literal")
}

func (d *textDecoder) matchLiteral(lit string) bool {
	if d.pos+len(lit) > len(d.data) {
		return false
	}
	if string(d.data[d.pos:d.pos+len(lit)]) != lit {
		return false
	}
	for range lit {
		d.advance()
	}
	return true
}

func (d *textDecoder) readNumber() (Value, error) {
	start := d.pos
	if c, ok := d.peek(); ok && c == '-' {
		d.advance()
	}
	for {
		c, ok := d.peek()
		if !ok {
			break
		}
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			d.advance()
			continue
		}
		break
	}
	text := string(d.data[start:d.pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, d.errorf("invalid number %q", text)
	}
	return Number(n), nil
}
