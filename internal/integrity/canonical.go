package integrity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"
)

// ErrNoData is returned when an event without a data value has to be hashed
// and no verbatim data text is available.
var ErrNoData = errors.New("integrity: event has no data")

// Canonical re-serializes a JSON value the way the event store's writer does
// (a JavaScript JSON.parse followed by JSON.stringify):
//
//   - no insignificant whitespace
//   - object keys that are array indices first in ascending order, then the
//     remaining keys in the order they first appeared
//   - a repeated key keeps its first position and its last value
//   - numbers reformatted as ECMAScript Number-to-String ("1.0" -> "1",
//     "1e2" -> "100", "-0" -> "0", overflow -> null)
//   - strings escaped minimally; lone UTF-16 surrogates stay escaped
//
// Structurally equal values may still differ from their stored text (an
// escaped character versus a literal one), so verbatim data is always
// preferred.
func Canonical(raw json.RawMessage) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoData
	}

	p := &parser{data: raw}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return nil, fmt.Errorf("canonical json: unexpected data after top-level value at offset %d", p.pos)
	}

	var buf bytes.Buffer
	writeValue(&buf, v)
	return buf.Bytes(), nil
}

// object keeps insertion order; vals holds the last value seen per key.
type object struct {
	keys []string
	vals map[string]any
}

// number is an already formatted ECMAScript number.
type number string

// parser is a strict RFC 8259 reader. Strings are held as UTF-8 with lone
// surrogates encoded as 3-byte sequences (0xED 0xA0-0xBF ...), which valid
// UTF-8 never contains.
type parser struct {
	data []byte
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: "+format, append([]any{p.pos}, args...)...)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (any, error) {
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"':
		return p.str()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	case bytes.HasPrefix(p.data[p.pos:], []byte("true")):
		p.pos += 4
		return true, nil
	case bytes.HasPrefix(p.data[p.pos:], []byte("false")):
		p.pos += 5
		return false, nil
	case bytes.HasPrefix(p.data[p.pos:], []byte("null")):
		p.pos += 4
		return nil, nil
	default:
		return nil, p.errorf("invalid character %q", c)
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return p.errorf("unexpected end of input, want %q", c)
	}
	if p.data[p.pos] != c {
		return p.errorf("invalid character %q, want %q", p.data[p.pos], c)
	}
	p.pos++
	return nil
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) object() (*object, error) {
	p.pos++ // '{'
	obj := &object{vals: map[string]any{}}
	if p.peek() == '}' {
		p.pos++
		return obj, nil
	}
	for {
		if p.peek() != '"' {
			return nil, p.errorf("object key must be a string")
		}
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, seen := obj.vals[key]; !seen {
			obj.keys = append(obj.keys, key)
		}
		obj.vals[key] = v

		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) array() ([]any, error) {
	p.pos++ // '['
	arr := []any{}
	if p.peek() == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) hex4(at int) (rune, bool) {
	if at+4 > len(p.data) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(p.data[at:at+4]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func (p *parser) str() (string, error) {
	p.pos++ // opening quote
	var out []byte
	for {
		if p.pos >= len(p.data) {
			return "", p.errorf("unterminated string")
		}
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.pos++
			return string(out), nil
		case c < 0x20:
			return "", p.errorf("control character in string")
		case c == '\\':
			if p.pos+1 >= len(p.data) {
				return "", p.errorf("unterminated escape")
			}
			esc := p.data[p.pos+1]
			p.pos += 2
			switch esc {
			case '"', '\\', '/':
				out = append(out, esc)
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'u':
				cu, ok := p.hex4(p.pos)
				if !ok {
					return "", p.errorf("invalid unicode escape")
				}
				p.pos += 4
				out = p.appendCodeUnit(out, cu)
			default:
				return "", p.errorf("invalid escape %q", esc)
			}
		case c < utf8.RuneSelf:
			out = append(out, c)
			p.pos++
		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			out = utf8.AppendRune(out, r) // invalid bytes become U+FFFD
			p.pos += size
		}
	}
}

// appendCodeUnit appends one \u escape, joining a high surrogate with an
// immediately following escaped low surrogate.
func (p *parser) appendCodeUnit(out []byte, cu rune) []byte {
	if cu >= 0xD800 && cu <= 0xDBFF && p.pos+6 <= len(p.data) &&
		p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
		if lo, ok := p.hex4(p.pos + 2); ok && lo >= 0xDC00 && lo <= 0xDFFF {
			p.pos += 6
			return utf8.AppendRune(out, 0x10000+(cu-0xD800)<<10+(lo-0xDC00))
		}
	}
	if cu >= 0xD800 && cu <= 0xDFFF {
		return append(out, 0xED, 0x80|byte(cu>>6&0x3F), 0x80|byte(cu&0x3F))
	}
	return utf8.AppendRune(out, cu)
}

func (p *parser) number() (number, error) {
	start := p.pos
	digits := func() int {
		n := 0
		for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
			p.pos++
			n++
		}
		return n
	}

	if p.data[p.pos] == '-' {
		p.pos++
	}
	if p.pos < len(p.data) && p.data[p.pos] == '0' {
		p.pos++
	} else if digits() == 0 {
		return "", p.errorf("invalid number")
	}
	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		p.pos++
		if digits() == 0 {
			return "", p.errorf("invalid number")
		}
	}
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if digits() == 0 {
			return "", p.errorf("invalid number")
		}
	}

	f, err := strconv.ParseFloat(string(p.data[start:p.pos]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return "", p.errorf("invalid number: %v", err)
	}
	return number(formatNumber(f)), nil
}

// isArrayIndex reports whether key is the canonical form of an integer in
// [0, 2^32-2], which JavaScript objects enumerate before other keys.
func isArrayIndex(key string) (uint64, bool) {
	if key == "" || len(key) > 10 || (key[0] == '0' && len(key) > 1) {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > 1<<32-2 {
		return 0, false
	}
	return n, true
}

func (o *object) orderedKeys() []string {
	type indexKey struct {
		n   uint64
		key string
	}
	var indices []indexKey
	var named []string
	for _, k := range o.keys {
		if n, ok := isArrayIndex(k); ok {
			indices = append(indices, indexKey{n, k})
		} else {
			named = append(named, k)
		}
	}
	slices.SortFunc(indices, func(a, b indexKey) int {
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
		return 0
	})
	keys := make([]string, 0, len(o.keys))
	for _, ik := range indices {
		keys = append(keys, ik.key)
	}
	return append(keys, named...)
}

func writeValue(buf *bytes.Buffer, v any) {
	switch v := v.(type) {
	case *object:
		buf.WriteByte('{')
		for i, k := range v.orderedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			writeValue(buf, v.vals[k])
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, e)
		}
		buf.WriteByte(']')
	case string:
		writeString(buf, v)
	case number:
		buf.WriteString(string(v))
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	}
}

const hexDigits = "0123456789abcdef"

func writeUnicodeEscape(buf *bytes.Buffer, cu uint16) {
	buf.WriteByte('\\')
	buf.WriteByte('u')
	buf.WriteByte(hexDigits[cu>>12&0xF])
	buf.WriteByte(hexDigits[cu>>8&0xF])
	buf.WriteByte(hexDigits[cu>>4&0xF])
	buf.WriteByte(hexDigits[cu&0xF])
}

// writeString quotes s, escaping only the quote, the backslash, control
// characters and lone surrogates. Everything else, including "<", ">", "&"
// and non-ASCII text, is written as-is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			switch {
			case c < 0x20:
				writeUnicodeEscape(buf, uint16(c))
			case c == 0xED && i+2 < len(s) && s[i+1] >= 0xA0:
				writeUnicodeEscape(buf, 0xD000|uint16(s[i+1]&0x3F)<<6|uint16(s[i+2]&0x3F))
				i += 2
			default:
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
}
