// Package lexer implements byte-level reading of PDF tokens and objects
// from a tape.Tape: header, numbers, names, literal and hex strings,
// arrays, dictionaries, streams, and indirect-object bodies. reload's
// "pull another chunk and keep going" discipline makes the buffer a
// chunked parser that rebuilds its state from successive reads against
// the tape, rather than requiring the whole input up front.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/erantapaa/pdfnursery/object"
	"github.com/erantapaa/pdfnursery/pdferr"
	"github.com/erantapaa/pdfnursery/tape"
)

// chunkSize is the increment reload pulls from the tape each time the
// current buffer runs dry.
const chunkSize = 4096

// A token is a PDF token: bool, int64, float64, string (a Bytes-to-be),
// keyword, or object.Name.
type token any

// A keyword is a PDF keyword or structural delimiter ("<<", ">>", "[",
// "]", "stream", "endobj", "R", ...).
type keyword string

// Keyword is the exported name for keyword, for packages (xref) that
// need to compare tokens returned by ReadToken against literal
// keywords such as "xref" or "trailer".
type Keyword = keyword

// tokenEOF marks a clean end of input returned by ReadToken once the
// buffer has seen the tape run dry mid-token-scan.
type eofToken struct{}

var tokenEOF token = eofToken{}

func isEOFToken(t token) bool {
	_, ok := t.(eofToken)
	return ok
}

// Buffer reads tokens and objects out of a tape.Tape, maintaining its
// own small read-ahead window refilled in chunkSize increments.
type Buffer struct {
	t        *tape.Tape
	buf      []byte
	pos      int
	base     int64 // tape offset corresponding to buf[0]
	tmp    []byte
	unread []token
	eof    bool
}

// New returns a Buffer reading forward from the tape's current position.
func New(t *tape.Tape) *Buffer {
	t.Face(tape.Forward)
	return &Buffer{t: t, base: t.GetSeek()}
}

// SeekTo repositions the tape (and the buffer's read-ahead window) to an
// absolute offset, discarding any buffered lookahead.
func (b *Buffer) SeekTo(offset int64) error {
	if err := b.t.Seek(offset); err != nil {
		return err
	}
	b.t.Face(tape.Forward)
	b.buf = nil
	b.pos = 0
	b.base = offset
	b.eof = false
	b.unread = nil
	return nil
}

// Offset returns the tape offset of the next byte Buffer will read.
func (b *Buffer) Offset() int64 {
	return b.base + int64(b.pos)
}

func (b *Buffer) readByte() (byte, error) {
	if b.pos >= len(b.buf) {
		ok, err := b.reload()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
	}
	c := b.buf[b.pos]
	b.pos++
	return c, nil
}

// reload pulls the next chunkSize bytes from the tape. An empty chunk
// marks b.eof; readByte then keeps returning a NUL byte (which isSpace
// accepts) past EOF so delimiter-scanning loops (name, keyword, string)
// still terminate.
func (b *Buffer) reload() (bool, error) {
	b.base += int64(len(b.buf))
	chunk, err := b.t.Get(chunkSize)
	if err != nil {
		return false, pdferr.NewTapeIOError(err)
	}
	b.buf = chunk
	b.pos = 0
	if len(chunk) == 0 {
		b.eof = true
		return false, nil
	}
	return true, nil
}

func (b *Buffer) unreadByte() {
	if b.pos > 0 {
		b.pos--
	}
}

func (b *Buffer) unreadToken(t token) {
	b.unread = append(b.unread, t)
}

// UnreadToken pushes a previously read token back, so the next
// ReadToken call returns it again.
func (b *Buffer) UnreadToken(t token) {
	b.unreadToken(t)
}

// parseError builds a *pdferr.ParseError for where, with context err.
func (b *Buffer) parseError(where string, err error) error {
	return pdferr.NewParseError(where, err.Error())
}

func (b *Buffer) errf(where, format string, args ...any) error {
	return pdferr.NewParseError(where, fmt.Sprintf(format, args...))
}

// ReadToken reads and returns the next token, skipping whitespace and
// comments.
func (b *Buffer) ReadToken() (token, error) {
	if n := len(b.unread); n > 0 {
		t := b.unread[n-1]
		b.unread = b.unread[:n-1]
		return t, nil
	}

	c, err := b.readByte()
	if err != nil {
		return nil, err
	}
	for {
		if isSpace(c) {
			if b.eof {
				return tokenEOF, nil
			}
			c, err = b.readByte()
			if err != nil {
				return nil, err
			}
		} else if c == '%' {
			for c != '\r' && c != '\n' {
				c, err = b.readByte()
				if err != nil {
					return nil, err
				}
				if b.eof {
					return tokenEOF, nil
				}
			}
		} else {
			break
		}
	}

	switch c {
	case '<':
		c2, err := b.readByte()
		if err != nil {
			return nil, err
		}
		if c2 == '<' {
			return keyword("<<"), nil
		}
		b.unreadByte()
		return b.readHexString()

	case '(':
		return b.readLiteralString()

	case '[', ']', '{', '}':
		return keyword(string(c)), nil

	case '/':
		return b.readName()

	case '>':
		c2, err := b.readByte()
		if err != nil {
			return nil, err
		}
		if c2 == '>' {
			return keyword(">>"), nil
		}
		b.unreadByte()
		return nil, b.errf("token", "unexpected delimiter %q", c)

	default:
		if isDelim(c) {
			return nil, b.errf("token", "unexpected delimiter %q", c)
		}
		b.unreadByte()
		return b.readKeyword()
	}
}

func (b *Buffer) readHexString() (token, error) {
	tmp := b.tmp[:0]
	for {
		c, err := b.skipSpaceByte()
		if err != nil {
			return nil, err
		}
		if c == '>' {
			break
		}
		c2, err := b.skipSpaceByte()
		if err != nil {
			return nil, err
		}
		hi := unhex(c)
		lo := int8(0)
		if c2 == '>' {
			// odd trailing digit implicitly 0
			tmp = append(tmp, byte(hi)<<4)
			break
		}
		lo = unhex(c2)
		if hi < 0 || lo < 0 {
			return nil, b.errf("hex-string", "malformed hex string near %q%q", c, c2)
		}
		tmp = append(tmp, byte(hi)<<4|byte(lo))
	}
	b.tmp = tmp
	out := make([]byte, len(tmp))
	copy(out, tmp)
	return string(out), nil
}

func (b *Buffer) skipSpaceByte() (byte, error) {
	for {
		c, err := b.readByte()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
		if b.eof {
			return 0, b.errf("hex-string", "unterminated hex string")
		}
	}
}

func unhex(c byte) int8 {
	switch {
	case '0' <= c && c <= '9':
		return int8(c - '0')
	case 'a' <= c && c <= 'f':
		return int8(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int8(c-'A') + 10
	}
	return -1
}

func (b *Buffer) readLiteralString() (token, error) {
	tmp := b.tmp[:0]
	depth := 1
	for !b.eof {
		c, err := b.readByte()
		if err != nil {
			return nil, err
		}
		switch c {
		default:
			tmp = append(tmp, c)
		case '(':
			depth++
			tmp = append(tmp, c)
		case ')':
			depth--
			if depth == 0 {
				goto Done
			}
			tmp = append(tmp, c)
		case '\\':
			c, err = b.readByte()
			if err != nil {
				return nil, err
			}
			switch c {
			case 'n':
				tmp = append(tmp, '\n')
			case 'r':
				tmp = append(tmp, '\r')
			case 'b':
				tmp = append(tmp, '\b')
			case 't':
				tmp = append(tmp, '\t')
			case 'f':
				tmp = append(tmp, '\f')
			case '(', ')', '\\':
				tmp = append(tmp, c)
			case '\r':
				c2, err := b.readByte()
				if err != nil {
					return nil, err
				}
				if c2 != '\n' {
					b.unreadByte()
				}
			case '\n':
				// line continuation, no append
			case '0', '1', '2', '3', '4', '5', '6', '7':
				x := int(c - '0')
				for i := 0; i < 2; i++ {
					c, err = b.readByte()
					if err != nil {
						return nil, err
					}
					if c < '0' || c > '7' {
						b.unreadByte()
						break
					}
					x = x*8 + int(c-'0')
				}
				tmp = append(tmp, byte(x))
			default:
				tmp = append(tmp, c)
			}
		}
	}
Done:
	b.tmp = tmp
	out := make([]byte, len(tmp))
	copy(out, tmp)
	return string(out), nil
}

func (b *Buffer) readName() (token, error) {
	tmp := b.tmp[:0]
	for {
		c, err := b.readByte()
		if err != nil {
			return nil, err
		}
		if isDelim(c) || isSpace(c) {
			b.unreadByte()
			break
		}
		if c == '#' {
			h1, err := b.readByte()
			if err != nil {
				return nil, err
			}
			h2, err := b.readByte()
			if err != nil {
				return nil, err
			}
			hi, lo := unhex(h1), unhex(h2)
			if hi < 0 || lo < 0 {
				return nil, b.errf("name", "malformed name escape #%c%c", h1, h2)
			}
			tmp = append(tmp, byte(hi)<<4|byte(lo))
			continue
		}
		tmp = append(tmp, c)
	}
	b.tmp = tmp
	return object.Name(string(tmp)), nil
}

func (b *Buffer) readKeyword() (token, error) {
	tmp := b.tmp[:0]
	for {
		c, err := b.readByte()
		if err != nil {
			return nil, err
		}
		if isDelim(c) || isSpace(c) {
			b.unreadByte()
			break
		}
		tmp = append(tmp, c)
	}
	b.tmp = tmp
	s := string(tmp)
	switch {
	case s == "true":
		return true, nil
	case s == "false":
		return false, nil
	case isInteger(s):
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, b.parseError("number", err)
		}
		return x, nil
	case isReal(s):
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, b.parseError("number", err)
		}
		return x, nil
	}
	return keyword(s), nil
}

func isInteger(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || '9' < c {
			return false
		}
	}
	return true
}

func isReal(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	ndot := 0
	for _, c := range s {
		if c == '.' {
			ndot++
			continue
		}
		if c < '0' || '9' < c {
			return false
		}
	}
	return ndot == 1
}

func isSpace(c byte) bool {
	switch c {
	case '\x00', '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '<', '>', '(', ')', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
