package lexer

import (
	"github.com/erantapaa/pdfnursery/object"
	"github.com/erantapaa/pdfnursery/pdferr"
)

// Header is the parsed "%PDF-M.N" prefix.
type Header struct {
	Major, Minor int
}

func (h Header) String() string {
	return "PDF-" + itoa(h.Major) + "." + itoa(h.Minor)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ParseHeader reads "%PDF-" <digit> "." <digit> from the first 8 bytes
// at the tape's current position.
func ParseHeader(b *Buffer) (Header, error) {
	want := []byte("%PDF-")
	for _, w := range want {
		c, err := b.readByte()
		if err != nil {
			return Header{}, err
		}
		if c != w {
			return Header{}, pdferr.NewParseError("header", "missing %PDF- prefix")
		}
	}
	major, err := b.readByte()
	if err != nil {
		return Header{}, err
	}
	dot, err := b.readByte()
	if err != nil {
		return Header{}, err
	}
	minor, err := b.readByte()
	if err != nil {
		return Header{}, err
	}
	if dot != '.' || major < '0' || major > '9' || minor < '0' || minor > '9' {
		return Header{}, pdferr.NewParseError("header", "malformed version digits")
	}
	return Header{Major: int(major - '0'), Minor: int(minor - '0')}, nil
}

// ReadObject reads one Object at the buffer's current position,
// following "N G R" into a Reference but not following "N G obj" —
// indirect-object definitions only occur at the top of an object body,
// never nested inside an array or dictionary, per the PDF grammar.
func (b *Buffer) ReadObject() (object.Object, error) {
	tok, err := b.ReadToken()
	if err != nil {
		return object.Nil, err
	}
	return b.readValue(tok)
}

// ReadIndirectObjectAt seeks to offset and reads "N G obj <object>
// endobj" (or, for a stream, "N G obj <dict> stream ... ", where the
// caller is responsible for skipping the stream body).
func (b *Buffer) ReadIndirectObjectAt(offset int64) (object.Definition, error) {
	if err := b.SeekTo(offset); err != nil {
		return object.Definition{}, err
	}
	t1, err := b.ReadToken()
	if err != nil {
		return object.Definition{}, err
	}
	idx, ok := t1.(int64)
	if !ok || int64(uint32(idx)) != idx {
		return object.Definition{}, b.errf("indirect-object", "expected object index, got %#v", t1)
	}
	t2, err := b.ReadToken()
	if err != nil {
		return object.Definition{}, err
	}
	gen, ok := t2.(int64)
	if !ok || int64(uint32(gen)) != gen {
		return object.Definition{}, b.errf("indirect-object", "expected generation, got %#v", t2)
	}
	t3, err := b.ReadToken()
	if err != nil {
		return object.Definition{}, err
	}
	if t3 != keyword("obj") {
		return object.Definition{}, b.errf("indirect-object", "expected %q, got %#v", "obj", t3)
	}

	body, err := b.ReadObject()
	if err != nil {
		return object.Definition{}, err
	}

	if _, isStream := object.AsStream(body); !isStream {
		end, err := b.ReadToken()
		if err != nil {
			return object.Definition{}, err
		}
		if end != keyword("endobj") {
			b.unreadToken(end)
		}
	}

	return object.Definition{Ref: object.Reference{Index: uint32(idx), Generation: uint32(gen)}, Body: body}, nil
}

// readValue interprets tok, which has already been read, as the start
// of a value: a keyword introduces "<<"/"["/"null"; an integer is
// speculatively checked for the "G R" suffix that makes it a Reference;
// anything else is a scalar leaf.
func (b *Buffer) readValue(tok token) (object.Object, error) {
	if kw, ok := tok.(keyword); ok {
		switch kw {
		case "null":
			return object.Nil, nil
		case "<<":
			return b.readDict()
		case "[":
			return b.readArray()
		}
		return object.Nil, b.errf("object", "unexpected keyword %q", string(kw))
	}

	if n1, ok := tok.(int64); ok && int64(uint32(n1)) == n1 {
		tok2, err := b.ReadToken()
		if err != nil {
			return object.Nil, err
		}
		if n2, ok := tok2.(int64); ok && int64(uint32(n2)) == n2 {
			tok3, err := b.ReadToken()
			if err != nil {
				return object.Nil, err
			}
			if tok3 == keyword("R") {
				return object.FromReference(object.Reference{Index: uint32(n1), Generation: uint32(n2)}), nil
			}
			b.unreadToken(tok3)
		}
		b.unreadToken(tok2)
	}

	return b.leafObject(tok)
}

// leafObject converts a scalar token into an object.Object.
func (b *Buffer) leafObject(tok token) (object.Object, error) {
	switch v := tok.(type) {
	case eofToken:
		return object.Nil, b.errf("object", "unexpected end of input")
	case bool:
		return object.FromBool(v), nil
	case int64:
		return object.FromNumber(object.NewInteger(v)), nil
	case float64:
		return object.FromNumber(object.NewReal(v)), nil
	case string:
		return object.FromBytes(object.Bytes(v)), nil
	case object.Name:
		return object.FromName(v), nil
	case keyword:
		return object.Nil, b.errf("object", "unexpected keyword %q", string(v))
	default:
		return object.Nil, b.errf("object", "unexpected token %#v", tok)
	}
}

func (b *Buffer) readArray() (object.Object, error) {
	var x object.Array
	for {
		tok, err := b.ReadToken()
		if err != nil {
			return object.Nil, err
		}
		if isEOFToken(tok) {
			return object.Nil, b.errf("array", "unterminated array")
		}
		if tok == keyword("]") {
			break
		}
		v, err := b.readValue(tok)
		if err != nil {
			return object.Nil, err
		}
		x = append(x, v)
	}
	return object.FromArray(x), nil
}

func (b *Buffer) readDict() (object.Object, error) {
	x := make(object.Dictionary)
	for {
		tok, err := b.ReadToken()
		if err != nil {
			return object.Nil, err
		}
		if isEOFToken(tok) {
			return object.Nil, b.errf("dict", "unterminated dictionary")
		}
		if tok == keyword(">>") {
			break
		}
		n, ok := tok.(object.Name)
		if !ok {
			return object.Nil, b.errf("dict", "non-name key %#v", tok)
		}
		vtok, err := b.ReadToken()
		if err != nil {
			return object.Nil, err
		}
		v, err := b.readValue(vtok)
		if err != nil {
			return object.Nil, err
		}
		x[n] = v // duplicate keys: last occurrence wins
	}

	tok, err := b.ReadToken()
	if err != nil {
		return object.Nil, err
	}
	if tok != keyword("stream") {
		b.unreadToken(tok)
		return object.FromDictionary(x), nil
	}

	c, err := b.readByte()
	if err != nil {
		return object.Nil, err
	}
	switch c {
	case '\r':
		c2, err := b.readByte()
		if err != nil {
			return object.Nil, err
		}
		if c2 != '\n' {
			b.unreadByte()
		}
	case '\n':
		// ok
	default:
		return object.Nil, b.errf("stream", "stream keyword not followed by EOL")
	}

	return object.FromStream(object.Stream{Dict: x, StreamPos: b.Offset()}), nil
}
