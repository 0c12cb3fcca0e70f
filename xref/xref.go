// Package xref locates and parses the classical cross-reference table
// and trailer at the tail of a PDF file. Cross-reference streams (PDF
// 1.5+) are not supported: encountering one yields
// XRefMalformed("not a classical xref").
package xref

import (
	"bytes"
	"log/slog"

	"github.com/erantapaa/pdfnursery/lexer"
	"github.com/erantapaa/pdfnursery/object"
	"github.com/erantapaa/pdfnursery/pdferr"
	"github.com/erantapaa/pdfnursery/tape"
)

// tailWindow is the size of the backward scan used to find "startxref"
// near the end of the file.
const tailWindow = 1024

// TableEntry is one xref entry: the byte offset of "N G obj", the
// generation recorded in the table, and whether the entry is in-use
// ("n") as opposed to free ("f"). Unknown is set when the status byte
// is neither; the entry is kept in the table rather than failing the
// whole parse, and only turns into an error if something tries to
// resolve that particular reference.
type TableEntry struct {
	Offset     int64
	Generation uint32
	InUse      bool
	Unknown    bool
}

// XRef is the parsed table plus trailer dictionary.
type XRef struct {
	Entries map[object.Reference]TableEntry
	Trailer object.Dictionary
}

// Locate finds the absolute byte offset of the xref table by scanning
// backward from the end of the tape for the last "startxref" keyword.
func Locate(t *tape.Tape) (int64, error) {
	t.Bottom()
	window, err := t.Get(tailWindow)
	if err != nil {
		return 0, err
	}
	i := findLastLine(window, "startxref")
	if i < 0 {
		return 0, pdferr.ErrXRefNotFound
	}

	// window holds the last min(tailWindow, size) bytes, ending at the
	// tape's original Bottom position; the absolute offset of window[0]
	// is t.Size()-len(window).
	base := t.Size() - int64(len(window))
	b := lexer.New(t)
	if err := b.SeekTo(base + int64(i)); err != nil {
		return 0, err
	}
	tok, err := b.ReadToken()
	if err != nil {
		return 0, err
	}
	if tok != keyword("startxref") {
		return 0, pdferr.ErrXRefNotFound
	}
	posTok, err := b.ReadToken()
	if err != nil {
		return 0, err
	}
	pos, ok := posTok.(int64)
	if !ok {
		return 0, pdferr.NewXRefMalformed("startxref not followed by an integer")
	}
	return pos, nil
}

// keyword is lexer's token type for structural keywords, re-exported as
// lexer.Keyword so this package can compare tokens returned by
// b.ReadToken against literal keywords such as "xref"/"trailer"/"n".
type keyword = lexer.Keyword

// Parse parses the classical xref table and trailer starting at
// position in the tape.
func Parse(t *tape.Tape, position int64) (*XRef, error) {
	b := lexer.New(t)
	if err := b.SeekTo(position); err != nil {
		return nil, err
	}
	tok, err := b.ReadToken()
	if err != nil {
		return nil, err
	}
	if tok != keyword("xref") {
		if _, isInt := tok.(int64); isInt {
			return nil, pdferr.NewXRefMalformed("not a classical xref")
		}
		return nil, pdferr.NewXRefMalformed("xref keyword not found")
	}

	entries := make(map[object.Reference]TableEntry)
	if err := parseSubsections(b, entries); err != nil {
		return nil, err
	}

	trailerTok, err := b.ReadToken()
	if err != nil {
		return nil, err
	}
	if trailerTok != keyword("trailer") {
		return nil, pdferr.NewXRefMalformed("xref table not followed by trailer")
	}
	trailerObj, err := b.ReadObject()
	if err != nil {
		return nil, err
	}
	trailer, ok := object.AsDictionary(trailerObj)
	if !ok {
		return nil, pdferr.NewXRefMalformed("trailer is not a dictionary")
	}

	return &XRef{Entries: entries, Trailer: trailer}, nil
}

func parseSubsections(b *lexer.Buffer, entries map[object.Reference]TableEntry) error {
	for {
		tok, err := b.ReadToken()
		if err != nil {
			return err
		}
		if tok == keyword("trailer") {
			b.UnreadToken(tok)
			return nil
		}
		first, ok := tok.(int64)
		if !ok {
			return pdferr.NewXRefMalformed("malformed subsection header")
		}
		countTok, err := b.ReadToken()
		if err != nil {
			return err
		}
		count, ok := countTok.(int64)
		if !ok {
			return pdferr.NewXRefMalformed("malformed subsection header")
		}
		for i := int64(0); i < count; i++ {
			offTok, err := b.ReadToken()
			if err != nil {
				return err
			}
			off, ok := offTok.(int64)
			if !ok {
				return pdferr.NewXRefMalformed("malformed xref entry offset")
			}
			genTok, err := b.ReadToken()
			if err != nil {
				return err
			}
			gen, ok := genTok.(int64)
			if !ok {
				return pdferr.NewXRefMalformed("malformed xref entry generation")
			}
			statusTok, err := b.ReadToken()
			if err != nil {
				return err
			}
			status, ok := statusTok.(keyword)
			ref := object.Reference{Index: uint32(first + i), Generation: uint32(gen)}
			if !ok || (status != "n" && status != "f") {
				slog.Warn("xref entry has unrecognized status byte, marking unresolvable", "ref", ref)
				entries[ref] = TableEntry{Offset: off, Generation: uint32(gen), Unknown: true}
				continue
			}
			entries[ref] = TableEntry{Offset: off, Generation: uint32(gen), InUse: status == "n"}
		}
	}
}

// findLastLine finds the last occurrence of s in buf that sits alone on
// its own line, bounded by newlines, other whitespace, or a buffer edge.
func findLastLine(buf []byte, s string) int {
	bs := []byte(s)
	max := len(buf)
	for {
		i := bytes.LastIndex(buf[:max], bs)
		if i < 0 {
			return -1
		}
		leftOK := i == 0 || buf[i-1] == '\n' || buf[i-1] == '\r' || isSpaceByte(buf[i-1])
		end := i + len(bs)
		rightOK := end >= len(buf) || buf[end] == '\n' || buf[end] == '\r' || isSpaceByte(buf[end])
		if leftOK && rightOK {
			return i
		}
		max = i
	}
}

func isSpaceByte(c byte) bool {
	switch c {
	case '\x00', '\t', '\f', ' ':
		return true
	}
	return false
}
