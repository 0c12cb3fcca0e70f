// Package nursery implements the session layer: on attach it reads the
// header, locates and parses the xref and trailer, resolves info, root,
// and pages, and derives the Document summary; then it serves
// GetDocument/GetInfo/GetHeader/GetPages/GetPage/GetReferences/Resolve
// requests against those artifacts. A Session is a plain synchronous
// object: a request is a method call, and single-threaded cooperative
// access falls out of there being exactly one *tape.Tape per session,
// touched only from these methods.
package nursery

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/erantapaa/pdfnursery/lexer"
	"github.com/erantapaa/pdfnursery/object"
	"github.com/erantapaa/pdfnursery/pdferr"
	"github.com/erantapaa/pdfnursery/resolver"
	"github.com/erantapaa/pdfnursery/tape"
	"github.com/erantapaa/pdfnursery/xref"
)

// Document is the derived per-session summary of page count and size.
type Document struct {
	PageCount int64
	Width     int64
	Height    int64
}

// Session is a single PDF file attached for reading. Header, XRef,
// trailer, Info, Root, Pages, and Document are fixed at Attach time and
// are immutable for the session's lifetime; Resolve and GetPage issue
// further reads through the same tape.
type Session struct {
	f    *os.File
	tape *tape.Tape

	header lexer.Header
	xref   *xref.XRef
	info   object.Dictionary
	root   object.Dictionary
	pages  object.Dictionary
	doc    Document
}

// Attach opens path and runs the attach sequence: header,
// xref locate, xref parse, info, root, pages, Document. The backing file
// is closed on any failure; on success it is owned by the returned
// Session until Close.
func Attach(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := attach(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func attach(f *os.File) (*Session, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	t := tape.New(f, fi.Size())
	s := &Session{f: f, tape: t}

	// Step 1: getHeader.
	t.Top()
	b := lexer.New(t)
	header, err := lexer.ParseHeader(b)
	if err != nil {
		return nil, err
	}
	s.header = header

	// Step 2-3: getXRefPos, getXRef.
	pos, err := xref.Locate(t)
	if err != nil {
		return nil, err
	}
	x, err := xref.Parse(t, pos)
	if err != nil {
		return nil, err
	}
	s.xref = x

	if _, hasID := x.Trailer["ID"]; !hasID {
		slog.Debug("trailer missing optional ID entry")
	}
	if _, hasPrev := x.Trailer["Prev"]; hasPrev {
		slog.Debug("trailer has Prev; this core follows only the last xref section")
	}

	// Step 4: getInfo.
	info, err := resolveDictKey(t, x, x.Trailer, "Info")
	if err != nil {
		return nil, fmt.Errorf("attach: resolving trailer Info: %w", err)
	}
	s.info = info

	// Step 5: getRoot.
	root, err := resolveDictKey(t, x, x.Trailer, "Root")
	if err != nil {
		return nil, pdferr.ErrRootNotFound
	}
	s.root = root

	// Step 6: getPages.
	pages, err := resolveDictKey(t, x, root, "Pages")
	if err != nil {
		return nil, pdferr.ErrPagesNotFound
	}
	s.pages = pages

	// Step 7: buildDocument.
	doc, err := buildDocument(pages)
	if err != nil {
		return nil, err
	}
	s.doc = doc

	return s, nil
}

// resolveDictKey narrows dict[key] to a Reference and resolves it to a
// Dictionary, a two-step lens composition: narrow, then resolve.
func resolveDictKey(t *tape.Tape, x *xref.XRef, dict object.Dictionary, key object.Name) (object.Dictionary, error) {
	v, ok := dict[key]
	if !ok {
		return nil, fmt.Errorf("missing key %q", key)
	}
	ref, ok := object.AsReference(v)
	if !ok {
		return nil, fmt.Errorf("key %q is not a reference", key)
	}
	resolved, err := resolver.Resolve(t, x, ref)
	if err != nil {
		return nil, err
	}
	d, ok := object.AsDictionary(resolved)
	if !ok {
		return nil, fmt.Errorf("key %q did not resolve to a dictionary", key)
	}
	return d, nil
}

func buildDocument(pages object.Dictionary) (Document, error) {
	countObj, ok := pages["Count"]
	if !ok {
		return Document{}, pdferr.ErrInvalidDocument
	}
	count, ok := object.AsNumber(countObj)
	if !ok {
		return Document{}, pdferr.ErrInvalidDocument
	}
	n, ok := count.Natural()
	if !ok || n < 0 {
		return Document{}, pdferr.ErrInvalidDocument
	}

	boxObj, ok := pages["MediaBox"]
	if !ok {
		return Document{}, pdferr.ErrInvalidDocument
	}
	box, ok := object.AsArray(boxObj)
	if !ok || len(box) < 4 {
		return Document{}, pdferr.ErrInvalidDocument
	}
	width, ok := asIntNumber(box[2])
	if !ok {
		return Document{}, pdferr.ErrInvalidDocument
	}
	height, ok := asIntNumber(box[3])
	if !ok {
		return Document{}, pdferr.ErrInvalidDocument
	}

	return Document{PageCount: n, Width: width, Height: height}, nil
}

func asIntNumber(o object.Object) (int64, bool) {
	n, ok := object.AsNumber(o)
	if !ok {
		return 0, false
	}
	return n.Int64(), true
}

// GetDocument returns the derived Document summary computed at Attach.
func (s *Session) GetDocument() Document {
	return s.doc
}

// GetInfo returns the trailer's Info dictionary resolved at Attach.
func (s *Session) GetInfo() object.Dictionary {
	return s.info
}

// GetHeader returns the parsed "%PDF-M.N" header.
func (s *Session) GetHeader() lexer.Header {
	return s.header
}

// GetPages returns the root Pages dictionary resolved at Attach.
func (s *Session) GetPages() object.Dictionary {
	return s.pages
}

// GetReferences returns every Reference in the xref table whose entry
// is in-use.
func (s *Session) GetReferences() []object.Reference {
	refs := make([]object.Reference, 0, len(s.xref.Entries))
	for ref, entry := range s.xref.Entries {
		if entry.InUse {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Resolve resolves ref through the session's xref table, chasing
// aliases transparently.
func (s *Session) Resolve(ref object.Reference) (object.Object, error) {
	return resolver.Resolve(s.tape, s.xref, ref)
}

// GetPage returns the resolved leaf-page dictionary for the num'th page
// (1-indexed), walking the Pages Kids tree. Restricted to dictionary
// navigation — no content-stream interpretation.
func (s *Session) GetPage(num int) (object.Dictionary, error) {
	if num < 1 {
		return nil, fmt.Errorf("page number %d out of range", num)
	}
	num--
	page := s.pages
	for {
		typ, _ := object.AsName(page["Type"])
		if typ != "Pages" {
			break
		}
		count, _ := asIntNumber(page["Count"])
		if int64(num) >= count {
			return nil, fmt.Errorf("page number out of range")
		}
		kidsArr, ok := object.AsArray(page["Kids"])
		if !ok {
			return nil, fmt.Errorf("Pages node missing Kids")
		}
		found := false
		for _, kidObj := range kidsArr {
			kidRef, ok := object.AsReference(kidObj)
			if !ok {
				continue
			}
			resolved, err := s.Resolve(kidRef)
			if err != nil {
				return nil, err
			}
			kid, ok := object.AsDictionary(resolved)
			if !ok {
				continue
			}
			kidType, _ := object.AsName(kid["Type"])
			if kidType == "Pages" {
				c, _ := asIntNumber(kid["Count"])
				if int64(num) < c {
					page = kid
					found = true
					break
				}
				num -= int(c)
				continue
			}
			if kidType == "Page" {
				if num == 0 {
					return kid, nil
				}
				num--
			}
		}
		if !found {
			return nil, fmt.Errorf("page number out of range")
		}
	}
	return nil, fmt.Errorf("page number out of range")
}

// Close releases the backing file descriptor. It is safe to call more
// than once.
func (s *Session) Close() error {
	return s.f.Close()
}
