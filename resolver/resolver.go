// Package resolver resolves indirect object references to their parsed
// bodies, chasing aliases ("5 0 obj 6 0 R endobj") transparently up to
// a bounded depth. Object streams and encrypted documents are not
// handled.
package resolver

import (
	"github.com/erantapaa/pdfnursery/lexer"
	"github.com/erantapaa/pdfnursery/object"
	"github.com/erantapaa/pdfnursery/pdferr"
	"github.com/erantapaa/pdfnursery/tape"
	"github.com/erantapaa/pdfnursery/xref"
)

// maxChaseDepth bounds alias-chasing: conforming PDFs do not nest
// indirect-object-to-indirect-object references this deeply.
const maxChaseDepth = 32

// Resolve looks up ref in x.Entries, parses the indirect object at its
// offset, and follows the result if it is itself a Reference, up to
// maxChaseDepth hops.
func Resolve(t *tape.Tape, x *xref.XRef, ref object.Reference) (object.Object, error) {
	cur := ref
	for depth := 0; ; depth++ {
		if depth >= maxChaseDepth {
			return object.Nil, pdferr.ErrResolverCycle
		}

		entry, ok := x.Entries[cur]
		if !ok {
			return object.Nil, pdferr.NewUnresolvedObject(cur.Index, cur.Generation)
		}
		if entry.Unknown {
			return object.Nil, pdferr.NewXRefMalformed("entry has an unrecognized status byte")
		}
		if !entry.InUse {
			return object.Nil, pdferr.NewUnresolvedObject(cur.Index, cur.Generation)
		}

		b := lexer.New(t)
		def, err := b.ReadIndirectObjectAt(entry.Offset)
		if err != nil {
			return object.Nil, err
		}
		if def.Ref != cur {
			return object.Nil, pdferr.NewXRefMalformed("object at offset does not match its own reference")
		}

		next, isRef := object.AsReference(def.Body)
		if !isRef {
			return def.Body, nil
		}
		cur = next
	}
}
