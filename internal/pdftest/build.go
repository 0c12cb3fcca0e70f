// Package pdftest assembles minimal, well-formed PDF byte streams for use
// as test fixtures in resolver and nursery tests. It computes
// object offsets itself so callers never hardcode byte positions.
package pdftest

import (
	"fmt"
	"strings"
)

// Object is one indirect object's body text, omitting the surrounding
// "N G obj"/"endobj" markers.
type Object struct {
	Index      int
	Generation int
	Body       string
}

// Doc is a built PDF fixture: its full bytes and the absolute offset at
// which each object's "N G obj" line begins.
type Doc struct {
	Bytes   []byte
	Offsets map[int]int64
	XRefPos int64
}

// Build assembles a header, the given objects in slice order, a single
// classical xref section spanning 0..max(Index), and a trailer. trailer
// is rendered as literal "/Key value" pairs, e.g. {"Root": "1 0 R"}.
func Build(objects []Object, trailer map[string]string) Doc {
	var buf strings.Builder
	buf.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int64)
	gens := make(map[int]int)
	maxIndex := 0
	for _, o := range objects {
		offsets[o.Index] = int64(buf.Len())
		gens[o.Index] = o.Generation
		if o.Index > maxIndex {
			maxIndex = o.Index
		}
		fmt.Fprintf(&buf, "%d %d obj\n%s\nendobj\n", o.Index, o.Generation, o.Body)
	}

	xrefPos := int64(buf.Len())
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", maxIndex+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= maxIndex; i++ {
		off, ok := offsets[i]
		if !ok {
			buf.WriteString("0000000000 00000 f \n")
			continue
		}
		fmt.Fprintf(&buf, "%010d %05d n \n", off, gens[i])
	}

	buf.WriteString("trailer\n<<")
	for k, v := range trailer {
		fmt.Fprintf(&buf, " /%s %s", k, v)
	}
	buf.WriteString(" >>\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n", xrefPos)
	buf.WriteString("%%EOF")

	return Doc{Bytes: []byte(buf.String()), Offsets: offsets, XRefPos: xrefPos}
}
