// Command pdfcat opens a PDF file and prints its document summary, info
// dictionary, pages dictionary, and the fully resolved object for every
// in-use reference.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/erantapaa/pdfnursery/nursery"
	"github.com/erantapaa/pdfnursery/object"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: pdfcat <path-to-pdf>")
	}

	if err := run(os.Args[1]); err != nil {
		log.Fatalf("pdfcat: %v", err)
	}
}

func run(path string) error {
	s, err := nursery.Attach(path)
	if err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	defer s.Close()

	header := s.GetHeader()
	fmt.Printf("header: %s\n", header)

	doc := s.GetDocument()
	fmt.Printf("document: pages=%d width=%d height=%d\n", doc.PageCount, doc.Width, doc.Height)

	fmt.Printf("info: %s\n", object.FromDictionary(s.GetInfo()))
	fmt.Printf("pages: %s\n", object.FromDictionary(s.GetPages()))

	refs := s.GetReferences()
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Index != refs[j].Index {
			return refs[i].Index < refs[j].Index
		}
		return refs[i].Generation < refs[j].Generation
	})
	for _, ref := range refs {
		obj, err := s.Resolve(ref)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", ref, err)
		}
		fmt.Printf("%s: %s\n", ref, obj)
	}

	return nil
}
