package impose

import (
	"github.com/AberrantWolf/pdf-tools-sub000/document"
	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Merge combines the pages of the input documents, in order, into one new
// document. The inputs are left untouched.
func Merge(docs []*document.Document) (*document.Document, error) {
	if len(docs) == 0 {
		return nil, ErrNoInput
	}

	out := document.New()
	out.Version = docs[0].Version
	for _, src := range docs {
		cache := make(map[reader.Reference]reader.Reference)
		if err := out.AppendPagesFrom(src, 0, src.NumPages(), cache); err != nil {
			return nil, newOpError("Merge", err)
		}
	}
	if out.NumPages() == 0 {
		return nil, ErrNoPages
	}
	return out, nil
}

// AddFlyleaves inserts blank leaves before and after the document's pages.
// Counts are in leaves; each leaf contributes two pages. The blanks take
// their size from the first existing page.
func AddFlyleaves(doc *document.Document, frontLeaves, backLeaves int) {
	if frontLeaves <= 0 && backLeaves <= 0 {
		return
	}

	mediaBox, _ := doc.PageMediaBox(0)
	body := doc.PageRefs()

	pages := make([]reader.Reference, 0, len(body)+2*(frontLeaves+backLeaves))
	for i := 0; i < 2*frontLeaves; i++ {
		pages = append(pages, doc.NewBlankPage(mediaBox))
	}
	pages = append(pages, body...)
	for i := 0; i < 2*backLeaves; i++ {
		pages = append(pages, doc.NewBlankPage(mediaBox))
	}
	doc.SetPageRefs(pages)
}
