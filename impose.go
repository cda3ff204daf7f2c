// Package impose arranges the pages of source PDF documents onto larger
// sheets for bookbinding.
//
// Sources are merged, padded with blanks, and ordered into folded signatures
// (folio, quarto, octavo, or a custom size) or simple 2-up pairs depending
// on the binding type. Each selected page is embedded in the output as a
// Form XObject and placed under an affine transform computed from the sheet
// grid, the leaf margins, and the scaling mode. Printer's marks and folded
// page numbers are drawn into the sheet content streams on request.
package impose

import (
	"github.com/AberrantWolf/pdf-tools-sub000/document"
	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// LoadDocuments opens every input file into a mutable document, in order.
func LoadDocuments(paths []string) ([]*document.Document, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	docs := make([]*document.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return nil, newOpError("LoadDocuments", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Impose runs the full pipeline over the source documents and returns the
// imposed output document. With FormatTwoSided the fronts precede the backs
// in one document; use ImposeTwoSided to obtain them separately.
func Impose(docs []*document.Document, opts Options) (*document.Document, error) {
	if err := opts.validateLayout(); err != nil {
		return nil, err
	}
	source, err := prepareSource(docs, opts)
	if err != nil {
		return nil, err
	}
	return renderImposed(source, opts)
}

// ImposeTwoSided renders the front and back sheet sides into two separate
// documents, for print shops that take the two sides as separate jobs. It
// requires a signature binding; simple 2-up layouts have no back sides.
func ImposeTwoSided(docs []*document.Document, opts Options) (front, back *document.Document, err error) {
	if err := opts.validateLayout(); err != nil {
		return nil, nil, err
	}
	if !opts.Binding.UsesSignatures() {
		return nil, nil, configErrorf("%s binding has no back sides to separate into a second document", opts.Binding)
	}
	source, err := prepareSource(docs, opts)
	if err != nil {
		return nil, nil, err
	}

	front = document.New()
	back = document.New()
	sheetW, sheetH, landscape := sheetDimensions(opts)
	grid := NewGridLayout(opts.Arrangement, sheetW, sheetH, opts.SheetMargins, landscape)

	frontRefs, backRefs, err := renderSignatures(
		newSheetRenderer(front, source, opts, grid, sheetW, sheetH),
		newSheetRenderer(back, source, opts, grid, sheetW, sheetH),
		source.NumPages(), opts.Arrangement)
	if err != nil {
		return nil, nil, err
	}

	front.SetPageRefs(frontRefs)
	back.SetPageRefs(backRefs)
	stampProducer(front)
	stampProducer(back)
	return front, back, nil
}

// prepareSource merges the inputs and inserts the configured flyleaves.
func prepareSource(docs []*document.Document, opts Options) (*document.Document, error) {
	merged, err := Merge(docs)
	if err != nil {
		return nil, err
	}
	AddFlyleaves(merged, opts.FrontFlyleaves, opts.BackFlyleaves)
	return merged, nil
}

// renderImposed imposes an already-merged source document.
func renderImposed(source *document.Document, opts Options) (*document.Document, error) {
	output := document.New()
	sheetW, sheetH, landscape := sheetDimensions(opts)

	// Simple 2-up layouts always use the one-fold 2x1 grid, whatever
	// arrangement the options carry.
	gridArrangement := opts.Arrangement
	if !opts.Binding.UsesSignatures() {
		gridArrangement = PageArrangement{Kind: Folio}
	}
	grid := NewGridLayout(gridArrangement, sheetW, sheetH, opts.SheetMargins, landscape)
	renderer := newSheetRenderer(output, source, opts, grid, sheetW, sheetH)

	var fronts, backs []reader.Reference
	var err error
	if opts.Binding.UsesSignatures() {
		fronts, backs, err = renderSignatures(renderer, renderer, source.NumPages(), opts.Arrangement)
	} else {
		fronts, err = renderSimple(renderer, source.NumPages())
	}
	if err != nil {
		return nil, err
	}

	output.SetPageRefs(assemblePages(fronts, backs, opts.Format))
	stampProducer(output)
	return output, nil
}

// assemblePages orders the rendered sides per the output format.
func assemblePages(fronts, backs []reader.Reference, format OutputFormat) []reader.Reference {
	refs := make([]reader.Reference, 0, len(fronts)+len(backs))
	if format == FormatDoubleSided {
		for i, f := range fronts {
			refs = append(refs, f)
			if i < len(backs) {
				refs = append(refs, backs[i])
			}
		}
		return refs
	}
	refs = append(refs, fronts...)
	return append(refs, backs...)
}

// sheetDimensions returns the output sheet size in points, honoring the
// configured orientation.
func sheetDimensions(opts Options) (width, height float64, landscape bool) {
	wmm, hmm := opts.PaperSize.DimensionsMM()
	width, height = mmToPt(wmm), mmToPt(hmm)
	if opts.Orientation == OrientationLandscape {
		width, height = height, width
	}
	return width, height, width > height
}

func stampProducer(doc *document.Document) {
	doc.SetInfo("Producer", "pdf-tools impose")
}
