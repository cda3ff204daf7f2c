package impose

import (
	"bytes"
	"fmt"

	"github.com/AberrantWolf/pdf-tools-sub000/document"
	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Page number rendering constants.
const (
	pageNumberFontSize = 8.0
	pageNumberOffset   = 10.0
	// Rough advance width of a Helvetica digit relative to the font size,
	// good enough to center short page numbers.
	helveticaCharWidthRatio = 0.5
)

// sheetRenderer renders sheet sides of one imposition run into an output
// document. Form XObjects and deep-copied resources are cached across sides
// so every source page is embedded once per output document.
type sheetRenderer struct {
	output *document.Document
	source *document.Document
	opts   Options
	grid   GridLayout

	sheetWidth, sheetHeight float64
	sourceDims              [][2]float64

	resourceCache map[reader.Reference]reader.Reference
	formCache     map[int]reader.Reference

	fontRef reader.Reference
	hasFont bool
}

func newSheetRenderer(output, source *document.Document, opts Options, grid GridLayout, sheetWidth, sheetHeight float64) *sheetRenderer {
	dims := make([][2]float64, source.NumPages())
	for i := range dims {
		w, h := source.PageDimensions(i)
		dims[i] = [2]float64{w, h}
	}
	return &sheetRenderer{
		output:        output,
		source:        source,
		opts:          opts,
		grid:          grid,
		sheetWidth:    sheetWidth,
		sheetHeight:   sheetHeight,
		sourceDims:    dims,
		resourceCache: make(map[reader.Reference]reader.Reference),
		formCache:     make(map[int]reader.Reference),
	}
}

// placements computes the page placements for one sheet side. mapping holds
// a source page index per slot, -1 for a padding blank.
func (r *sheetRenderer) placements(slots []SignatureSlot, mapping []int) []PagePlacement {
	out := make([]PagePlacement, len(slots))
	for k, slot := range slots {
		sourcePage := mapping[k]
		w, h := document.DefaultPageWidth, document.DefaultPageHeight
		if sourcePage >= 0 && sourcePage < len(r.sourceDims) {
			w, h = r.sourceDims[sourcePage][0], r.sourceDims[sourcePage][1]
		}
		out[k] = placePage(r.grid, slot, sourcePage, w, h, r.opts.LeafMargins, r.opts.Scaling, r.opts.SourceRotation)
	}
	return out
}

// renderSide renders one sheet side as a new output page and returns its
// page reference. Blank slots leave their cell empty.
func (r *sheetRenderer) renderSide(slots []SignatureSlot, mapping []int) (reader.Reference, error) {
	placements := r.placements(slots, mapping)

	var content bytes.Buffer
	xobjects := reader.Dict{}
	var contentBounds []Rect

	for idx, p := range placements {
		if p.SourcePage < 0 {
			continue
		}
		form, err := r.formXObject(p.SourcePage)
		if err != nil {
			return reader.Reference{}, err
		}
		name := fmt.Sprintf("P%d", idx)
		xobjects[reader.Name(name)] = form

		m := p.Matrix()
		fmt.Fprintf(&content, "q %s %s %s %s %s %s cm /%s Do Q\n",
			fnum(m[0]), fnum(m[1]), fnum(m[2]), fnum(m[3]), fnum(m[4]), fnum(m[5]), name)

		contentBounds = append(contentBounds, p.Rect)
	}

	if r.opts.Marks.Any() {
		content.Write(renderMarks(r.opts.Marks, r.grid, contentBounds))
	}

	fonts := reader.Dict{}
	if r.opts.AddPageNumbers {
		r.writePageNumbers(&content, placements)
		fonts["F1"] = r.font()
	}

	resources := reader.Dict{"XObject": xobjects}
	if len(fonts) > 0 {
		resources["Font"] = fonts
	}

	contentRef := r.output.AddObject(reader.Stream{Dict: reader.Dict{}, Data: content.Bytes()})
	page := reader.Dict{
		"Type": reader.Name("Page"),
		"MediaBox": reader.Array{
			reader.Integer(0), reader.Integer(0),
			reader.Real(r.sheetWidth), reader.Real(r.sheetHeight),
		},
		"Contents":  contentRef,
		"Resources": resources,
	}
	return r.output.AddObject(page), nil
}

// formXObject embeds the source page as a Form XObject, reusing a prior
// embedding when the page appears in several slots.
func (r *sheetRenderer) formXObject(pageIndex int) (reader.Reference, error) {
	if ref, ok := r.formCache[pageIndex]; ok {
		return ref, nil
	}
	ref, err := r.output.NewFormXObject(r.source, pageIndex, r.resourceCache)
	if err != nil {
		return reader.Reference{}, newOpError("Impose", err)
	}
	r.formCache[pageIndex] = ref
	return ref, nil
}

// font returns the shared Helvetica font object used for page numbers.
func (r *sheetRenderer) font() reader.Reference {
	if !r.hasFont {
		r.fontRef = r.output.AddObject(reader.Dict{
			"Type":     reader.Name("Font"),
			"Subtype":  reader.Name("Type1"),
			"BaseFont": reader.Name("Helvetica"),
		})
		r.hasFont = true
	}
	return r.fontRef
}

// writePageNumbers draws the folded page number at the foot of each
// non-blank cell. Rotated cells draw the number upside down near the cell
// top so it lands at the foot after folding.
func (r *sheetRenderer) writePageNumbers(content *bytes.Buffer, placements []PagePlacement) {
	for _, p := range placements {
		if p.SourcePage < 0 {
			continue
		}
		text := fmt.Sprintf("%d", r.opts.PageNumberStart+p.SourcePage)
		cell := r.grid.CellBounds(p.Slot.Row, p.Slot.Col)

		if p.Slot.Rotated {
			x := cell.X + cell.Width/2
			y := cell.Y + cell.Height - pageNumberOffset
			fmt.Fprintf(content, "q 1 0 0 1 %s %s cm -1 0 0 -1 0 0 cm BT /F1 %s Tf (%s) Tj ET Q\n",
				fnum(x), fnum(y), fnum(pageNumberFontSize), text)
		} else {
			textWidth := float64(len(text)) * pageNumberFontSize * helveticaCharWidthRatio
			x := cell.X + cell.Width/2 - textWidth/2
			y := cell.Y + pageNumberOffset
			fmt.Fprintf(content, "BT /F1 %s Tf %s %s Td (%s) Tj ET\n",
				fnum(pageNumberFontSize), fnum(x), fnum(y), text)
		}
	}
}
