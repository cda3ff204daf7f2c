package impose

import "github.com/AberrantWolf/pdf-tools-sub000/document"

// GeneratePreview imposes only enough source pages to fill maxSheets sheets,
// trading completeness for speed so interactive callers can show the layout
// quickly. The inputs are left untouched.
func GeneratePreview(docs []*document.Document, opts Options, maxSheets int) (*document.Document, error) {
	if maxSheets <= 0 {
		return nil, configErrorf("preview sheet count must be positive, got %d", maxSheets)
	}
	if err := opts.validateLayout(); err != nil {
		return nil, err
	}
	source, err := prepareSource(docs, opts)
	if err != nil {
		return nil, err
	}

	pageCap := maxSheets * 2
	if opts.Binding.UsesSignatures() {
		pageCap = maxSheets * opts.Arrangement.PagesPerSignature()
	}
	if pageCap < source.NumPages() {
		source, err = source.CopyPageRange(0, pageCap)
		if err != nil {
			return nil, newOpError("GeneratePreview", err)
		}
	}

	return renderImposed(source, opts)
}
