package impose

import "github.com/AberrantWolf/pdf-tools-sub000/document"

// Statistics summarizes an imposition run without performing it.
//
// OutputSheets counts physical sheets of paper; OutputPages counts printable
// sheet sides (always two per sheet). Signatures and PagesPerSignature are
// nil for simple 2-up bindings, which have no signature structure.
type Statistics struct {
	SourcePages       int   `json:"source_pages"`
	OutputSheets      int   `json:"output_sheets"`
	Signatures        *int  `json:"signatures,omitempty"`
	PagesPerSignature []int `json:"pages_per_signature,omitempty"`
	OutputPages       int   `json:"output_pages"`
	BlankPagesAdded   int   `json:"blank_pages_added"`
}

// CalculateStatistics computes the output statistics for imposing the given
// documents, including flyleaf pages, without generating any output.
func CalculateStatistics(docs []*document.Document, opts Options) (Statistics, error) {
	sourcePages := 0
	for _, doc := range docs {
		sourcePages += doc.NumPages()
	}
	sourcePages += 2 * (opts.FrontFlyleaves + opts.BackFlyleaves)
	if sourcePages == 0 {
		return Statistics{}, ErrNoPages
	}

	if opts.Binding.UsesSignatures() {
		return signatureStats(sourcePages, opts.Arrangement), nil
	}
	return simpleStats(sourcePages), nil
}

func signatureStats(sourcePages int, a PageArrangement) Statistics {
	pps := a.PagesPerSignature()
	sheetsPerSig := pps / 4

	padded := roundUpToMultiple(sourcePages, pps)
	numSigs := padded / pps
	totalSheets := numSigs * sheetsPerSig

	perSig := make([]int, numSigs)
	for i := range perSig {
		perSig[i] = pps
	}

	return Statistics{
		SourcePages:       sourcePages,
		OutputSheets:      totalSheets,
		Signatures:        &numSigs,
		PagesPerSignature: perSig,
		OutputPages:       totalSheets * 2,
		BlankPagesAdded:   padded - sourcePages,
	}
}

func simpleStats(sourcePages int) Statistics {
	padded := roundUpToMultiple(sourcePages, 2)
	totalSheets := padded / 2

	return Statistics{
		SourcePages:     sourcePages,
		OutputSheets:    totalSheets,
		OutputPages:     totalSheets * 2,
		BlankPagesAdded: padded - sourcePages,
	}
}

func roundUpToMultiple(value, multiple int) int {
	return (value + multiple - 1) / multiple * multiple
}
