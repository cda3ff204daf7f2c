package impose

import "github.com/AberrantWolf/pdf-tools-sub000/reader"

// renderSignatures renders every signature of the padded source, front
// sides through frontR and back sides through backR. The two renderers may
// share one output document, in which case their references interleave into
// a single page list later.
func renderSignatures(frontR, backR *sheetRenderer, totalPages int, a PageArrangement) (fronts, backs []reader.Reference, err error) {
	pps := a.PagesPerSignature()
	slots := SignatureSlots(a)
	half := len(slots) / 2

	numSigs := roundUpToMultiple(totalPages, pps) / pps
	for sig := 0; sig < numSigs; sig++ {
		mapping := MapPagesToSlots(a, sig*pps, totalPages)

		frontRef, err := frontR.renderSide(slots[:half], mapping[:half])
		if err != nil {
			return nil, nil, err
		}
		fronts = append(fronts, frontRef)

		backRef, err := backR.renderSide(slots[half:], mapping[half:])
		if err != nil {
			return nil, nil, err
		}
		backs = append(backs, backRef)
	}
	return fronts, backs, nil
}
