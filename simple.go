package impose

import "github.com/AberrantWolf/pdf-tools-sub000/reader"

// renderSimple renders sequential 2-up pairs for the non-signature
// bindings: page i on the left, page i+1 on the right, one output page per
// pair. An odd page count leaves the last right-hand cell blank.
func renderSimple(r *sheetRenderer, totalPages int) ([]reader.Reference, error) {
	slots := simpleSlots()

	padded := roundUpToMultiple(totalPages, 2)
	refs := make([]reader.Reference, 0, padded/2)
	for i := 0; i < padded; i += 2 {
		mapping := []int{i, i + 1}
		if i+1 >= totalPages {
			mapping[1] = -1
		}
		ref, err := r.renderSide(slots, mapping)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
