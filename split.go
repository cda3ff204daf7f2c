package impose

import "github.com/AberrantWolf/pdf-tools-sub000/document"

// SplitOutputs partitions an imposed document into page-range chunks per
// the configured split mode. Pages counts output pages per part, Sheets
// counts physical sheets (two output pages each), and Signatures counts
// signatures, each of which renders one front and one back page. SplitNone
// returns the document unchanged as the only part.
//
// Sheet and signature chunks assume the DoubleSided page order, where the
// sides of one sheet are adjacent.
func SplitOutputs(doc *document.Document, opts Options) ([]*document.Document, error) {
	if opts.Split.Kind == SplitNone {
		return []*document.Document{doc}, nil
	}
	if opts.Split.N <= 0 {
		return nil, configErrorf("split chunk size must be positive, got %d", opts.Split.N)
	}

	var per int
	switch opts.Split.Kind {
	case SplitPages:
		per = opts.Split.N
	case SplitSheets:
		per = opts.Split.N * 2
	case SplitSignatures:
		if !opts.Binding.UsesSignatures() {
			return nil, configErrorf("%s binding has no signatures to split by", opts.Binding)
		}
		per = opts.Split.N * 2
	default:
		return nil, configErrorf("unknown split mode %q", opts.Split.Kind)
	}

	var parts []*document.Document
	for from := 0; from < doc.NumPages(); from += per {
		to := min(from+per, doc.NumPages())
		part, err := doc.CopyPageRange(from, to)
		if err != nil {
			return nil, newOpError("SplitOutputs", err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}
