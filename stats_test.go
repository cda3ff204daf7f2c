package impose

import (
	"errors"
	"testing"

	"github.com/AberrantWolf/pdf-tools-sub000/document"
)

func TestCalculateStatistics(t *testing.T) {
	tests := []struct {
		name       string
		pages      int
		binding    BindingType
		arr        PageArrangement
		front      int
		back       int
		wantSource int
		wantBlanks int
		wantSigs   int // -1 means no signature field
		wantSheets int
		wantOutput int
	}{
		{
			name: "folio exact", pages: 4, binding: BindingSignature,
			arr: PageArrangement{Kind: Folio},
			wantSource: 4, wantBlanks: 0, wantSigs: 1, wantSheets: 1, wantOutput: 2,
		},
		{
			name: "quarto exact", pages: 8, binding: BindingSignature,
			arr: PageArrangement{Kind: Quarto},
			wantSource: 8, wantBlanks: 0, wantSigs: 1, wantSheets: 2, wantOutput: 4,
		},
		{
			name: "octavo exact", pages: 16, binding: BindingSignature,
			arr: PageArrangement{Kind: Octavo},
			wantSource: 16, wantBlanks: 0, wantSigs: 1, wantSheets: 4, wantOutput: 8,
		},
		{
			name: "quarto padded", pages: 10, binding: BindingSignature,
			arr: PageArrangement{Kind: Quarto},
			wantSource: 10, wantBlanks: 6, wantSigs: 2, wantSheets: 4, wantOutput: 8,
		},
		{
			name: "perfect odd", pages: 11, binding: BindingPerfect,
			arr: PageArrangement{Kind: Quarto},
			wantSource: 11, wantBlanks: 1, wantSigs: -1, wantSheets: 6, wantOutput: 12,
		},
		{
			name: "quarto with flyleaves", pages: 10, binding: BindingSignature,
			arr: PageArrangement{Kind: Quarto}, front: 2, back: 2,
			wantSource: 18, wantBlanks: 6, wantSigs: 3, wantSheets: 6, wantOutput: 12,
		},
		{
			name: "single page folio", pages: 1, binding: BindingSignature,
			arr: PageArrangement{Kind: Folio},
			wantSource: 1, wantBlanks: 3, wantSigs: 1, wantSheets: 1, wantOutput: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Binding = tt.binding
			opts.Arrangement = tt.arr
			opts.FrontFlyleaves = tt.front
			opts.BackFlyleaves = tt.back

			stats, err := CalculateStatistics(
				[]*document.Document{fixtureDocument(t, tt.pages)}, opts)
			if err != nil {
				t.Fatalf("CalculateStatistics: %v", err)
			}

			if stats.SourcePages != tt.wantSource {
				t.Errorf("source pages = %d, want %d", stats.SourcePages, tt.wantSource)
			}
			if stats.BlankPagesAdded != tt.wantBlanks {
				t.Errorf("blanks = %d, want %d", stats.BlankPagesAdded, tt.wantBlanks)
			}
			if stats.OutputSheets != tt.wantSheets {
				t.Errorf("sheets = %d, want %d", stats.OutputSheets, tt.wantSheets)
			}
			if stats.OutputPages != tt.wantOutput {
				t.Errorf("output pages = %d, want %d", stats.OutputPages, tt.wantOutput)
			}
			if tt.wantSigs == -1 {
				if stats.Signatures != nil {
					t.Errorf("signatures = %d, want none", *stats.Signatures)
				}
				if stats.PagesPerSignature != nil {
					t.Errorf("pages per signature = %v, want none", stats.PagesPerSignature)
				}
			} else {
				if stats.Signatures == nil || *stats.Signatures != tt.wantSigs {
					t.Errorf("signatures = %v, want %d", stats.Signatures, tt.wantSigs)
				}
				if len(stats.PagesPerSignature) != tt.wantSigs {
					t.Errorf("pages per signature length = %d, want %d", len(stats.PagesPerSignature), tt.wantSigs)
				}
			}

			// Invariants that hold for every configuration.
			if stats.OutputPages != 2*stats.OutputSheets {
				t.Errorf("output pages %d != 2 * sheets %d", stats.OutputPages, stats.OutputSheets)
			}
		})
	}
}

func TestCalculateStatisticsNoPages(t *testing.T) {
	_, err := CalculateStatistics(nil, DefaultOptions())
	if !errors.Is(err, ErrNoPages) {
		t.Fatalf("error = %v, want ErrNoPages", err)
	}
}
