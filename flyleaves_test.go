package impose

import (
	"errors"
	"testing"

	"github.com/AberrantWolf/pdf-tools-sub000/document"
)

func TestMergeConcatenatesInOrder(t *testing.T) {
	first := fixtureDocument(t, 2)
	second := fixtureDocument(t, 3)

	merged, err := Merge([]*document.Document{first, second})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.NumPages(); got != 5 {
		t.Fatalf("merged pages = %d, want 5", got)
	}
	// The inputs are untouched.
	if first.NumPages() != 2 || second.NumPages() != 3 {
		t.Error("Merge mutated its inputs")
	}
}

func TestMergeSingleInputClones(t *testing.T) {
	src := fixtureDocument(t, 4)
	merged, err := Merge([]*document.Document{src})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged == src {
		t.Fatal("Merge returned the input document itself")
	}
	if got := merged.NumPages(); got != 4 {
		t.Fatalf("merged pages = %d, want 4", got)
	}
}

func TestMergeNoInput(t *testing.T) {
	if _, err := Merge(nil); !errors.Is(err, ErrNoInput) {
		t.Fatalf("Merge(nil) = %v, want ErrNoInput", err)
	}
}

func TestMergeEmptyDocuments(t *testing.T) {
	if _, err := Merge([]*document.Document{document.New()}); !errors.Is(err, ErrNoPages) {
		t.Fatalf("Merge(empty) = %v, want ErrNoPages", err)
	}
}

func TestAddFlyleavesCountsAndSize(t *testing.T) {
	doc := fixtureDocument(t, 3)
	wantW, wantH := doc.PageDimensions(0)

	AddFlyleaves(doc, 2, 1)
	// 2 front leaves = 4 pages, 1 back leaf = 2 pages.
	if got := doc.NumPages(); got != 9 {
		t.Fatalf("pages = %d, want 9", got)
	}

	// Blanks match the size of the first original page.
	for _, idx := range []int{0, 3, 7, 8} {
		w, h := doc.PageDimensions(idx)
		if !almostEqual(w, wantW) || !almostEqual(h, wantH) {
			t.Errorf("page %d = %gx%g, want %gx%g", idx, w, h, wantW, wantH)
		}
	}

	// The original first page now sits after the front flyleaves.
	content, err := doc.PageContent(4)
	if err != nil {
		t.Fatalf("PageContent: %v", err)
	}
	if len(content) == 0 {
		t.Error("original first page lost its content")
	}
	if content, _ := doc.PageContent(0); len(content) != 0 {
		t.Error("front flyleaf has content")
	}
}

func TestAddFlyleavesZeroIsNoOp(t *testing.T) {
	doc := fixtureDocument(t, 3)
	before := doc.PageRefs()
	AddFlyleaves(doc, 0, 0)
	after := doc.PageRefs()
	if len(before) != len(after) {
		t.Fatalf("page count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("page %d reference changed", i)
		}
	}
}
