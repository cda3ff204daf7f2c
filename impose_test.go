package impose

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/AberrantWolf/pdf-tools-sub000/document"
	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// fixtureDocument builds an in-memory source document with the given number
// of A4 pages, each labeled with its page number.
func fixtureDocument(t *testing.T, pages int) *document.Document {
	t.Helper()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 24)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 100, fmt.Sprintf("Page %d", i))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("generating fixture: %v", err)
	}
	src, err := reader.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	doc, err := document.FromReader(src)
	if err != nil {
		t.Fatalf("building fixture document: %v", err)
	}
	return doc
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.InputFiles = []string{"fixture.pdf"}
	return opts
}

func TestImposeFolioFourPages(t *testing.T) {
	opts := testOptions()
	opts.Arrangement = PageArrangement{Kind: Folio}

	out, err := Impose([]*document.Document{fixtureDocument(t, 4)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	// One folio signature renders one front and one back.
	if got := out.NumPages(); got != 2 {
		t.Fatalf("output pages = %d, want 2", got)
	}
}

func TestImposeQuartoTenPages(t *testing.T) {
	opts := testOptions()

	out, err := Impose([]*document.Document{fixtureDocument(t, 10)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	// 10 pages pad to 16 = two quarto signatures, two sides each.
	if got := out.NumPages(); got != 4 {
		t.Fatalf("output pages = %d, want 4", got)
	}
}

func TestImposePerfectBindingOddPages(t *testing.T) {
	opts := testOptions()
	opts.Binding = BindingPerfect

	out, err := Impose([]*document.Document{fixtureDocument(t, 11)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	// 11 pages pad to 12, two per 2-up output page, fronts only.
	if got := out.NumPages(); got != 6 {
		t.Fatalf("output pages = %d, want 6", got)
	}
}

func TestImposeNoInput(t *testing.T) {
	if _, err := Impose(nil, testOptions()); !errors.Is(err, ErrNoInput) {
		t.Fatalf("Impose(nil) error = %v, want ErrNoInput", err)
	}
}

func TestImposeRejectsBadArrangement(t *testing.T) {
	opts := testOptions()
	opts.Arrangement = PageArrangement{Kind: Custom, CustomPages: 6}

	_, err := Impose([]*document.Document{fixtureDocument(t, 4)}, opts)
	var cfg ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Impose error = %v, want ConfigError", err)
	}
}

func TestImposeMergesMultipleInputs(t *testing.T) {
	opts := testOptions()
	opts.Arrangement = PageArrangement{Kind: Folio}

	docs := []*document.Document{fixtureDocument(t, 3), fixtureDocument(t, 5)}
	out, err := Impose(docs, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	// 8 merged pages fill exactly two folio signatures.
	if got := out.NumPages(); got != 4 {
		t.Fatalf("output pages = %d, want 4", got)
	}
}

func TestImposeSingleSidedSequenceOrder(t *testing.T) {
	opts := testOptions()
	opts.Arrangement = PageArrangement{Kind: Folio}
	opts.Format = FormatSingleSidedSequence
	opts.AddPageNumbers = true

	out, err := Impose([]*document.Document{fixtureDocument(t, 8)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	if got := out.NumPages(); got != 4 {
		t.Fatalf("output pages = %d, want 4", got)
	}

	// Fronts come first: page 0 is signature 0's front, which holds source
	// pages 3 and 0, numbered 4 and 1.
	content, err := out.PageContent(0)
	if err != nil {
		t.Fatalf("PageContent: %v", err)
	}
	if !bytes.Contains(content, []byte("(4)")) || !bytes.Contains(content, []byte("(1)")) {
		t.Errorf("first sequence page missing numbers 4 and 1:\n%s", content)
	}
	// Page 2 is signature 0's back holding pages 1 and 2, numbered 2 and 3.
	content, err = out.PageContent(2)
	if err != nil {
		t.Fatalf("PageContent: %v", err)
	}
	if !bytes.Contains(content, []byte("(2)")) || !bytes.Contains(content, []byte("(3)")) {
		t.Errorf("third sequence page missing numbers 2 and 3:\n%s", content)
	}
}

func TestImposeTwoSided(t *testing.T) {
	opts := testOptions()
	opts.Format = FormatTwoSided

	front, back, err := ImposeTwoSided([]*document.Document{fixtureDocument(t, 8)}, opts)
	if err != nil {
		t.Fatalf("ImposeTwoSided: %v", err)
	}
	if front.NumPages() != 1 || back.NumPages() != 1 {
		t.Fatalf("front/back pages = %d/%d, want 1/1", front.NumPages(), back.NumPages())
	}
}

func TestImposeTwoSidedRejectsSimpleBinding(t *testing.T) {
	opts := testOptions()
	opts.Binding = BindingSpiral

	_, _, err := ImposeTwoSided([]*document.Document{fixtureDocument(t, 4)}, opts)
	var cfg ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("ImposeTwoSided error = %v, want ConfigError", err)
	}
}

func TestImposeOutputRoundTrips(t *testing.T) {
	opts := testOptions()

	out, err := Impose([]*document.Document{fixtureDocument(t, 8)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}

	path := filepath.Join(t.TempDir(), "imposed.pdf")
	if err := out.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	parsed, err := reader.Open(path)
	if err != nil {
		t.Fatalf("reopening output: %v", err)
	}
	if got := parsed.NumPages(); got != out.NumPages() {
		t.Fatalf("reparsed pages = %d, want %d", got, out.NumPages())
	}
}

func TestImposeEmbedsEachSourcePageOnce(t *testing.T) {
	opts := testOptions()
	opts.Arrangement = PageArrangement{Kind: Folio}

	out, err := Impose([]*document.Document{fixtureDocument(t, 4)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}

	// Front page resources reference slots P0 and P1.
	res := out.PageResources(0)
	xobjs, ok := out.Resolve(res["XObject"]).(reader.Dict)
	if !ok {
		t.Fatalf("front page has no XObject dictionary")
	}
	for _, name := range []string{"P0", "P1"} {
		if _, ok := xobjs[reader.Name(name)]; !ok {
			t.Errorf("front page missing XObject %s", name)
		}
	}
}

func TestGeneratePreviewCapsPages(t *testing.T) {
	opts := testOptions()

	out, err := GeneratePreview([]*document.Document{fixtureDocument(t, 40)}, opts, 1)
	if err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	// One quarto signature of sheets yields one front and one back.
	if got := out.NumPages(); got != 2 {
		t.Fatalf("preview pages = %d, want 2", got)
	}
}

func TestGeneratePreviewRejectsZeroSheets(t *testing.T) {
	_, err := GeneratePreview([]*document.Document{fixtureDocument(t, 4)}, testOptions(), 0)
	var cfg ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("GeneratePreview error = %v, want ConfigError", err)
	}
}

func TestSplitOutputs(t *testing.T) {
	opts := testOptions()
	opts.Split = SplitMode{Kind: SplitSignatures, N: 1}

	out, err := Impose([]*document.Document{fixtureDocument(t, 24)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	// 24 quarto pages = 3 signatures = 6 output pages.
	if got := out.NumPages(); got != 6 {
		t.Fatalf("output pages = %d, want 6", got)
	}

	parts, err := SplitOutputs(out, opts)
	if err != nil {
		t.Fatalf("SplitOutputs: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	for i, part := range parts {
		if got := part.NumPages(); got != 2 {
			t.Errorf("part %d pages = %d, want 2", i, got)
		}
	}
}

func TestSplitOutputsNone(t *testing.T) {
	opts := testOptions()
	out, err := Impose([]*document.Document{fixtureDocument(t, 8)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}

	parts, err := SplitOutputs(out, opts)
	if err != nil {
		t.Fatalf("SplitOutputs: %v", err)
	}
	if len(parts) != 1 || parts[0] != out {
		t.Fatalf("SplitNone should return the document itself as the only part")
	}
}

func TestSplitOutputsSignaturesRequiresSignatureBinding(t *testing.T) {
	opts := testOptions()
	opts.Binding = BindingPerfect
	opts.Split = SplitMode{Kind: SplitSignatures, N: 1}

	out, err := Impose([]*document.Document{fixtureDocument(t, 8)}, opts)
	if err != nil {
		t.Fatalf("Impose: %v", err)
	}
	if _, err := SplitOutputs(out, opts); err == nil {
		t.Fatal("expected error splitting a simple binding by signatures")
	}
}
