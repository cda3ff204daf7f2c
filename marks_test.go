package impose

import (
	"strings"
	"testing"
)

func renderTestMarks(t *testing.T, marks PrinterMarks, a PageArrangement) string {
	t.Helper()
	g := testGrid(a, false)
	return string(renderMarks(marks, g, nil))
}

func TestRenderMarksWrapsGraphicsState(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{FoldLines: true}, PageArrangement{Kind: Folio})
	if !strings.HasPrefix(ops, "q\n0 0 0 RG\n") {
		t.Errorf("ops do not start with state save and stroke color:\n%s", ops)
	}
	if !strings.HasSuffix(ops, "Q\n") {
		t.Errorf("ops do not end with state restore:\n%s", ops)
	}
}

func TestFoldLinesDashed(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{FoldLines: true}, PageArrangement{Kind: Folio})
	if !strings.Contains(ops, "[6 3] 0 d\n") {
		t.Errorf("fold lines missing dash pattern:\n%s", ops)
	}
	if !strings.Contains(ops, "[] 0 d\n") {
		t.Errorf("dash pattern not reset after fold lines:\n%s", ops)
	}
	// One vertical line between the two columns.
	if got := strings.Count(ops, " l S\n"); got != 1 {
		t.Errorf("fold line count = %d, want 1", got)
	}
}

func TestOctavoFoldLinesSkipCenterCut(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{FoldLines: true}, PageArrangement{Kind: Octavo})
	g := testGrid(PageArrangement{Kind: Octavo}, false)

	center := fnum(g.LeafX + 2*g.CellWidth)
	if strings.Contains(ops, center+" "+fnum(g.LeafY)+" m") {
		t.Errorf("center boundary drawn as fold line:\n%s", ops)
	}
	// Columns 1 and 3 are folds, plus the horizontal fold: 3 lines.
	if got := strings.Count(ops, " l S\n"); got != 3 {
		t.Errorf("fold line count = %d, want 3", got)
	}
}

func TestCutLinesIncludeScissors(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{CutLines: true}, PageArrangement{Kind: Octavo})
	// Scissors glyphs carry their own thin line width.
	if !strings.Contains(ops, "0.3 w\n") {
		t.Errorf("cut lines missing scissors glyphs:\n%s", ops)
	}
	// Octavo has a row cut and the vertical center cut: two glyphs with
	// two finger holes each, each hole one circle of four Bezier arcs.
	if got := strings.Count(ops, " c\n"); got != 16 {
		t.Errorf("Bezier segment count = %d, want 16", got)
	}
}

func TestCropMarksCornerCount(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{CropMarks: true}, PageArrangement{Kind: Quarto})
	// Two L-shape strokes per corner.
	if got := strings.Count(ops, " l S\n"); got != 8 {
		t.Errorf("crop mark stroke count = %d, want 8", got)
	}
	if !strings.Contains(ops, fnum(cropMarkWidth)+" w\n") {
		t.Errorf("crop marks missing line width:\n%s", ops)
	}
}

func TestTrimMarksUseContentBounds(t *testing.T) {
	g := testGrid(PageArrangement{Kind: Folio}, false)

	bounds := []Rect{
		{X: 100, Y: 100, Width: 200, Height: 300},
		{X: 400, Y: 100, Width: 0, Height: 300}, // degenerate, skipped
	}
	ops := string(renderMarks(PrinterMarks{TrimMarks: true}, g, bounds))
	if got := strings.Count(ops, " l S\n"); got != 8 {
		t.Errorf("trim mark stroke count = %d, want 8 (one valid rect)", got)
	}

	ops = string(renderMarks(PrinterMarks{TrimMarks: true}, g, nil))
	if strings.Count(ops, " l S\n") != 0 {
		t.Errorf("trim marks drawn without content bounds:\n%s", ops)
	}
}

func TestRegistrationMarks(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{RegistrationMarks: true}, PageArrangement{Kind: Quarto})
	// Four marks, each a crosshair (2 strokes) and a circle (4 arcs).
	if got := strings.Count(ops, " l S\n"); got != 8 {
		t.Errorf("crosshair stroke count = %d, want 8", got)
	}
	if got := strings.Count(ops, " c\n"); got != 16 {
		t.Errorf("circle arc count = %d, want 16", got)
	}
}

func TestSewingMarksOnSpineFold(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{SewingMarks: true}, PageArrangement{Kind: Folio})
	// Folio has one vertical fold and four stations.
	if got := strings.Count(ops, " l S\n"); got != sewingStations {
		t.Errorf("sewing tick count = %d, want %d", got, sewingStations)
	}
}

func TestSpineMarksExtendFolds(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{SpineMarks: true}, PageArrangement{Kind: Quarto})
	// One vertical and one horizontal fold, two segments each.
	if got := strings.Count(ops, " l S\n"); got != 4 {
		t.Errorf("spine segment count = %d, want 4", got)
	}
}

func TestNoMarksYieldsBareWrapper(t *testing.T) {
	ops := renderTestMarks(t, PrinterMarks{}, PageArrangement{Kind: Quarto})
	if ops != "q\n0 0 0 RG\nQ\n" {
		t.Errorf("ops = %q, want empty wrapper", ops)
	}
}

func TestFnum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{8, "8"},
		{0.25, "0.25"},
		{-0.0000001, "0"},
		{612.2835, "612.2835"},
		{1.50000, "1.5"},
	}
	for _, tt := range tests {
		if got := fnum(tt.in); got != tt.want {
			t.Errorf("fnum(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
