package impose

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Mark geometry constants, in points.
const (
	foldLineWidth         = 0.5
	cutLineWidth          = 0.5
	cropMarkWidth         = 0.25
	cropMarkGap           = 3.0
	cropMarkLength        = 12.0
	registrationMarkWidth = 0.25
	registrationMarkSize  = 10.0
	scissorsSize          = 8.0
	sewingMarkTick        = 3.0
	sewingStations        = 4

	// Kappa for approximating a quarter circle with one cubic Bezier.
	bezierCircleFactor = 0.552284749831
)

// renderMarks generates the content stream operations for the enabled mark
// families on one sheet side. Marks are drawn relative to the leaf area, not
// per cell; contentBounds holds the placed content rectangle of each
// non-blank slot for trim marks.
func renderMarks(marks PrinterMarks, g GridLayout, contentBounds []Rect) []byte {
	var b bytes.Buffer
	b.WriteString("q\n0 0 0 RG\n")

	if marks.FoldLines {
		writeFoldLines(&b, g)
	}
	if marks.CutLines {
		writeCutLines(&b, g)
	}
	if marks.TrimMarks {
		writeTrimMarks(&b, contentBounds)
	}
	if marks.CropMarks {
		writeCropMarks(&b, g)
	}
	if marks.RegistrationMarks {
		writeRegistrationMarks(&b, g)
	}
	if marks.SewingMarks {
		writeSewingMarks(&b, g)
	}
	if marks.SpineMarks {
		writeSpineMarks(&b, g)
	}

	b.WriteString("Q\n")
	return b.Bytes()
}

// writeFoldLines draws dashed lines at the fold boundaries. In 4-column
// layouts the center boundary is a cut, not a fold, and is skipped.
func writeFoldLines(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n[6 3] 0 d\n", fnum(foldLineWidth))

	for col := 1; col < g.Cols; col++ {
		if g.Cols == 4 && col == 2 {
			continue
		}
		x := g.LeafX + float64(col)*g.CellWidth
		writeLine(b, x, g.LeafY, x, g.leafTop())
	}
	for _, fold := range g.HorizontalFolds {
		y := g.leafTop() - float64(fold+1)*g.CellHeight
		writeLine(b, g.LeafX, y, g.leafRight(), y)
	}

	b.WriteString("[] 0 d\n")
}

// writeCutLines draws solid lines with scissors glyphs at the cut positions:
// the horizontal row boundaries, plus the vertical center cut of 4-column
// layouts.
func writeCutLines(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n[] 0 d\n", fnum(cutLineWidth))

	for row := 1; row < g.Rows; row++ {
		y := g.LeafY + float64(row)*g.CellHeight
		writeLine(b, g.LeafX, y, g.leafRight(), y)
		writeScissorsRight(b, g.LeafX-scissorsSize-3.0, y)
	}

	if g.Cols == 4 {
		x := g.LeafX + 2*g.CellWidth
		writeLine(b, x, g.LeafY, x, g.leafTop())
		writeScissorsUp(b, x, g.LeafY-scissorsSize-3.0)
	}
}

func writeTrimMarks(b *bytes.Buffer, contentBounds []Rect) {
	if len(contentBounds) == 0 {
		return
	}
	fmt.Fprintf(b, "%s w\n[] 0 d\n", fnum(cropMarkWidth))
	for _, r := range contentBounds {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		writeCornerMarks(b, r.X, r.Y, r.Right(), r.Top())
	}
}

func writeCropMarks(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n[] 0 d\n", fnum(cropMarkWidth))
	writeCornerMarks(b, g.LeafX, g.LeafY, g.leafRight(), g.leafTop())
}

// writeCornerMarks draws L-shaped marks just outside the four corners of a
// rectangle.
func writeCornerMarks(b *bytes.Buffer, left, bottom, right, top float64) {
	// Top-left
	writeLine(b, left, top+cropMarkGap, left, top+cropMarkGap+cropMarkLength)
	writeLine(b, left-cropMarkGap, top, left-cropMarkGap-cropMarkLength, top)
	// Top-right
	writeLine(b, right, top+cropMarkGap, right, top+cropMarkGap+cropMarkLength)
	writeLine(b, right+cropMarkGap, top, right+cropMarkGap+cropMarkLength, top)
	// Bottom-left
	writeLine(b, left, bottom-cropMarkGap, left, bottom-cropMarkGap-cropMarkLength)
	writeLine(b, left-cropMarkGap, bottom, left-cropMarkGap-cropMarkLength, bottom)
	// Bottom-right
	writeLine(b, right, bottom-cropMarkGap, right, bottom-cropMarkGap-cropMarkLength)
	writeLine(b, right+cropMarkGap, bottom, right+cropMarkGap+cropMarkLength, bottom)
}

// writeRegistrationMarks draws crosshair circles at the midpoint of each
// leaf edge, offset outward so they survive trimming.
func writeRegistrationMarks(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n", fnum(registrationMarkWidth))

	offset := cropMarkGap + registrationMarkSize
	half := registrationMarkSize / 2.0
	midX := (g.LeafX + g.leafRight()) / 2
	midY := (g.LeafY + g.leafTop()) / 2

	positions := [4][2]float64{
		{midX, g.leafTop() + offset},
		{midX, g.LeafY - offset},
		{g.LeafX - offset, midY},
		{g.leafRight() + offset, midY},
	}
	for _, p := range positions {
		writeLine(b, p[0]-half, p[1], p[0]+half, p[1])
		writeLine(b, p[0], p[1]-half, p[0], p[1]+half)
		writeCircle(b, p[0], p[1], half*0.7)
	}
}

// writeSewingMarks draws short ticks across each spine fold at evenly spaced
// sewing stations so the stations line up across the signatures of a book.
func writeSewingMarks(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n[] 0 d\n", fnum(foldLineWidth))

	for _, fold := range g.VerticalFolds {
		x := g.LeafX + float64(fold+1)*g.CellWidth
		for i := 1; i <= sewingStations; i++ {
			y := g.LeafY + g.LeafHeight*float64(i)/float64(sewingStations+1)
			writeLine(b, x-sewingMarkTick, y, x+sewingMarkTick, y)
		}
	}
	for _, fold := range g.HorizontalFolds {
		y := g.leafTop() - float64(fold+1)*g.CellHeight
		for i := 1; i <= sewingStations; i++ {
			x := g.LeafX + g.LeafWidth*float64(i)/float64(sewingStations+1)
			writeLine(b, x, y-sewingMarkTick, x, y+sewingMarkTick)
		}
	}
}

// writeSpineMarks draws solid segments extending each spine fold past the
// leaf edges, marking where the binding fold meets the trimmed block.
func writeSpineMarks(b *bytes.Buffer, g GridLayout) {
	fmt.Fprintf(b, "%s w\n[] 0 d\n", fnum(cutLineWidth))

	for _, fold := range g.VerticalFolds {
		x := g.LeafX + float64(fold+1)*g.CellWidth
		writeLine(b, x, g.LeafY-cropMarkGap, x, g.LeafY-cropMarkGap-cropMarkLength)
		writeLine(b, x, g.leafTop()+cropMarkGap, x, g.leafTop()+cropMarkGap+cropMarkLength)
	}
	for _, fold := range g.HorizontalFolds {
		y := g.leafTop() - float64(fold+1)*g.CellHeight
		writeLine(b, g.LeafX-cropMarkGap, y, g.LeafX-cropMarkGap-cropMarkLength, y)
		writeLine(b, g.leafRight()+cropMarkGap, y, g.leafRight()+cropMarkGap+cropMarkLength, y)
	}
}

// writeScissorsRight draws a scissors glyph pointing right, sitting to the
// left of a horizontal cut line.
func writeScissorsRight(b *bytes.Buffer, x, y float64) {
	half := scissorsSize / 2.0
	r := half * 0.4

	b.WriteString("q\n0.3 w\n")
	cx, cy1, cy2 := x+half*0.3, y+half*0.5, y-half*0.5
	writeCircle(b, cx, cy1, r)
	writeCircle(b, cx, cy2, r)
	writeLine(b, cx+r, cy1-r*0.5, x+scissorsSize, y+1.0)
	writeLine(b, cx+r, cy2+r*0.5, x+scissorsSize, y-1.0)
	b.WriteString("Q\n")
}

// writeScissorsUp draws a scissors glyph pointing up, sitting below a
// vertical cut line.
func writeScissorsUp(b *bytes.Buffer, x, y float64) {
	half := scissorsSize / 2.0
	r := half * 0.4

	b.WriteString("q\n0.3 w\n")
	cx1, cx2, cy := x-half*0.5, x+half*0.5, y+half*0.3
	writeCircle(b, cx1, cy, r)
	writeCircle(b, cx2, cy, r)
	writeLine(b, cx1+r*0.5, cy+r, x-1.0, y+scissorsSize)
	writeLine(b, cx2-r*0.5, cy+r, x+1.0, y+scissorsSize)
	b.WriteString("Q\n")
}

func writeLine(b *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(b, "%s %s m %s %s l S\n", fnum(x1), fnum(y1), fnum(x2), fnum(y2))
}

// writeCircle approximates a circle with four Bezier quarter arcs, starting
// at the rightmost point.
func writeCircle(b *bytes.Buffer, cx, cy, r float64) {
	k := r * bezierCircleFactor
	fmt.Fprintf(b, "%s %s m\n", fnum(cx+r), fnum(cy))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n",
		fnum(cx+r), fnum(cy+k), fnum(cx+k), fnum(cy+r), fnum(cx), fnum(cy+r))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n",
		fnum(cx-k), fnum(cy+r), fnum(cx-r), fnum(cy+k), fnum(cx-r), fnum(cy))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n",
		fnum(cx-r), fnum(cy-k), fnum(cx-k), fnum(cy-r), fnum(cx), fnum(cy-r))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n",
		fnum(cx+k), fnum(cy-r), fnum(cx+r), fnum(cy-k), fnum(cx+r), fnum(cy))
	b.WriteString("S\n")
}

func (g GridLayout) leafRight() float64 { return g.LeafX + g.LeafWidth }
func (g GridLayout) leafTop() float64   { return g.LeafY + g.LeafHeight }

// fnum formats a content stream number compactly, trimming trailing zeros.
func fnum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
