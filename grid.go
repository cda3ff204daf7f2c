package impose

// Rect is an axis-aligned rectangle in sheet coordinates (points, origin at
// the lower-left corner of the page).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.Height }

// GridLayout describes the cell grid of one sheet side together with the
// positions of the fold and cut boundaries. A vertical boundary b sits to
// the right of column b; a horizontal boundary b sits below row b (rows are
// numbered from the top).
type GridLayout struct {
	Cols, Rows int

	LeafX, LeafY          float64 // lower-left corner of the printable leaf area
	LeafWidth, LeafHeight float64

	CellWidth, CellHeight float64

	VerticalFolds   []int
	HorizontalFolds []int
	VerticalCuts    []int

	// HorizontalSpine is set when the binding fold runs horizontally, which
	// happens only for quarto on landscape sheets. Octavo keeps a vertical
	// spine in either orientation.
	HorizontalSpine bool
}

// NewGridLayout builds the grid for one sheet side. The leaf area is the
// sheet minus the sheet margins; landscape reports the output orientation.
func NewGridLayout(a PageArrangement, sheetWidth, sheetHeight float64, margins SheetMargins, landscape bool) GridLayout {
	cols, rows := a.GridDimensions()

	left := mmToPt(margins.Left)
	right := mmToPt(margins.Right)
	top := mmToPt(margins.Top)
	bottom := mmToPt(margins.Bottom)

	g := GridLayout{
		Cols:       cols,
		Rows:       rows,
		LeafX:      left,
		LeafY:      bottom,
		LeafWidth:  sheetWidth - left - right,
		LeafHeight: sheetHeight - top - bottom,
	}
	g.CellWidth = g.LeafWidth / float64(cols)
	g.CellHeight = g.LeafHeight / float64(rows)

	switch a.Kind {
	case Folio:
		g.VerticalFolds = []int{0}
	case Quarto:
		g.VerticalFolds = []int{0}
		g.HorizontalFolds = []int{0}
		g.HorizontalSpine = landscape
	case Octavo:
		g.VerticalFolds = []int{0, 2}
		g.HorizontalFolds = []int{0}
		g.VerticalCuts = []int{1}
	case Custom:
		g.VerticalFolds = []int{0}
	}
	return g
}

// CellBounds returns the rectangle of the cell at (row, col). Row 0 is the
// top row, so its bounds sit highest on the sheet.
func (g GridLayout) CellBounds(row, col int) Rect {
	return Rect{
		X:      g.LeafX + float64(col)*g.CellWidth,
		Y:      g.LeafY + float64(g.Rows-row-1)*g.CellHeight,
		Width:  g.CellWidth,
		Height: g.CellHeight,
	}
}

// FoldEdges reports, for the cell at (row, col), which of its four edges lie
// on a fold boundary.
type FoldEdges struct {
	Left, Right, Top, Bottom bool
}

// FoldEdges returns the fold adjacency of one cell.
func (g GridLayout) FoldEdges(row, col int) FoldEdges {
	return FoldEdges{
		Left:   containsInt(g.VerticalFolds, col-1),
		Right:  containsInt(g.VerticalFolds, col),
		Top:    containsInt(g.HorizontalFolds, row-1),
		Bottom: containsInt(g.HorizontalFolds, row),
	}
}

// CutEdges reports which edges of the cell lie on a cut boundary.
func (g GridLayout) CutEdges(row, col int) FoldEdges {
	return FoldEdges{
		Left:  containsInt(g.VerticalCuts, col-1),
		Right: containsInt(g.VerticalCuts, col),
	}
}

// OuterEdges reports which edges of the cell lie on the boundary of the
// leaf area.
func (g GridLayout) OuterEdges(row, col int) FoldEdges {
	return FoldEdges{
		Left:   col == 0,
		Right:  col == g.Cols-1,
		Top:    row == 0,
		Bottom: row == g.Rows-1,
	}
}
