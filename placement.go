package impose

const pointsPerMM = 72.0 / 25.4

func mmToPt(mm float64) float64 { return mm * pointsPerMM }

// PagePlacement positions one source page (or a blank) inside a grid cell.
type PagePlacement struct {
	Slot       SignatureSlot
	SourcePage int // index into the merged source document, -1 for a blank

	// Rect is the rectangle the scaled content occupies on the sheet.
	Rect Rect

	// ScaleX and ScaleY are sheet-axis scale factors relative to the
	// effective source dimensions (swapped for 90/270 rotations).
	ScaleX, ScaleY float64

	// Rotation is the total clockwise rotation in degrees applied to the
	// content: the slot's 180° flip combined with the source rotation.
	Rotation int
}

// Matrix returns the PDF transformation matrix [a b c d e f] that maps the
// source page's unit space into the placement rectangle.
func (p PagePlacement) Matrix() [6]float64 {
	x, y := p.Rect.X, p.Rect.Y
	w, h := p.Rect.Width, p.Rect.Height
	switch p.Rotation {
	case 90:
		return [6]float64{0, -p.ScaleY, p.ScaleX, 0, x, y + h}
	case 180:
		return [6]float64{-p.ScaleX, 0, 0, -p.ScaleY, x + w, y + h}
	case 270:
		return [6]float64{0, p.ScaleY, -p.ScaleX, 0, x + w, y}
	default:
		return [6]float64{p.ScaleX, 0, 0, p.ScaleY, x, y}
	}
}

// contentMargins resolves the four cell margins in points. The spine margin
// follows the fold the cell will be bound along; cells away from any fold
// split the difference so facing pages keep a consistent text block. A
// rotated cell is printed upside down, so its resolved margins swap to land
// on the correct physical edges. With a horizontal spine the fold sits
// between the rows and margins are already expressed in sheet coordinates,
// so no rotated swap applies.
func contentMargins(edges FoldEdges, m LeafMargins, rotated, horizontalSpine bool) (left, right, top, bottom float64) {
	fore := mmToPt(m.ForeEdge)
	spine := mmToPt(m.Spine)
	top = mmToPt(m.Top)
	bottom = mmToPt(m.Bottom)

	if horizontalSpine {
		// Both vertical edges face away from the binding; the spine sits
		// at the horizontal fold with the fore edge opposite it.
		left, right = fore, fore
		switch {
		case edges.Bottom:
			bottom, top = spine, fore
		case edges.Top:
			bottom, top = fore, spine
		}
		return left, right, top, bottom
	}

	switch {
	case edges.Left && edges.Right:
		left, right = spine, spine
	case edges.Right:
		left, right = fore, spine
	case edges.Left:
		left, right = spine, fore
	default:
		avg := (fore + spine) / 2
		left, right = avg, avg
	}

	if rotated {
		left, right = right, left
		top, bottom = bottom, top
	}
	return left, right, top, bottom
}

// scaleFactors computes the sheet-axis scale factors for fitting a source of
// (sw, sh) into an area of (aw, ah).
func scaleFactors(mode ScalingMode, sw, sh, aw, ah float64) (sx, sy float64) {
	if sw <= 0 || sh <= 0 {
		return 1, 1
	}
	switch mode {
	case ScaleFill:
		s := max(aw/sw, ah/sh)
		return s, s
	case ScaleNone:
		return 1, 1
	case ScaleStretch:
		return aw / sw, ah / sh
	default: // ScaleFit
		s := min(aw/sw, ah/sh)
		return s, s
	}
}

// placePage computes the placement of one source page inside a cell.
// srcWidth and srcHeight are the unrotated source page dimensions.
func placePage(g GridLayout, slot SignatureSlot, sourcePage int, srcWidth, srcHeight float64, margins LeafMargins, mode ScalingMode, srcRotation Rotation) PagePlacement {
	cell := g.CellBounds(slot.Row, slot.Col)
	edges := g.FoldEdges(slot.Row, slot.Col)

	left, right, top, bottom := contentMargins(edges, margins, slot.Rotated, g.HorizontalSpine)
	area := Rect{
		X:      cell.X + left,
		Y:      cell.Y + bottom,
		Width:  cell.Width - left - right,
		Height: cell.Height - top - bottom,
	}
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}

	rotation := srcRotation.Degrees()
	if slot.Rotated {
		rotation = (rotation + 180) % 360
	}

	effW, effH := srcWidth, srcHeight
	if rotation == 90 || rotation == 270 {
		effW, effH = effH, effW
	}

	sx, sy := scaleFactors(mode, effW, effH, area.Width, area.Height)
	w, h := effW*sx, effH*sy

	// Content hugs the fold it will be bound along; free cells center.
	var x, y float64
	switch {
	case edges.Right:
		x = area.Right() - w
	case edges.Left:
		x = area.X
	default:
		x = area.X + (area.Width-w)/2
	}
	switch {
	case edges.Bottom:
		y = area.Y
	case edges.Top:
		y = area.Top() - h
	default:
		y = area.Y + (area.Height-h)/2
	}

	return PagePlacement{
		Slot:       slot,
		SourcePage: sourcePage,
		Rect:       Rect{X: x, Y: y, Width: w, Height: h},
		ScaleX:     sx,
		ScaleY:     sy,
		Rotation:   rotation,
	}
}
