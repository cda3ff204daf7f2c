package impose

// SheetSide distinguishes the two printable faces of a sheet.
type SheetSide int

// Sheet sides.
const (
	SideFront SheetSide = iota
	SideBack
)

func (s SheetSide) String() string {
	if s == SideBack {
		return "Back"
	}
	return "Front"
}

// PageSide marks whether a slot holds a recto (right-hand) or verso
// (left-hand) page of the finished book.
type PageSide int

// Page sides.
const (
	Recto PageSide = iota
	Verso
)

// SignatureSlot describes where one page of a signature lands: which sheet
// side, which grid cell, and whether the cell is printed upside down.
type SignatureSlot struct {
	Index   int // slot index within the signature
	Side    SheetSide
	Row     int // grid row, 0 is visually the top
	Col     int
	Rotated bool // cell content is rotated 180°
	Page    PageSide
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// SignatureSlots enumerates the slots of one signature in emission order:
// all front-side slots first, then all back-side slots. Slot k receives the
// source page PageOrder(a)[k] (offset by the signature start).
func SignatureSlots(a PageArrangement) []SignatureSlot {
	switch a.Kind {
	case Folio:
		return folioSlots()
	case Quarto:
		return quartoSlots()
	case Octavo:
		return octavoSlots()
	case Custom:
		return customSlots(a.PagesPerSignature())
	default:
		return nil
	}
}

// PageOrder returns, for each slot of one signature, the 0-based page offset
// within the signature that the slot receives.
func PageOrder(a PageArrangement) []int {
	switch a.Kind {
	case Folio:
		return []int{3, 0, 1, 2}
	case Quarto:
		return []int{4, 3, 7, 0, 2, 5, 1, 6}
	case Octavo:
		return []int{4, 11, 8, 7, 3, 12, 15, 0, 5, 10, 9, 6, 2, 13, 14, 1}
	case Custom:
		// No traditional folding exists for arbitrary signature sizes;
		// pages run linearly through the slots.
		order := make([]int, a.PagesPerSignature())
		for i := range order {
			order[i] = i
		}
		return order
	default:
		return nil
	}
}

// MapPagesToSlots maps the slots of the signature starting at sigStart to
// absolute source page indices. Slots whose page falls at or past total
// receive -1 (a padding blank).
func MapPagesToSlots(a PageArrangement, sigStart, total int) []int {
	order := PageOrder(a)
	mapping := make([]int, len(order))
	for k, offset := range order {
		page := sigStart + offset
		if page < total {
			mapping[k] = page
		} else {
			mapping[k] = -1
		}
	}
	return mapping
}

// The recto/verso assignments below follow the traditional folding tables:
// whether a cell holds a left- or right-hand page of the finished book falls
// out of the fold sequence, so the values are fixed per slot rather than
// derived.

func folioSlots() []SignatureSlot {
	return []SignatureSlot{
		{Index: 0, Side: SideFront, Row: 0, Col: 0, Page: Verso},
		{Index: 1, Side: SideFront, Row: 0, Col: 1, Page: Recto},
		{Index: 2, Side: SideBack, Row: 0, Col: 0, Page: Verso},
		{Index: 3, Side: SideBack, Row: 0, Col: 1, Page: Recto},
	}
}

func quartoSlots() []SignatureSlot {
	// Top row prints upside down so heads meet at the horizontal fold.
	return []SignatureSlot{
		{Index: 0, Side: SideFront, Row: 0, Col: 0, Rotated: true, Page: Recto},
		{Index: 1, Side: SideFront, Row: 0, Col: 1, Rotated: true, Page: Verso},
		{Index: 2, Side: SideFront, Row: 1, Col: 0, Page: Verso},
		{Index: 3, Side: SideFront, Row: 1, Col: 1, Page: Recto},
		{Index: 4, Side: SideBack, Row: 0, Col: 0, Rotated: true, Page: Recto},
		{Index: 5, Side: SideBack, Row: 0, Col: 1, Rotated: true, Page: Verso},
		{Index: 6, Side: SideBack, Row: 1, Col: 0, Page: Recto},
		{Index: 7, Side: SideBack, Row: 1, Col: 1, Page: Verso},
	}
}

func octavoSlots() []SignatureSlot {
	return []SignatureSlot{
		{Index: 0, Side: SideFront, Row: 0, Col: 0, Rotated: true, Page: Recto},
		{Index: 1, Side: SideFront, Row: 0, Col: 1, Rotated: true, Page: Verso},
		{Index: 2, Side: SideFront, Row: 0, Col: 2, Rotated: true, Page: Recto},
		{Index: 3, Side: SideFront, Row: 0, Col: 3, Rotated: true, Page: Verso},
		{Index: 4, Side: SideFront, Row: 1, Col: 0, Page: Verso},
		{Index: 5, Side: SideFront, Row: 1, Col: 1, Page: Recto},
		{Index: 6, Side: SideFront, Row: 1, Col: 2, Page: Verso},
		{Index: 7, Side: SideFront, Row: 1, Col: 3, Page: Recto},
		{Index: 8, Side: SideBack, Row: 0, Col: 0, Rotated: true, Page: Verso},
		{Index: 9, Side: SideBack, Row: 0, Col: 1, Rotated: true, Page: Recto},
		{Index: 10, Side: SideBack, Row: 0, Col: 2, Rotated: true, Page: Verso},
		{Index: 11, Side: SideBack, Row: 0, Col: 3, Rotated: true, Page: Recto},
		{Index: 12, Side: SideBack, Row: 1, Col: 0, Page: Recto},
		{Index: 13, Side: SideBack, Row: 1, Col: 1, Page: Verso},
		{Index: 14, Side: SideBack, Row: 1, Col: 2, Page: Recto},
		{Index: 15, Side: SideBack, Row: 1, Col: 3, Page: Verso},
	}
}

func customSlots(pps int) []SignatureSlot {
	half := pps / 2
	slots := make([]SignatureSlot, 0, pps)
	for i, side := range []SheetSide{SideFront, SideBack} {
		base := i * half
		for j := 0; j < half; j++ {
			page := Verso
			if j%2 == 1 {
				page = Recto
			}
			slots = append(slots, SignatureSlot{
				Index: base + j, Side: side, Row: j / 2, Col: j % 2,
				Page: page,
			})
		}
	}
	return slots
}

// simpleSlots returns the two slots of a 2-up output page: verso on the
// left, recto on the right.
func simpleSlots() []SignatureSlot {
	return []SignatureSlot{
		{Index: 0, Side: SideFront, Row: 0, Col: 0, Page: Verso},
		{Index: 1, Side: SideFront, Row: 0, Col: 1, Page: Recto},
	}
}
