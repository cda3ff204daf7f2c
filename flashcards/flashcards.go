// Package flashcards turns CSV word lists into printable flashcard sheets.
//
// Cards are laid out in a grid, fronts and backs on alternating pages. Back
// pages mirror the column order so that fronts and backs line up when the
// stack is printed double-sided and cut apart.
package flashcards

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
)

// Card is one flashcard: a prompt on the front, an answer on the back.
type Card struct {
	Front string
	Back  string
}

// ReadCards parses cards from CSV. The first record must be a header with
// "front" and "back" columns, in either order; extra columns are ignored.
func ReadCards(r io.Reader) ([]Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("flashcards: reading header: %w", err)
	}
	frontCol, backCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "front":
			frontCol = i
		case "back":
			backCol = i
		}
	}
	if frontCol < 0 || backCol < 0 {
		return nil, fmt.Errorf("flashcards: header %v lacks front and back columns", header)
	}

	var cards []Card
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flashcards: reading cards: %w", err)
		}
		line++
		if frontCol >= len(record) || backCol >= len(record) {
			return nil, fmt.Errorf("flashcards: line %d has %d fields, need %d", line, len(record), max(frontCol, backCol)+1)
		}
		cards = append(cards, Card{
			Front: strings.TrimSpace(record[frontCol]),
			Back:  strings.TrimSpace(record[backCol]),
		})
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("flashcards: no cards in input")
	}
	return cards, nil
}

// Generator renders flashcard sheets. All dimensions are in millimeters.
type Generator struct {
	paper      string
	margin     float64
	gutter     float64
	cardWidth  float64
	cardHeight float64
	cols, rows int
	fontSize   float64
	qrCodes    bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithCardSize sets the card dimensions in millimeters.
func WithCardSize(width, height float64) Option {
	return func(g *Generator) { g.cardWidth, g.cardHeight = width, height }
}

// WithGrid sets the number of card columns and rows per page.
func WithGrid(cols, rows int) Option {
	return func(g *Generator) { g.cols, g.rows = cols, rows }
}

// WithFontSize sets the card text size in points.
func WithFontSize(size float64) Option {
	return func(g *Generator) { g.fontSize = size }
}

// WithQRCodes adds a QR code of the front text to each card back, for
// checking answers against a phone-based deck.
func WithQRCodes(enabled bool) Option {
	return func(g *Generator) { g.qrCodes = enabled }
}

// WithPaper sets the gofpdf paper name, e.g. "Letter" or "A4".
func WithPaper(name string) Option {
	return func(g *Generator) { g.paper = name }
}

// NewGenerator builds a generator with poker-sized cards, 2x3 per Letter
// page, overridden by opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		paper:      "Letter",
		margin:     10.0,
		gutter:     5.0,
		cardWidth:  63.5,
		cardHeight: 88.9,
		cols:       2,
		rows:       3,
		fontSize:   12.0,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the flashcard PDF for the given cards.
func (g *Generator) Generate(cards []Card, w io.Writer) error {
	if len(cards) == 0 {
		return fmt.Errorf("flashcards: no cards to generate")
	}
	if g.cols <= 0 || g.rows <= 0 {
		return fmt.Errorf("flashcards: grid must be positive, got %dx%d", g.cols, g.rows)
	}

	pdf := gofpdf.New("P", "mm", g.paper, "")
	pdf.SetFont("Helvetica", "", g.fontSize)
	pdf.SetAutoPageBreak(false, 0)

	perPage := g.cols * g.rows
	for start := 0; start < len(cards); start += perPage {
		end := min(start+perPage, len(cards))
		batch := cards[start:end]

		pdf.AddPage()
		for i, card := range batch {
			x, y := g.cardOrigin(i, false)
			g.drawCard(pdf, x, y, card.Front)
		}

		pdf.AddPage()
		for i, card := range batch {
			x, y := g.cardOrigin(i, true)
			g.drawCard(pdf, x, y, card.Back)
			if g.qrCodes {
				if err := g.drawQR(pdf, x, y, card.Front); err != nil {
					return err
				}
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("flashcards: writing pdf: %w", err)
	}
	return nil
}

// cardOrigin returns the top-left corner of the i-th card on a page. Back
// pages mirror the column so the card lands behind its front after a
// long-edge duplex pass.
func (g *Generator) cardOrigin(i int, back bool) (x, y float64) {
	col := i % g.cols
	row := i / g.cols
	if back {
		col = g.cols - 1 - col
	}
	x = g.margin + float64(col)*(g.cardWidth+g.gutter)
	y = g.margin + float64(row)*(g.cardHeight+g.gutter)
	return x, y
}

// drawCard draws the card border and its centered text.
func (g *Generator) drawCard(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.SetDrawColor(180, 180, 180)
	pdf.Rect(x, y, g.cardWidth, g.cardHeight, "D")

	lineHeight := g.fontSize * 0.5
	pdf.SetXY(x+2, y+g.cardHeight/2-lineHeight)
	pdf.MultiCell(g.cardWidth-4, lineHeight, text, "", "C", false)
}

// drawQR renders a QR code of the given text in the card's lower-right
// corner.
func (g *Generator) drawQR(pdf *gofpdf.Fpdf, x, y float64, text string) error {
	code, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		return fmt.Errorf("flashcards: encoding qr: %w", err)
	}
	code, err = barcode.Scale(code, 128, 128)
	if err != nil {
		return fmt.Errorf("flashcards: scaling qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return fmt.Errorf("flashcards: rendering qr: %w", err)
	}

	name := fmt.Sprintf("qr-%x", hashString(text))
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	const qrSize = 12.0
	pdf.ImageOptions(name, x+g.cardWidth-qrSize-2, y+g.cardHeight-qrSize-2, qrSize, qrSize, false, opts, 0, "")
	return nil
}

// hashString gives stable image registry names for repeated texts.
func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
