// Command pdf-tools prepares PDFs for bookbinding.
//
// The impose subcommand arranges the pages of one or more source PDFs onto
// printing sheets as folded signatures or 2-up pairs:
//
//	pdf-tools impose -output book.pdf -arrangement quarto input.pdf
//
// The flashcards subcommand turns a CSV word list into printable flashcard
// sheets:
//
//	pdf-tools flashcards -output cards.pdf words.csv
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	impose "github.com/AberrantWolf/pdf-tools-sub000"
	"github.com/AberrantWolf/pdf-tools-sub000/flashcards"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "impose":
		err = runImpose(os.Args[2:])
	case "flashcards":
		err = runFlashcards(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pdf-tools: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf-tools:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  pdf-tools impose -output out.pdf [flags] input.pdf...
  pdf-tools flashcards -output out.pdf [flags] cards.csv

run a subcommand with -h for its flags`)
}

func runImpose(args []string) error {
	fs := flag.NewFlagSet("impose", flag.ExitOnError)

	output := fs.String("output", "imposed.pdf", "output PDF path")
	optionsPath := fs.String("options", "", "load options from a JSON file")
	saveOptionsPath := fs.String("save-options", "", "write the effective options to a JSON file and exit")

	binding := fs.String("binding", "", "binding type: signature, case, perfect, sidestitch, spiral")
	arrangement := fs.String("arrangement", "", "page arrangement: folio, quarto, octavo, or a custom pages-per-signature count")
	paper := fs.String("paper", "", "paper size: A3, A4, A5, Letter, Legal, Tabloid, or WxH in mm (e.g. 200x300)")
	orientation := fs.String("orientation", "", "sheet orientation: portrait or landscape")
	format := fs.String("format", "", "output format: duplex, twosided, sequence")
	scaling := fs.String("scaling", "", "scaling mode: fit, fill, none, stretch")
	rotate := fs.Int("rotate", 0, "rotate source pages by 0, 90, 180, or 270 degrees")

	sheetMargin := fs.Float64("sheet-margin", -1, "uniform sheet margin in mm")
	leafMargins := fs.String("leaf-margins", "", "leaf margins as top,bottom,fore-edge,spine in mm")

	marks := fs.String("marks", "", "comma-separated marks: fold, cut, crop, registration, trim, sewing, spine")
	pageNumbers := fs.Bool("page-numbers", false, "draw folded page numbers on each cell")
	numberStart := fs.Int("number-start", 1, "first page number")
	frontFlyleaves := fs.Int("front-flyleaves", 0, "blank leaves before the text block")
	backFlyleaves := fs.Int("back-flyleaves", 0, "blank leaves after the text block")
	split := fs.String("split", "", "split output: pages=N, sheets=N, or signatures=N")

	statsOnly := fs.Bool("stats-only", false, "print statistics as JSON without imposing")
	preview := fs.Int("preview", 0, "impose only the first N sheets")
	verbose := fs.Bool("verbose", false, "dump the effective options")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := impose.DefaultOptions()
	if *optionsPath != "" {
		loaded, err := impose.LoadOptions(*optionsPath)
		if err != nil {
			return err
		}
		opts = loaded
	}
	if err := applyImposeFlags(&opts, fs, *binding, *arrangement, *paper, *orientation,
		*format, *scaling, *rotate, *sheetMargin, *leafMargins, *marks); err != nil {
		return err
	}
	if err := parseSplit(&opts, *split); err != nil {
		return err
	}
	opts.AddPageNumbers = opts.AddPageNumbers || *pageNumbers
	if flagSet(fs, "number-start") {
		opts.PageNumberStart = *numberStart
	}
	if flagSet(fs, "front-flyleaves") {
		opts.FrontFlyleaves = *frontFlyleaves
	}
	if flagSet(fs, "back-flyleaves") {
		opts.BackFlyleaves = *backFlyleaves
	}
	if fs.NArg() > 0 {
		opts.InputFiles = fs.Args()
	}

	if *verbose {
		spew.Fdump(os.Stderr, opts)
	}
	if *saveOptionsPath != "" {
		return impose.SaveOptions(opts, *saveOptionsPath)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	docs, err := impose.LoadDocuments(opts.InputFiles)
	if err != nil {
		return err
	}

	if *statsOnly {
		stats, err := impose.CalculateStatistics(docs, opts)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if *preview > 0 {
		out, err := impose.GeneratePreview(docs, opts, *preview)
		if err != nil {
			return err
		}
		return out.Save(*output)
	}

	if opts.Format == impose.FormatTwoSided {
		front, back, err := impose.ImposeTwoSided(docs, opts)
		if err != nil {
			return err
		}
		if err := front.Save(derivedName(*output, "front")); err != nil {
			return err
		}
		return back.Save(derivedName(*output, "back"))
	}

	out, err := impose.Impose(docs, opts)
	if err != nil {
		return err
	}
	parts, err := impose.SplitOutputs(out, opts)
	if err != nil {
		return err
	}
	if len(parts) == 1 {
		return parts[0].Save(*output)
	}
	for i, part := range parts {
		if err := part.Save(derivedName(*output, strconv.Itoa(i+1))); err != nil {
			return err
		}
	}
	return nil
}

// applyImposeFlags folds the individual command line flags into opts on top
// of the defaults or a loaded options file.
func applyImposeFlags(opts *impose.Options, fs *flag.FlagSet, binding, arrangement, paper,
	orientation, format, scaling string, rotate int, sheetMargin float64, leafMargins, marks string) error {

	switch strings.ToLower(binding) {
	case "":
	case "signature":
		opts.Binding = impose.BindingSignature
	case "case":
		opts.Binding = impose.BindingCase
	case "perfect":
		opts.Binding = impose.BindingPerfect
	case "sidestitch":
		opts.Binding = impose.BindingSideStitch
	case "spiral":
		opts.Binding = impose.BindingSpiral
	default:
		return fmt.Errorf("unknown binding %q", binding)
	}

	switch strings.ToLower(arrangement) {
	case "":
	case "folio":
		opts.Arrangement = impose.PageArrangement{Kind: impose.Folio}
	case "quarto":
		opts.Arrangement = impose.PageArrangement{Kind: impose.Quarto}
	case "octavo":
		opts.Arrangement = impose.PageArrangement{Kind: impose.Octavo}
	default:
		n, err := strconv.Atoi(arrangement)
		if err != nil {
			return fmt.Errorf("unknown arrangement %q", arrangement)
		}
		opts.Arrangement = impose.PageArrangement{Kind: impose.Custom, CustomPages: n}
	}

	if paper != "" {
		if w, h, ok := parseDimensions(paper); ok {
			opts.PaperSize = impose.CustomPaperSize(w, h)
		} else {
			opts.PaperSize = impose.PaperSize{Name: impose.PaperName(paper)}
		}
	}

	switch strings.ToLower(orientation) {
	case "":
	case "portrait":
		opts.Orientation = impose.OrientationPortrait
	case "landscape":
		opts.Orientation = impose.OrientationLandscape
	default:
		return fmt.Errorf("unknown orientation %q", orientation)
	}

	switch strings.ToLower(format) {
	case "":
	case "duplex", "doublesided":
		opts.Format = impose.FormatDoubleSided
	case "twosided":
		opts.Format = impose.FormatTwoSided
	case "sequence":
		opts.Format = impose.FormatSingleSidedSequence
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	switch strings.ToLower(scaling) {
	case "":
	case "fit":
		opts.Scaling = impose.ScaleFit
	case "fill":
		opts.Scaling = impose.ScaleFill
	case "none":
		opts.Scaling = impose.ScaleNone
	case "stretch":
		opts.Scaling = impose.ScaleStretch
	default:
		return fmt.Errorf("unknown scaling mode %q", scaling)
	}

	if flagSet(fs, "rotate") {
		switch rotate {
		case 0:
			opts.SourceRotation = impose.RotateNone
		case 90:
			opts.SourceRotation = impose.Rotate90
		case 180:
			opts.SourceRotation = impose.Rotate180
		case 270:
			opts.SourceRotation = impose.Rotate270
		default:
			return fmt.Errorf("rotation must be 0, 90, 180, or 270, got %d", rotate)
		}
	}

	if sheetMargin >= 0 {
		opts.SheetMargins = impose.UniformSheetMargins(sheetMargin)
	}
	if leafMargins != "" {
		parts := strings.Split(leafMargins, ",")
		if len(parts) != 4 {
			return fmt.Errorf("leaf margins need top,bottom,fore-edge,spine, got %q", leafMargins)
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("bad leaf margin %q", p)
			}
			vals[i] = v
		}
		opts.LeafMargins = impose.LeafMargins{Top: vals[0], Bottom: vals[1], ForeEdge: vals[2], Spine: vals[3]}
	}

	for _, mark := range strings.Split(marks, ",") {
		switch strings.ToLower(strings.TrimSpace(mark)) {
		case "":
		case "fold":
			opts.Marks.FoldLines = true
		case "cut":
			opts.Marks.CutLines = true
		case "crop":
			opts.Marks.CropMarks = true
		case "registration":
			opts.Marks.RegistrationMarks = true
		case "trim":
			opts.Marks.TrimMarks = true
		case "sewing":
			opts.Marks.SewingMarks = true
		case "spine":
			opts.Marks.SpineMarks = true
		default:
			return fmt.Errorf("unknown mark %q", mark)
		}
	}

	return nil
}

func parseSplit(opts *impose.Options, split string) error {
	if split == "" {
		return nil
	}
	if strings.EqualFold(split, "none") {
		opts.Split = impose.SplitMode{Kind: impose.SplitNone}
		return nil
	}
	kind, nStr, ok := strings.Cut(split, "=")
	if !ok {
		return fmt.Errorf("split needs pages=N, sheets=N, or signatures=N, got %q", split)
	}
	n, err := strconv.Atoi(nStr)
	if err != nil || n <= 0 {
		return fmt.Errorf("bad split size %q", nStr)
	}
	switch strings.ToLower(kind) {
	case "pages":
		opts.Split = impose.SplitMode{Kind: impose.SplitPages, N: n}
	case "sheets":
		opts.Split = impose.SplitMode{Kind: impose.SplitSheets, N: n}
	case "signatures":
		opts.Split = impose.SplitMode{Kind: impose.SplitSignatures, N: n}
	default:
		return fmt.Errorf("unknown split kind %q", kind)
	}
	return nil
}

func runFlashcards(args []string) error {
	fs := flag.NewFlagSet("flashcards", flag.ExitOnError)

	output := fs.String("output", "flashcards.pdf", "output PDF path")
	paper := fs.String("paper", "Letter", "gofpdf paper name")
	cardSize := fs.String("card-size", "", "card size as WxH in mm (default 63.5x88.9)")
	grid := fs.String("grid", "", "cards per page as COLSxROWS (default 2x3)")
	fontSize := fs.Float64("font-size", 12, "card text size in points")
	qrCodes := fs.Bool("qr", false, "add a QR code of the front text to each back")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("flashcards needs exactly one CSV input, got %d", fs.NArg())
	}

	genOpts := []flashcards.Option{
		flashcards.WithPaper(*paper),
		flashcards.WithFontSize(*fontSize),
		flashcards.WithQRCodes(*qrCodes),
	}
	if *cardSize != "" {
		w, h, ok := parseDimensions(*cardSize)
		if !ok {
			return fmt.Errorf("bad card size %q", *cardSize)
		}
		genOpts = append(genOpts, flashcards.WithCardSize(w, h))
	}
	if *grid != "" {
		c, r, ok := parseDimensions(*grid)
		if !ok || c != float64(int(c)) || r != float64(int(r)) {
			return fmt.Errorf("bad grid %q", *grid)
		}
		genOpts = append(genOpts, flashcards.WithGrid(int(c), int(r)))
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	cards, err := flashcards.ReadCards(in)
	if err != nil {
		return err
	}

	out, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := flashcards.NewGenerator(genOpts...).Generate(cards, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// parseDimensions parses "WxH" with float components.
func parseDimensions(s string) (w, h float64, ok bool) {
	a, b, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(a), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// derivedName inserts a suffix before the output path's extension, so
// "book.pdf" with suffix "front" becomes "book-front.pdf".
func derivedName(path, suffix string) string {
	ext := ".pdf"
	base := path
	if i := strings.LastIndex(path, "."); i > 0 {
		base, ext = path[:i], path[i:]
	}
	return base + "-" + suffix + ext
}
