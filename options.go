package impose

import (
	"encoding/json"
	"fmt"
	"os"
)

// BindingType selects how the finished book is held together, which in turn
// decides whether pages are ordered into folded signatures or simple 2-up
// pairs.
type BindingType string

// Supported binding types.
const (
	BindingSignature  BindingType = "Signature"
	BindingCase       BindingType = "CaseBinding"
	BindingPerfect    BindingType = "PerfectBinding"
	BindingSideStitch BindingType = "SideStitch"
	BindingSpiral     BindingType = "Spiral"
)

// UsesSignatures returns true when the binding orders pages into folded
// signatures rather than sequential 2-up pairs.
func (b BindingType) UsesSignatures() bool {
	return b == BindingSignature || b == BindingCase
}

// valid reports whether b is a known binding type.
func (b BindingType) valid() bool {
	switch b {
	case BindingSignature, BindingCase, BindingPerfect, BindingSideStitch, BindingSpiral:
		return true
	}
	return false
}

// OutputFormat selects how sheet sides are arranged in the output.
type OutputFormat string

// Supported output formats.
const (
	// FormatDoubleSided interleaves fronts and backs for duplex printing.
	FormatDoubleSided OutputFormat = "DoubleSided"
	// FormatTwoSided produces two separate documents, fronts and backs.
	FormatTwoSided OutputFormat = "TwoSided"
	// FormatSingleSidedSequence emits all fronts followed by all backs.
	FormatSingleSidedSequence OutputFormat = "SingleSidedSequence"
)

func (f OutputFormat) valid() bool {
	switch f {
	case FormatDoubleSided, FormatTwoSided, FormatSingleSidedSequence:
		return true
	}
	return false
}

// ScalingMode controls how a source page is scaled into its content area.
type ScalingMode string

// Supported scaling modes.
const (
	ScaleFit     ScalingMode = "Fit"     // uniform, min of width/height ratios
	ScaleFill    ScalingMode = "Fill"    // uniform, max of width/height ratios
	ScaleNone    ScalingMode = "None"    // identity
	ScaleStretch ScalingMode = "Stretch" // independent x and y factors
)

func (s ScalingMode) valid() bool {
	switch s {
	case ScaleFit, ScaleFill, ScaleNone, ScaleStretch:
		return true
	}
	return false
}

// Orientation selects the output sheet orientation.
type Orientation string

// Supported orientations.
const (
	OrientationPortrait  Orientation = "Portrait"
	OrientationLandscape Orientation = "Landscape"
)

func (o Orientation) valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Rotation is a quarter-turn rotation applied to every source page before
// placement.
type Rotation string

// Supported source rotations.
const (
	RotateNone Rotation = "None"
	Rotate90   Rotation = "Rotate90"
	Rotate180  Rotation = "Rotate180"
	Rotate270  Rotation = "Rotate270"
)

// Degrees returns the rotation angle in degrees.
func (r Rotation) Degrees() int {
	switch r {
	case Rotate90:
		return 90
	case Rotate180:
		return 180
	case Rotate270:
		return 270
	default:
		return 0
	}
}

func (r Rotation) valid() bool {
	switch r {
	case RotateNone, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// ArrangementKind names a page arrangement variant.
type ArrangementKind string

// Arrangement variants.
const (
	Folio  ArrangementKind = "Folio"
	Quarto ArrangementKind = "Quarto"
	Octavo ArrangementKind = "Octavo"
	Custom ArrangementKind = "Custom"
)

// PageArrangement selects how many pages share one signature and how they
// are folded. Custom carries an explicit pages-per-signature count, which
// must be a positive multiple of four.
type PageArrangement struct {
	Kind ArrangementKind
	// CustomPages is the pages-per-signature count for Custom arrangements.
	CustomPages int
}

// PagesPerSignature returns the number of pages one signature holds.
func (a PageArrangement) PagesPerSignature() int {
	switch a.Kind {
	case Folio:
		return 4
	case Quarto:
		return 8
	case Octavo:
		return 16
	case Custom:
		return a.CustomPages
	default:
		return 0
	}
}

// GridDimensions returns the (columns, rows) of cells on one sheet side.
func (a PageArrangement) GridDimensions() (cols, rows int) {
	switch a.Kind {
	case Folio:
		return 2, 1
	case Quarto:
		return 2, 2
	case Octavo:
		return 4, 2
	case Custom:
		if a.CustomPages < 4 {
			return 2, 1
		}
		return 2, a.CustomPages / 4
	default:
		return 0, 0
	}
}

// MarshalJSON serializes plain variants as tag strings and Custom as a
// single-field object.
func (a PageArrangement) MarshalJSON() ([]byte, error) {
	if a.Kind == Custom {
		return json.Marshal(map[string]any{
			"Custom": map[string]int{"pages_per_signature": a.CustomPages},
		})
	}
	return json.Marshal(string(a.Kind))
}

// UnmarshalJSON accepts either a tag string or the Custom object form.
func (a *PageArrangement) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		switch ArrangementKind(tag) {
		case Folio, Quarto, Octavo:
			a.Kind = ArrangementKind(tag)
			a.CustomPages = 0
			return nil
		}
		return fmt.Errorf("impose: unknown page arrangement %q", tag)
	}

	var obj struct {
		Custom *struct {
			PagesPerSignature int `json:"pages_per_signature"`
		} `json:"Custom"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Custom == nil {
		return fmt.Errorf("impose: invalid page arrangement %s", data)
	}
	a.Kind = Custom
	a.CustomPages = obj.Custom.PagesPerSignature
	return nil
}

// PaperName names a standard output paper size.
type PaperName string

// Standard paper sizes.
const (
	PaperA3      PaperName = "A3"
	PaperA4      PaperName = "A4"
	PaperA5      PaperName = "A5"
	PaperLetter  PaperName = "Letter"
	PaperLegal   PaperName = "Legal"
	PaperTabloid PaperName = "Tabloid"
	paperCustom  PaperName = "Custom"
)

// paperDimensions holds portrait dimensions in millimeters per named size.
var paperDimensions = map[PaperName][2]float64{
	PaperA3:      {297.0, 420.0},
	PaperA4:      {210.0, 297.0},
	PaperA5:      {148.0, 210.0},
	PaperLetter:  {215.9, 279.4},
	PaperLegal:   {215.9, 355.6},
	PaperTabloid: {279.4, 431.8},
}

// PaperSize selects the output sheet size, either by name or with explicit
// custom dimensions in millimeters.
type PaperSize struct {
	Name PaperName
	// Width and Height hold custom dimensions in millimeters when Name is
	// "Custom".
	Width, Height float64
}

// CustomPaperSize creates a custom paper size from millimeter dimensions.
func CustomPaperSize(widthMM, heightMM float64) PaperSize {
	return PaperSize{Name: paperCustom, Width: widthMM, Height: heightMM}
}

// DimensionsMM returns the portrait (width, height) in millimeters.
func (p PaperSize) DimensionsMM() (width, height float64) {
	if dims, ok := paperDimensions[p.Name]; ok {
		return dims[0], dims[1]
	}
	return p.Width, p.Height
}

func (p PaperSize) valid() bool {
	if _, ok := paperDimensions[p.Name]; ok {
		return true
	}
	return p.Name == paperCustom && p.Width > 0 && p.Height > 0
}

// MarshalJSON serializes named sizes as tag strings and custom sizes as a
// single-field object.
func (p PaperSize) MarshalJSON() ([]byte, error) {
	if _, ok := paperDimensions[p.Name]; ok {
		return json.Marshal(string(p.Name))
	}
	return json.Marshal(map[string]any{
		"Custom": map[string]float64{"width_mm": p.Width, "height_mm": p.Height},
	})
}

// UnmarshalJSON accepts either a tag string or the Custom object form.
func (p *PaperSize) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if _, ok := paperDimensions[PaperName(tag)]; ok {
			*p = PaperSize{Name: PaperName(tag)}
			return nil
		}
		return fmt.Errorf("impose: unknown paper size %q", tag)
	}

	var obj struct {
		Custom *struct {
			WidthMM  float64 `json:"width_mm"`
			HeightMM float64 `json:"height_mm"`
		} `json:"Custom"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Custom == nil {
		return fmt.Errorf("impose: invalid paper size %s", data)
	}
	*p = CustomPaperSize(obj.Custom.WidthMM, obj.Custom.HeightMM)
	return nil
}

// SheetMargins is the printer-safe border of the output sheet, in
// millimeters.
type SheetMargins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// UniformSheetMargins creates sheet margins with the same value on all sides.
func UniformSheetMargins(mm float64) SheetMargins {
	return SheetMargins{Top: mm, Bottom: mm, Left: mm, Right: mm}
}

// LeafMargins are the per-cell margins of each page on the sheet, in
// millimeters. Spine and fore-edge are resolved to left or right depending
// on where the cell sits relative to the fold.
type LeafMargins struct {
	Top      float64 `json:"top"`
	Bottom   float64 `json:"bottom"`
	ForeEdge float64 `json:"fore_edge"`
	Spine    float64 `json:"spine"`
}

// PrinterMarks enables the individual mark families drawn on each sheet.
type PrinterMarks struct {
	FoldLines         bool `json:"fold_lines"`
	CutLines          bool `json:"cut_lines"`
	CropMarks         bool `json:"crop_marks"`
	RegistrationMarks bool `json:"registration_marks"`
	TrimMarks         bool `json:"trim_marks"`
	SewingMarks       bool `json:"sewing_marks"`
	SpineMarks        bool `json:"spine_marks"`
}

// Any returns true when at least one mark family is enabled.
func (m PrinterMarks) Any() bool {
	return m.FoldLines || m.CutLines || m.CropMarks ||
		m.RegistrationMarks || m.TrimMarks || m.SewingMarks || m.SpineMarks
}

// SplitKind names a split-mode variant.
type SplitKind string

// Split-mode variants.
const (
	SplitNone       SplitKind = "None"
	SplitPages      SplitKind = "Pages"
	SplitSheets     SplitKind = "Sheets"
	SplitSignatures SplitKind = "Signatures"
)

// SplitMode partitions the imposed output into multiple documents.
type SplitMode struct {
	Kind SplitKind
	// N is the chunk size for Pages, Sheets, and Signatures modes.
	N int
}

// MarshalJSON serializes None as a tag string and the sized variants as
// single-field objects with lowercase keys.
func (s SplitMode) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SplitPages:
		return json.Marshal(map[string]int{"pages": s.N})
	case SplitSheets:
		return json.Marshal(map[string]int{"sheets": s.N})
	case SplitSignatures:
		return json.Marshal(map[string]int{"signatures": s.N})
	default:
		return json.Marshal("None")
	}
}

// UnmarshalJSON accepts "None" or one of the sized object forms.
func (s *SplitMode) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == "None" {
			*s = SplitMode{Kind: SplitNone}
			return nil
		}
		return fmt.Errorf("impose: unknown split mode %q", tag)
	}

	var obj map[string]int
	if err := json.Unmarshal(data, &obj); err != nil || len(obj) != 1 {
		return fmt.Errorf("impose: invalid split mode %s", data)
	}
	for key, n := range obj {
		switch key {
		case "pages":
			*s = SplitMode{Kind: SplitPages, N: n}
		case "sheets":
			*s = SplitMode{Kind: SplitSheets, N: n}
		case "signatures":
			*s = SplitMode{Kind: SplitSignatures, N: n}
		default:
			return fmt.Errorf("impose: unknown split mode key %q", key)
		}
	}
	return nil
}

// Options is the full configuration record for one imposition run.
type Options struct {
	InputFiles      []string        `json:"input_files"`
	Binding         BindingType     `json:"binding_type"`
	Arrangement     PageArrangement `json:"page_arrangement"`
	PaperSize       PaperSize       `json:"output_paper_size"`
	Orientation     Orientation     `json:"output_orientation"`
	Format          OutputFormat    `json:"output_format"`
	Scaling         ScalingMode     `json:"scaling_mode"`
	SheetMargins    SheetMargins    `json:"sheet_margins"`
	LeafMargins     LeafMargins     `json:"leaf_margins"`
	Marks           PrinterMarks    `json:"printer_marks"`
	AddPageNumbers  bool            `json:"add_page_numbers"`
	PageNumberStart int             `json:"page_number_start"`
	// Flyleaf counts are in leaves; each leaf is two pages.
	FrontFlyleaves int       `json:"front_flyleaves"`
	BackFlyleaves  int       `json:"back_flyleaves"`
	Split          SplitMode `json:"split_mode"`
	SourceRotation Rotation  `json:"source_rotation"`
}

// DefaultOptions returns the options for a quarto signature book on
// landscape Letter sheets.
func DefaultOptions() Options {
	return Options{
		Binding:         BindingSignature,
		Arrangement:     PageArrangement{Kind: Quarto},
		PaperSize:       PaperSize{Name: PaperLetter},
		Orientation:     OrientationLandscape,
		Format:          FormatDoubleSided,
		Scaling:         ScaleFit,
		SheetMargins:    UniformSheetMargins(5.0),
		LeafMargins:     LeafMargins{Top: 5.0, Bottom: 5.0, ForeEdge: 5.0, Spine: 10.0},
		PageNumberStart: 1,
		Split:           SplitMode{Kind: SplitNone},
		SourceRotation:  RotateNone,
	}
}

// Validate checks the option record before imposition starts.
func (o Options) Validate() error {
	if len(o.InputFiles) == 0 {
		return ConfigError("no input files specified")
	}
	return o.validateLayout()
}

// validateLayout checks every option except the input file list, which the
// in-memory entry points supply as documents instead.
func (o Options) validateLayout() error {
	if !o.Binding.valid() {
		return configErrorf("unknown binding type %q", o.Binding)
	}
	if !o.Format.valid() {
		return configErrorf("unknown output format %q", o.Format)
	}
	if !o.Scaling.valid() {
		return configErrorf("unknown scaling mode %q", o.Scaling)
	}
	if !o.Orientation.valid() {
		return configErrorf("unknown orientation %q", o.Orientation)
	}
	if !o.SourceRotation.valid() {
		return configErrorf("unknown source rotation %q", o.SourceRotation)
	}
	if !o.PaperSize.valid() {
		return ConfigError("custom paper size must have positive dimensions")
	}

	pps := o.Arrangement.PagesPerSignature()
	if pps == 0 {
		return ConfigError("pages per signature must be greater than zero")
	}
	if pps%4 != 0 {
		return configErrorf("pages per signature must be a multiple of 4, got %d", pps)
	}

	if !o.Binding.UsesSignatures() && o.Format == FormatTwoSided {
		return configErrorf("%s binding has no back sides to separate into a second document", o.Binding)
	}

	if o.Split.Kind != SplitNone && o.Split.N <= 0 {
		return configErrorf("split chunk size must be positive, got %d", o.Split.N)
	}
	if o.FrontFlyleaves < 0 || o.BackFlyleaves < 0 {
		return ConfigError("flyleaf counts cannot be negative")
	}

	return nil
}

// SaveOptions writes opts to a JSON file.
func SaveOptions(opts Options, filename string) error {
	data, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return newOpError("SaveOptions", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return newOpError("SaveOptions", err)
	}
	return nil
}

// LoadOptions reads options from a JSON file.
func LoadOptions(filename string) (Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Options{}, newOpError("LoadOptions", err)
	}
	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, newOpError("LoadOptions", err)
	}
	return opts, nil
}
