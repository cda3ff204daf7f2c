package impose

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionsJSONRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.InputFiles = []string{"a.pdf", "b.pdf"}
	opts.Arrangement = PageArrangement{Kind: Custom, CustomPages: 12}
	opts.PaperSize = CustomPaperSize(200, 300)
	opts.Marks = PrinterMarks{FoldLines: true, CutLines: true, SewingMarks: true}
	opts.AddPageNumbers = true
	opts.FrontFlyleaves = 1
	opts.Split = SplitMode{Kind: SplitSheets, N: 4}
	opts.SourceRotation = Rotate90

	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Options
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(opts, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPageArrangementJSONForms(t *testing.T) {
	data, err := json.Marshal(PageArrangement{Kind: Quarto})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"Quarto"` {
		t.Errorf("plain variant = %s, want tag string", data)
	}

	data, err = json.Marshal(PageArrangement{Kind: Custom, CustomPages: 20})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var a PageArrangement
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("Unmarshal %s: %v", data, err)
	}
	if a.Kind != Custom || a.CustomPages != 20 {
		t.Errorf("custom round trip = %+v", a)
	}

	if err := json.Unmarshal([]byte(`"Sextodecimo"`), &a); err == nil {
		t.Error("unknown arrangement tag should fail")
	}
}

func TestPaperSizeJSONForms(t *testing.T) {
	var p PaperSize
	if err := json.Unmarshal([]byte(`"A4"`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	w, h := p.DimensionsMM()
	if w != 210.0 || h != 297.0 {
		t.Errorf("A4 = %gx%g, want 210x297", w, h)
	}

	data, err := json.Marshal(CustomPaperSize(100, 150))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal %s: %v", data, err)
	}
	if w, h := p.DimensionsMM(); w != 100 || h != 150 {
		t.Errorf("custom = %gx%g, want 100x150", w, h)
	}
}

func TestPaperDimensions(t *testing.T) {
	tests := []struct {
		name PaperName
		w, h float64
	}{
		{PaperA3, 297.0, 420.0},
		{PaperA4, 210.0, 297.0},
		{PaperA5, 148.0, 210.0},
		{PaperLetter, 215.9, 279.4},
		{PaperLegal, 215.9, 355.6},
		{PaperTabloid, 279.4, 431.8},
	}
	for _, tt := range tests {
		w, h := PaperSize{Name: tt.name}.DimensionsMM()
		if w != tt.w || h != tt.h {
			t.Errorf("%s = %gx%g, want %gx%g", tt.name, w, h, tt.w, tt.h)
		}
	}
}

func TestSplitModeJSONForms(t *testing.T) {
	var s SplitMode
	if err := json.Unmarshal([]byte(`"None"`), &s); err != nil || s.Kind != SplitNone {
		t.Errorf("None: %+v, %v", s, err)
	}
	if err := json.Unmarshal([]byte(`{"signatures":3}`), &s); err != nil || s.Kind != SplitSignatures || s.N != 3 {
		t.Errorf("signatures: %+v, %v", s, err)
	}
	if err := json.Unmarshal([]byte(`{"reams":3}`), &s); err == nil {
		t.Error("unknown split key should fail")
	}

	data, err := json.Marshal(SplitMode{Kind: SplitPages, N: 10})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"pages":10}` {
		t.Errorf("pages form = %s", data)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultOptions()
	valid.InputFiles = []string{"in.pdf"}

	tests := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"defaults with input", func(o *Options) {}, true},
		{"no inputs", func(o *Options) { o.InputFiles = nil }, false},
		{"zero pages per signature", func(o *Options) {
			o.Arrangement = PageArrangement{Kind: Custom, CustomPages: 0}
		}, false},
		{"pps not multiple of four", func(o *Options) {
			o.Arrangement = PageArrangement{Kind: Custom, CustomPages: 10}
		}, false},
		{"custom pps ok", func(o *Options) {
			o.Arrangement = PageArrangement{Kind: Custom, CustomPages: 20}
		}, true},
		{"simple binding two-sided", func(o *Options) {
			o.Binding = BindingPerfect
			o.Format = FormatTwoSided
		}, false},
		{"signature binding two-sided", func(o *Options) {
			o.Format = FormatTwoSided
		}, true},
		{"bad custom paper", func(o *Options) {
			o.PaperSize = CustomPaperSize(0, 100)
		}, false},
		{"negative flyleaves", func(o *Options) { o.FrontFlyleaves = -1 }, false},
		{"split without size", func(o *Options) {
			o.Split = SplitMode{Kind: SplitPages}
		}, false},
		{"unknown binding", func(o *Options) { o.Binding = "Staples" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				var cfg ConfigError
				if !errors.As(err, &cfg) {
					t.Errorf("Validate() = %v, want ConfigError", err)
				}
			}
		})
	}
}

func TestSaveLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")

	opts := DefaultOptions()
	opts.InputFiles = []string{"book.pdf"}
	opts.Arrangement = PageArrangement{Kind: Octavo}
	opts.Marks.CropMarks = true

	if err := SaveOptions(opts, path); err != nil {
		t.Fatalf("SaveOptions: %v", err)
	}
	loaded, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if diff := cmp.Diff(opts, loaded); diff != "" {
		t.Errorf("load mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadOptionsMissingFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	partial := []byte(`{"input_files": ["x.pdf"], "page_arrangement": "Folio"}`)
	if err := os.WriteFile(path, partial, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Arrangement.Kind != Folio {
		t.Errorf("arrangement = %v, want Folio", opts.Arrangement.Kind)
	}
	if opts.Scaling != ScaleFit || opts.PageNumberStart != 1 {
		t.Errorf("defaults not preserved: %+v", opts)
	}
}
