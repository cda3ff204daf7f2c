package document

import (
	"bytes"
	"fmt"

	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Default page dimensions (US Letter in points) used when a page has no
// usable MediaBox.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// PageContent returns the content stream bytes for the 0-based page index.
//
// A single stream yields its decoded bytes, falling back to the raw bytes
// when decoding fails. An array of streams is concatenated with a newline
// between parts. A missing Contents entry yields an empty slice. Decoding
// problems never surface as errors.
func (d *Document) PageContent(index int) ([]byte, error) {
	dict, err := d.PageDict(index)
	if err != nil {
		return nil, err
	}

	contents, ok := dict["Contents"]
	if !ok {
		return nil, nil
	}

	switch c := d.Resolve(contents).(type) {
	case reader.Stream:
		return streamBytes(c), nil
	case reader.Array:
		var parts [][]byte
		for _, item := range c {
			if s, ok := d.Resolve(item).(reader.Stream); ok {
				parts = append(parts, streamBytes(s))
			}
		}
		return bytes.Join(parts, []byte{'\n'}), nil
	default:
		return nil, nil
	}
}

// streamBytes returns the decoded stream data, or the raw data when the
// filter chain cannot be applied.
func streamBytes(s reader.Stream) []byte {
	decoded, err := reader.DecodeStream(s)
	if err != nil {
		return s.Data
	}
	return decoded
}

// PageMediaBox returns the MediaBox array for the 0-based page index, or
// false when the page has no well-formed MediaBox.
func (d *Document) PageMediaBox(index int) (reader.Array, bool) {
	dict, err := d.PageDict(index)
	if err != nil {
		return nil, false
	}
	arr, ok := d.Resolve(dict["MediaBox"]).(reader.Array)
	if !ok || len(arr) != 4 {
		return nil, false
	}
	return arr, true
}

// PageDimensions returns the page width and height in points, read from
// MediaBox[2] and MediaBox[3]. A missing or malformed MediaBox yields US
// Letter dimensions rather than an error.
func (d *Document) PageDimensions(index int) (width, height float64) {
	arr, ok := d.PageMediaBox(index)
	if !ok {
		return DefaultPageWidth, DefaultPageHeight
	}
	w, okW := numberValue(arr[2])
	h, okH := numberValue(arr[3])
	if !okW || !okH {
		return DefaultPageWidth, DefaultPageHeight
	}
	return w, h
}

// PageResources returns the resolved Resources dictionary for the page, or
// nil when absent.
func (d *Document) PageResources(index int) reader.Dict {
	dict, err := d.PageDict(index)
	if err != nil {
		return nil
	}
	res, _ := d.Resolve(dict["Resources"]).(reader.Dict)
	return res
}

// NewBlankPage creates an empty page whose MediaBox matches mediaBox (or US
// Letter when nil) and returns its reference.
func (d *Document) NewBlankPage(mediaBox reader.Array) reader.Reference {
	if len(mediaBox) != 4 {
		mediaBox = reader.Array{
			reader.Integer(0), reader.Integer(0),
			reader.Real(DefaultPageWidth), reader.Real(DefaultPageHeight),
		}
	}
	contents := d.AddObject(reader.Stream{Dict: reader.Dict{}, Data: nil})
	page := reader.Dict{
		"Type":      reader.Name("Page"),
		"MediaBox":  append(reader.Array{}, mediaBox...),
		"Resources": reader.Dict{},
		"Contents":  contents,
	}
	return d.AddObject(page)
}

// NewFormXObject wraps a source page as a Form XObject inside d and returns
// its reference. The XObject's BBox is the source page's MediaBox, its
// resources are a deep copy of the page's resources, and its stream data is
// the page's content. The cache is shared across calls so resources common
// to several source pages are copied once.
func (d *Document) NewFormXObject(src *Document, pageIndex int, cache map[reader.Reference]reader.Reference) (reader.Reference, error) {
	content, err := src.PageContent(pageIndex)
	if err != nil {
		return reader.Reference{}, fmt.Errorf("document: form xobject for page %d: %w", pageIndex, err)
	}

	bbox, ok := src.PageMediaBox(pageIndex)
	if !ok {
		bbox = reader.Array{
			reader.Integer(0), reader.Integer(0),
			reader.Real(DefaultPageWidth), reader.Real(DefaultPageHeight),
		}
	}

	dict := reader.Dict{
		"Type":     reader.Name("XObject"),
		"Subtype":  reader.Name("Form"),
		"FormType": reader.Integer(1),
		"BBox":     append(reader.Array{}, bbox...),
	}

	if res := src.PageResources(pageIndex); res != nil {
		copied, err := d.DeepCopy(res, src, cache)
		if err != nil {
			return reader.Reference{}, fmt.Errorf("document: copying resources for page %d: %w", pageIndex, err)
		}
		dict["Resources"] = copied
	} else {
		dict["Resources"] = reader.Dict{}
	}

	return d.AddObject(reader.Stream{Dict: dict, Data: content}), nil
}

// numberValue extracts a float from an Integer or Real object.
func numberValue(obj reader.Object) (float64, bool) {
	switch n := obj.(type) {
	case reader.Integer:
		return float64(n), true
	case reader.Real:
		return float64(n), true
	default:
		return 0, false
	}
}
