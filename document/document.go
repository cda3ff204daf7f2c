// Package document provides a mutable PDF object graph that can be built,
// edited, and serialized back to disk.
//
// A Document owns an indirect-object table keyed by object number. Pages are
// tracked as an ordered list of references to page dictionaries; the pages
// tree, catalog, and trailer are materialized when the document is written.
package document

import (
	"fmt"
	"os"
	"sort"

	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Document is a mutable PDF document under construction.
type Document struct {
	Version string // PDF version for the file header (defaults to "1.7")

	objects map[int]reader.Object
	nextNum int
	pages   []reader.Reference
	info    reader.Dict
}

// New creates an empty document with no pages.
func New() *Document {
	return &Document{
		Version: "1.7",
		objects: make(map[int]reader.Object),
		nextNum: 1,
	}
}

// Load opens a PDF file and builds a mutable document from it.
func Load(filename string) (*Document, error) {
	src, err := reader.Open(filename)
	if err != nil {
		return nil, err
	}
	return FromReader(src)
}

// FromReader builds a mutable document from a parsed PDF.
//
// Each source page becomes a fresh page dictionary with its effective
// (inherited) attributes flattened in. Resources and content streams are
// deep-copied with a single cache shared across pages, so objects shared
// between source pages stay shared in the copy.
func FromReader(src *reader.Document) (*Document, error) {
	d := New()
	if src.Version != "" {
		d.Version = src.Version
	}

	cache := make(map[reader.Reference]reader.Reference)
	for _, page := range src.Pages() {
		ref, err := d.copyPage(src, page, cache)
		if err != nil {
			return nil, err
		}
		d.pages = append(d.pages, ref)
	}

	if meta := src.Metadata(); len(meta) > 0 {
		info := make(reader.Dict)
		for k, v := range meta {
			info[reader.Name(k)] = reader.String{Value: []byte(v)}
		}
		d.info = info
	}

	return d, nil
}

// copyPage rebuilds one source page inside d.
func (d *Document) copyPage(src *reader.Document, page *reader.Page, cache map[reader.Reference]reader.Reference) (reader.Reference, error) {
	dict := reader.Dict{
		"Type":     reader.Name("Page"),
		"MediaBox": rectArray(page.MediaBox),
	}
	if page.CropBox != nil {
		dict["CropBox"] = rectArray(*page.CropBox)
	}
	if page.Rotate != 0 {
		dict["Rotate"] = reader.Integer(page.Rotate)
	}

	if page.Resources != nil {
		res, err := d.DeepCopy(page.Resources, src, cache)
		if err != nil {
			return reader.Reference{}, fmt.Errorf("document: copying page %d resources: %w", page.Number, err)
		}
		dict["Resources"] = res
	} else {
		dict["Resources"] = reader.Dict{}
	}

	switch len(page.Contents) {
	case 0:
		// no content stream
	case 1:
		ref, err := d.copyStream(src, page.Contents[0], cache)
		if err != nil {
			return reader.Reference{}, fmt.Errorf("document: copying page %d content: %w", page.Number, err)
		}
		dict["Contents"] = ref
	default:
		arr := make(reader.Array, 0, len(page.Contents))
		for _, s := range page.Contents {
			ref, err := d.copyStream(src, s, cache)
			if err != nil {
				return reader.Reference{}, fmt.Errorf("document: copying page %d content: %w", page.Number, err)
			}
			arr = append(arr, ref)
		}
		dict["Contents"] = arr
	}

	return d.AddObject(dict), nil
}

// copyStream deep-copies a content stream into d and returns its reference.
func (d *Document) copyStream(src *reader.Document, s reader.Stream, cache map[reader.Reference]reader.Reference) (reader.Reference, error) {
	obj, err := d.DeepCopy(s, src, cache)
	if err != nil {
		return reader.Reference{}, err
	}
	if ref, ok := obj.(reader.Reference); ok {
		return ref, nil
	}
	return d.AddObject(obj), nil
}

// AddObject adds an object to the document and returns its reference.
func (d *Document) AddObject(obj reader.Object) reader.Reference {
	ref := reader.Reference{Number: d.nextNum}
	d.objects[d.nextNum] = obj
	d.nextNum++
	return ref
}

// SetObject replaces the object stored at ref.
func (d *Document) SetObject(ref reader.Reference, obj reader.Object) {
	d.objects[ref.Number] = obj
	if ref.Number >= d.nextNum {
		d.nextNum = ref.Number + 1
	}
}

// Object returns the object stored at ref.
func (d *Document) Object(ref reader.Reference) (reader.Object, bool) {
	obj, ok := d.objects[ref.Number]
	return obj, ok
}

// ResolveReference returns the object stored at ref, or Null if absent.
// It satisfies the Resolver interface used by DeepCopy.
func (d *Document) ResolveReference(ref reader.Reference) (reader.Object, error) {
	obj, ok := d.objects[ref.Number]
	if !ok {
		return reader.Null{}, nil
	}
	return obj, nil
}

// Resolve dereferences obj if it is a Reference, otherwise returns it as-is.
func (d *Document) Resolve(obj reader.Object) reader.Object {
	if ref, ok := obj.(reader.Reference); ok {
		resolved, _ := d.ResolveReference(ref)
		return resolved
	}
	return obj
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// PageRefs returns the ordered page references. The returned slice is a copy.
func (d *Document) PageRefs() []reader.Reference {
	refs := make([]reader.Reference, len(d.pages))
	copy(refs, d.pages)
	return refs
}

// SetPageRefs replaces the page list.
func (d *Document) SetPageRefs(refs []reader.Reference) {
	d.pages = make([]reader.Reference, len(refs))
	copy(d.pages, refs)
}

// AppendPage adds a page reference at the end of the page list.
func (d *Document) AppendPage(ref reader.Reference) {
	d.pages = append(d.pages, ref)
}

// AppendPagesFrom deep-copies the page range [from, to) of src onto the end
// of d's page list. Pass the same cache for repeated calls with the same
// source so objects shared between pages stay shared in the copy.
func (d *Document) AppendPagesFrom(src *Document, from, to int, cache map[reader.Reference]reader.Reference) error {
	if from < 0 || to > src.NumPages() || from > to {
		return fmt.Errorf("document: page range [%d, %d) outside [0, %d)", from, to, src.NumPages())
	}
	for i := from; i < to; i++ {
		dict, err := src.PageDict(i)
		if err != nil {
			return err
		}
		copied, err := d.DeepCopy(dict, src, cache)
		if err != nil {
			return fmt.Errorf("document: copying page %d: %w", i, err)
		}
		d.AppendPage(d.AddObject(copied))
	}
	return nil
}

// CopyPageRange builds a new document holding deep copies of the page range
// [from, to) and the document metadata.
func (d *Document) CopyPageRange(from, to int) (*Document, error) {
	out := New()
	out.Version = d.Version
	cache := make(map[reader.Reference]reader.Reference)
	if err := out.AppendPagesFrom(d, from, to, cache); err != nil {
		return nil, err
	}
	if d.info != nil {
		info := make(reader.Dict, len(d.info))
		for k, v := range d.info {
			info[k] = v
		}
		out.info = info
	}
	return out, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() (*Document, error) {
	return d.CopyPageRange(0, d.NumPages())
}

// PageDict returns the page dictionary for the 0-based page index.
func (d *Document) PageDict(index int) (reader.Dict, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("document: page %d out of range [0, %d)", index, len(d.pages))
	}
	obj, ok := d.objects[d.pages[index].Number]
	if !ok {
		return nil, fmt.Errorf("document: page %d object missing", index)
	}
	dict, ok := obj.(reader.Dict)
	if !ok {
		return nil, fmt.Errorf("document: page %d is not a dictionary", index)
	}
	return dict, nil
}

// SetInfo stores document metadata written to the trailer /Info dictionary.
func (d *Document) SetInfo(key, value string) {
	if d.info == nil {
		d.info = make(reader.Dict)
	}
	d.info[reader.Name(key)] = reader.String{Value: []byte(value)}
}

// Save writes the document to a PDF file.
func (d *Document) Save(filename string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("document: writing %s: %w", filename, err)
	}
	return nil
}

// objectNumbers returns all allocated object numbers in ascending order.
func (d *Document) objectNumbers() []int {
	nums := make([]int, 0, len(d.objects))
	for n := range d.objects {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// rectArray converts a rectangle to a PDF array [llx lly urx ury].
func rectArray(r reader.Rectangle) reader.Array {
	return reader.Array{
		reader.Real(r.LLX), reader.Real(r.LLY),
		reader.Real(r.URX), reader.Real(r.URY),
	}
}
