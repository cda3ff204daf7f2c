package reader

import (
	"fmt"
)

// Rectangle represents a PDF rectangle (typically [llx lly urx ury]).
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the width of the rectangle.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the height of the rectangle.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Page is one leaf of the page tree with its inheritable attributes
// (MediaBox, CropBox, Resources, Rotate) already flattened in.
type Page struct {
	Number    int
	MediaBox  Rectangle
	CropBox   *Rectangle
	Resources Dict
	Contents  []Stream
	Rotate    int
}

// ContentStream returns the decompressed content stream data for this page.
// If the page has multiple content streams, they are concatenated.
func (p *Page) ContentStream() ([]byte, error) {
	var result []byte
	for _, s := range p.Contents {
		decoded, err := decodeStream(s)
		if err != nil {
			return nil, fmt.Errorf("reader: decoding page %d content: %w", p.Number, err)
		}
		result = append(result, decoded...)
		result = append(result, '\n')
	}
	return result, nil
}

// parseRectangle parses a PDF rectangle array [llx lly urx ury].
func parseRectangle(obj Object) (Rectangle, error) {
	arr, ok := obj.(Array)
	if !ok || len(arr) != 4 {
		return Rectangle{}, fmt.Errorf("reader: rectangle must be a 4-element array")
	}

	vals := make([]float64, 4)
	for i, v := range arr {
		switch n := v.(type) {
		case Integer:
			vals[i] = float64(n)
		case Real:
			vals[i] = float64(n)
		default:
			return Rectangle{}, fmt.Errorf("reader: rectangle element %d is not numeric", i)
		}
	}
	return Rectangle{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}

// buildPageList traverses the page tree and returns a flat list of pages.
func (d *Document) buildPageList() error {
	catalog := d.trailer.GetDict("Root")
	if catalog == nil {
		// Root might be a reference
		rootRef, ok := d.trailer["Root"].(Reference)
		if !ok {
			return fmt.Errorf("reader: missing /Root in trailer")
		}
		rootObj, err := d.resolve(rootRef)
		if err != nil {
			return fmt.Errorf("reader: resolving root: %w", err)
		}
		var isCatalog bool
		catalog, isCatalog = rootObj.(Dict)
		if !isCatalog {
			return fmt.Errorf("reader: /Root is not a dictionary")
		}
	}

	pagesRef, ok := catalog["Pages"].(Reference)
	if !ok {
		return fmt.Errorf("reader: /Pages is not a reference")
	}

	pagesObj, err := d.resolve(pagesRef)
	if err != nil {
		return fmt.Errorf("reader: resolving /Pages: %w", err)
	}
	pagesDict, ok := pagesObj.(Dict)
	if !ok {
		return fmt.Errorf("reader: /Pages is not a dictionary")
	}

	d.pages = nil
	return d.traversePageTree(pagesDict, nil)
}

// inheritable page-tree attributes, resolved down to the leaves.
var inheritableKeys = []Name{"MediaBox", "CropBox", "Resources", "Rotate"}

// traversePageTree recursively collects leaf pages, carrying the
// inheritable attributes down from /Pages nodes.
func (d *Document) traversePageTree(node Dict, inherited Dict) error {
	merged := make(Dict)
	for k, v := range inherited {
		merged[k] = v
	}
	for _, key := range inheritableKeys {
		if v, ok := node[key]; ok {
			merged[key] = v
		}
	}

	if node.GetName("Type") == "Page" {
		page, err := d.buildPage(node, merged, len(d.pages)+1)
		if err != nil {
			return err
		}
		d.pages = append(d.pages, page)
		return nil
	}

	// Pages node - traverse children
	kids := node.GetArray("Kids")
	if kids == nil {
		if kidsRef, ok := node["Kids"].(Reference); ok {
			kidsObj, err := d.resolve(kidsRef)
			if err != nil {
				return fmt.Errorf("reader: resolving /Kids: %w", err)
			}
			kids, _ = kidsObj.(Array)
		}
	}

	for _, kid := range kids {
		kidObj, err := d.resolveIfRef(kid)
		if err != nil {
			return fmt.Errorf("reader: resolving page tree kid: %w", err)
		}
		kidDict, ok := kidObj.(Dict)
		if !ok {
			continue
		}
		if err := d.traversePageTree(kidDict, merged); err != nil {
			return err
		}
	}

	return nil
}

// buildPage resolves the flattened attributes of one leaf into a Page.
// Malformed attribute values are skipped, leaving the zero value; only an
// unresolvable /Contents reference is an error.
func (d *Document) buildPage(node, merged Dict, number int) (*Page, error) {
	page := &Page{Number: number}

	if mb, ok := merged["MediaBox"]; ok {
		if resolved, err := d.resolveIfRef(mb); err == nil {
			if rect, err := parseRectangle(resolved); err == nil {
				page.MediaBox = rect
			}
		}
	}
	if cb, ok := merged["CropBox"]; ok {
		if resolved, err := d.resolveIfRef(cb); err == nil {
			if rect, err := parseRectangle(resolved); err == nil {
				page.CropBox = &rect
			}
		}
	}
	if res, ok := merged["Resources"]; ok {
		if resolved, err := d.resolveIfRef(res); err == nil {
			if resDict, ok := resolved.(Dict); ok {
				page.Resources = resDict
			}
		}
	}
	if rot, ok := merged["Rotate"]; ok {
		if resolved, err := d.resolveIfRef(rot); err == nil {
			if n, ok := resolved.(Integer); ok {
				page.Rotate = int(n)
			}
		}
	}

	if contents, ok := node["Contents"]; ok {
		resolved, err := d.resolveIfRef(contents)
		if err != nil {
			return nil, fmt.Errorf("reader: page %d contents: %w", number, err)
		}
		switch c := resolved.(type) {
		case Stream:
			page.Contents = []Stream{c}
		case Array:
			for _, item := range c {
				streamObj, err := d.resolveIfRef(item)
				if err != nil {
					continue
				}
				if s, ok := streamObj.(Stream); ok {
					page.Contents = append(page.Contents, s)
				}
			}
		}
	}

	return page, nil
}
