package document

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Bytes serializes the document as a PDF 1.7 file with a classic
// cross-reference table.
//
// The pages tree, catalog, and trailer are materialized on the fly without
// mutating the document, so Bytes can be called repeatedly. Output is
// deterministic: objects are emitted in ascending number order and
// dictionary keys are sorted.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("document: cannot serialize a document with no pages")
	}

	// Synthesized structural objects live past the allocated numbers.
	pagesNum := d.nextNum
	catalogNum := pagesNum + 1
	infoNum := 0
	if d.info != nil {
		infoNum = catalogNum + 1
	}
	pagesRef := reader.Reference{Number: pagesNum}

	kids := make(reader.Array, 0, len(d.pages))
	for _, ref := range d.pages {
		kids = append(kids, ref)
	}
	pagesDict := reader.Dict{
		"Type":  reader.Name("Pages"),
		"Kids":  kids,
		"Count": reader.Integer(len(d.pages)),
	}
	catalogDict := reader.Dict{
		"Type":  reader.Name("Catalog"),
		"Pages": pagesRef,
	}

	// Page dictionaries gain their Parent entry in a shallow overlay.
	overlay := make(map[int]reader.Object, len(d.pages)+3)
	for _, ref := range d.pages {
		dict, ok := d.objects[ref.Number].(reader.Dict)
		if !ok {
			return nil, fmt.Errorf("document: page object %d is not a dictionary", ref.Number)
		}
		withParent := make(reader.Dict, len(dict)+1)
		for k, v := range dict {
			withParent[k] = v
		}
		withParent["Parent"] = pagesRef
		overlay[ref.Number] = withParent
	}
	overlay[pagesNum] = pagesDict
	overlay[catalogNum] = catalogDict
	if infoNum != 0 {
		overlay[infoNum] = d.info
	}

	version := d.Version
	if version == "" {
		version = "1.7"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", version)
	buf.WriteString("%\xe2\xe3\xcf\xd3\n")

	nums := d.objectNumbers()
	for n := pagesNum; n <= catalogNum; n++ {
		nums = append(nums, n)
	}
	if infoNum != 0 {
		nums = append(nums, infoNum)
	}

	offsets := make(map[int]int, len(nums))
	for _, n := range nums {
		obj := d.objects[n]
		if o, ok := overlay[n]; ok {
			obj = o
		}
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", n)
		writeObject(&buf, obj)
		buf.WriteString("\nendobj\n")
	}

	maxNum := nums[len(nums)-1]

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n <= maxNum; n++ {
		if off, ok := offsets[n]; ok {
			fmt.Fprintf(&buf, "%010d 00000 n \n", off)
		} else {
			buf.WriteString("0000000000 65535 f \n")
		}
	}

	id := md5.Sum(buf.Bytes())
	trailer := reader.Dict{
		"Size": reader.Integer(maxNum + 1),
		"Root": reader.Reference{Number: catalogNum},
		"ID": reader.Array{
			reader.String{Value: id[:], IsHex: true},
			reader.String{Value: id[:], IsHex: true},
		},
	}
	if infoNum != 0 {
		trailer["Info"] = reader.Reference{Number: infoNum}
	}

	buf.WriteString("trailer\n")
	writeObject(&buf, trailer)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes(), nil
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// writeObject serializes a single PDF object in file syntax.
func writeObject(buf *bytes.Buffer, obj reader.Object) {
	switch v := obj.(type) {
	case nil, reader.Null:
		buf.WriteString("null")

	case reader.Boolean:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case reader.Integer:
		fmt.Fprintf(buf, "%d", int64(v))

	case reader.Real:
		buf.WriteString(formatNumber(float64(v)))

	case reader.Name:
		writeName(buf, v)

	case reader.String:
		writeString(buf, v)

	case reader.Reference:
		fmt.Fprintf(buf, "%d %d R", v.Number, v.Generation)

	case reader.Array:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeObject(buf, item)
		}
		buf.WriteByte(']')

	case reader.Dict:
		writeDict(buf, v)

	case reader.Stream:
		// Length always reflects the stored data; a stale or indirect
		// /Length from the source is dropped.
		dict := make(reader.Dict, len(v.Dict)+1)
		for k, val := range v.Dict {
			dict[k] = val
		}
		dict["Length"] = reader.Integer(len(v.Data))
		writeDict(buf, dict)
		buf.WriteString("\nstream\n")
		buf.Write(v.Data)
		buf.WriteString("\nendstream")

	default:
		buf.WriteString("null")
	}
}

// writeDict serializes a dictionary with keys in sorted order.
func writeDict(buf *bytes.Buffer, d reader.Dict) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	buf.WriteString("<<")
	for _, k := range keys {
		buf.WriteByte(' ')
		writeName(buf, reader.Name(k))
		buf.WriteByte(' ')
		writeObject(buf, d[reader.Name(k)])
	}
	buf.WriteString(" >>")
}

// writeName serializes a name, escaping delimiter and non-printable bytes.
func writeName(buf *bytes.Buffer, n reader.Name) {
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		b := n[i]
		if b <= ' ' || b > '~' || b == '#' ||
			b == '(' || b == ')' || b == '<' || b == '>' ||
			b == '[' || b == ']' || b == '{' || b == '}' ||
			b == '/' || b == '%' {
			fmt.Fprintf(buf, "#%02X", b)
		} else {
			buf.WriteByte(b)
		}
	}
}

// writeString serializes a string object, hex or literal.
func writeString(buf *bytes.Buffer, s reader.String) {
	if s.IsHex {
		fmt.Fprintf(buf, "<%X>", s.Value)
		return
	}
	buf.WriteByte('(')
	for _, b := range s.Value {
		switch b {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(')')
}

// formatNumber renders a float in the plain decimal notation PDF requires
// (no exponents), trimming to at most five decimal places.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 5, 64)
	s = trimTrailingZeros(s)
	if s == "-0" {
		return "0"
	}
	return s
}

func trimTrailingZeros(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
