package document

import (
	"fmt"

	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// Resolver resolves indirect references in a source object graph.
// Both reader.Document and Document satisfy it.
type Resolver interface {
	ResolveReference(ref reader.Reference) (reader.Object, error)
}

// DeepCopy copies obj from a source object graph into d, remapping every
// indirect reference it reaches. The cache maps source references to
// destination references so shared objects (fonts, ICC profiles, patterns)
// are copied once per source id. The destination reference is allocated and
// cached before the referenced value is descended into, so reference cycles
// terminate and resolve to the first allocation.
func (d *Document) DeepCopy(obj reader.Object, src Resolver, cache map[reader.Reference]reader.Reference) (reader.Object, error) {
	switch v := obj.(type) {
	case reader.Reference:
		if dst, ok := cache[v]; ok {
			return dst, nil
		}
		dst := d.AddObject(reader.Null{})
		cache[v] = dst

		value, err := src.ResolveReference(v)
		if err != nil {
			return nil, fmt.Errorf("document: resolving %s: %w", v, err)
		}
		copied, err := d.DeepCopy(value, src, cache)
		if err != nil {
			return nil, err
		}
		d.SetObject(dst, copied)
		return dst, nil

	case reader.Dict:
		out := make(reader.Dict, len(v))
		for key, val := range v {
			copied, err := d.DeepCopy(val, src, cache)
			if err != nil {
				return nil, err
			}
			out[key] = copied
		}
		return out, nil

	case reader.Array:
		out := make(reader.Array, 0, len(v))
		for _, item := range v {
			copied, err := d.DeepCopy(item, src, cache)
			if err != nil {
				return nil, err
			}
			out = append(out, copied)
		}
		return out, nil

	case reader.Stream:
		// Stream data is copied verbatim, never decoded; the dictionary keeps
		// its filter chain so compressed data round-trips untouched.
		dict, err := d.DeepCopy(v.Dict, src, cache)
		if err != nil {
			return nil, err
		}
		data := make([]byte, len(v.Data))
		copy(data, v.Data)
		return reader.Stream{Dict: dict.(reader.Dict), Data: data}, nil

	case nil:
		return reader.Null{}, nil

	default:
		// Null, Boolean, Integer, Real, Name, String are value types.
		return v, nil
	}
}
