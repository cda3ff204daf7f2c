package document_test

import (
	"testing"

	"github.com/AberrantWolf/pdf-tools-sub000/document"
	"github.com/AberrantWolf/pdf-tools-sub000/reader"
)

// buildSharedGraph creates a document where two dictionaries reference the
// same child object.
func buildSharedGraph(t *testing.T) (*document.Document, reader.Object) {
	t.Helper()
	src := document.New()
	shared := src.AddObject(reader.Dict{"Kind": reader.Name("Shared")})
	root := reader.Dict{
		"A": reader.Dict{"Child": shared},
		"B": reader.Dict{"Child": shared},
	}
	return src, root
}

func TestDeepCopySharesViaCache(t *testing.T) {
	src, root := buildSharedGraph(t)

	dst := document.New()
	cache := make(map[reader.Reference]reader.Reference)
	copied, err := dst.DeepCopy(root, src, cache)
	if err != nil {
		t.Fatalf("DeepCopy: %v", err)
	}

	dict := copied.(reader.Dict)
	refA := dict.GetDict("A")["Child"].(reader.Reference)
	refB := dict.GetDict("B")["Child"].(reader.Reference)
	if refA != refB {
		t.Errorf("shared child copied twice: %v vs %v", refA, refB)
	}
	if len(cache) != 1 {
		t.Errorf("cache has %d entries, want 1", len(cache))
	}
}

func TestDeepCopySeparateCachesIndependent(t *testing.T) {
	src, root := buildSharedGraph(t)

	dst := document.New()
	first, err := dst.DeepCopy(root, src, make(map[reader.Reference]reader.Reference))
	if err != nil {
		t.Fatalf("first DeepCopy: %v", err)
	}
	second, err := dst.DeepCopy(root, src, make(map[reader.Reference]reader.Reference))
	if err != nil {
		t.Fatalf("second DeepCopy: %v", err)
	}

	refFirst := first.(reader.Dict).GetDict("A")["Child"].(reader.Reference)
	refSecond := second.(reader.Dict).GetDict("A")["Child"].(reader.Reference)
	if refFirst == refSecond {
		t.Error("separate caches should allocate separate destination objects")
	}

	// Both copies must resolve to structurally equal values.
	objFirst, _ := dst.Object(refFirst)
	objSecond, _ := dst.Object(refSecond)
	if objFirst.(reader.Dict).GetName("Kind") != "Shared" || objSecond.(reader.Dict).GetName("Kind") != "Shared" {
		t.Error("copied children lost their contents")
	}
}

func TestDeepCopyCycleTerminates(t *testing.T) {
	src := document.New()
	a := src.AddObject(reader.Null{})
	b := src.AddObject(reader.Dict{"Back": a})
	src.SetObject(a, reader.Dict{"Forward": b})

	dst := document.New()
	cache := make(map[reader.Reference]reader.Reference)
	copied, err := dst.DeepCopy(a, src, cache)
	if err != nil {
		t.Fatalf("DeepCopy on cycle: %v", err)
	}

	// Following the cycle in the copy must come back to the first allocation.
	first := copied.(reader.Reference)
	forward := dst.Resolve(first).(reader.Dict)["Forward"].(reader.Reference)
	back := dst.Resolve(forward).(reader.Dict)["Back"].(reader.Reference)
	if back != first {
		t.Errorf("cycle not preserved: %v -> %v -> %v", first, forward, back)
	}
}

func TestDeepCopyStreamKeepsRawData(t *testing.T) {
	src := document.New()
	raw := []byte{0x78, 0x9c, 0x01, 0x02} // looks compressed; must not be decoded
	streamRef := src.AddObject(reader.Stream{
		Dict: reader.Dict{"Filter": reader.Name("FlateDecode")},
		Data: raw,
	})

	dst := document.New()
	copied, err := dst.DeepCopy(streamRef, src, make(map[reader.Reference]reader.Reference))
	if err != nil {
		t.Fatalf("DeepCopy: %v", err)
	}
	obj := dst.Resolve(copied)
	stream, ok := obj.(reader.Stream)
	if !ok {
		t.Fatalf("copied object is %T, want Stream", obj)
	}
	if string(stream.Data) != string(raw) {
		t.Error("stream data changed during copy")
	}
	if stream.Dict.GetName("Filter") != "FlateDecode" {
		t.Error("filter chain lost during copy")
	}
}
