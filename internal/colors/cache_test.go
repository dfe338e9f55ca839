package colors_test

import (
	"testing"

	"hxls/internal/colors"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestCache(t *testing.T) {
	cache, err := colors.NewCache(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uri := "file:///style.css"
	hash := colors.HashText("body { color: #fff; }")
	stored := []protocol.ColorInformation{{
		Color: protocol.Color{Red: 1, Green: 1, Blue: 1, Alpha: 1},
	}}

	if _, ok := cache.Get(uri, hash); ok {
		t.Fatal("expected a miss before Put")
	}

	cache.Put(uri, hash, stored)
	got, ok := cache.Get(uri, hash)
	if !ok || len(got) != 1 {
		t.Fatalf("expected a hit, got ok=%v len=%d", ok, len(got))
	}

	// An edit changes the hash and must invalidate the entry.
	if _, ok := cache.Get(uri, colors.HashText("body { color: #000; }")); ok {
		t.Fatal("expected a miss for changed content")
	}

	cache.Drop(uri)
	if _, ok := cache.Get(uri, hash); ok {
		t.Fatal("expected a miss after Drop")
	}
}

func TestHashTextDiffers(t *testing.T) {
	if colors.HashText("one") == colors.HashText("two") {
		t.Fatal("expected different hashes for different content")
	}
	if colors.HashText("same") != colors.HashText("same") {
		t.Fatal("expected stable hashes")
	}
}
