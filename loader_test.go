package cbitset

import (
	"path/filepath"
	"testing"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/bitsetlist"
)

func TestBitsetSaveLoadRoundTrip(t *testing.T) {
	cfg := bitset.DefaultConfig()
	b, err := bitset.NewFromBits([]bitset.Offset{3, 31, 32, 1000}, cfg)
	if err != nil {
		t.Fatalf("NewFromBits: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bits.bin")
	if err := SaveBitset(path, b); err != nil {
		t.Fatalf("SaveBitset: %v", err)
	}

	reloaded, err := LoadBitset(path, cfg)
	if err != nil {
		t.Fatalf("LoadBitset: %v", err)
	}
	if reloaded.Checksum() != b.Checksum() {
		t.Fatalf("checksum mismatch after round trip")
	}
}

func TestListSaveLoadRoundTrip(t *testing.T) {
	cfg := bitset.DefaultConfig()
	l := bitsetlist.New(cfg)
	b, err := bitset.NewFromBits([]bitset.Offset{10}, cfg)
	if err != nil {
		t.Fatalf("NewFromBits: %v", err)
	}
	if err := l.Push(3, b); err != nil {
		t.Fatalf("Push: %v", err)
	}

	path := filepath.Join(t.TempDir(), "list.bin")
	if err := SaveList(path, l); err != nil {
		t.Fatalf("SaveList: %v", err)
	}

	reloaded, err := LoadList(path, cfg)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if reloaded.Count() != l.Count() {
		t.Fatalf("count mismatch: got %d want %d", reloaded.Count(), l.Count())
	}
	if reloaded.Checksum() != l.Checksum() {
		t.Fatalf("checksum mismatch after round trip")
	}
}

func TestLoadBitsetMissingFile(t *testing.T) {
	_, err := LoadBitset(filepath.Join(t.TempDir(), "missing.bin"), bitset.DefaultConfig())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
