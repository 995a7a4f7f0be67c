// Package cbitset provides file-level load/save helpers for the two
// on-disk buffer formats this module defines: a raw bitset word
// buffer and a bitset-list entry buffer. It is the same "read a named
// file into a core type" responsibility this module's root package
// carried, just pointed at binary buffers instead of text lines.
package cbitset

import (
	"fmt"
	"os"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/bitsetlist"
)

// LoadBitset reads filename as a raw little-endian word buffer and
// decodes it with cfg.
func LoadBitset(filename string, cfg bitset.Config) (*bitset.Bitset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cbitset: LoadBitset %s: %w", filename, err)
	}
	return bitset.NewBuffer(data, cfg)
}

// SaveBitset writes b's encoded word stream to filename.
func SaveBitset(filename string, b *bitset.Bitset) error {
	if err := os.WriteFile(filename, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cbitset: SaveBitset %s: %w", filename, err)
	}
	return nil
}

// LoadList reads filename as a bitset-list entry buffer and
// re-derives count and tail_offset by replaying its varint headers.
func LoadList(filename string, cfg bitset.Config) (*bitsetlist.List, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cbitset: LoadList %s: %w", filename, err)
	}
	return bitsetlist.NewBuffer(data, cfg)
}

// SaveList writes l's raw entry buffer to filename.
func SaveList(filename string, l *bitsetlist.List) error {
	if err := os.WriteFile(filename, l.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cbitset: SaveList %s: %w", filename, err)
	}
	return nil
}
