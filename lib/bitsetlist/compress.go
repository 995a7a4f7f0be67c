package bitsetlist

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/deepakm/cbitset-go/lib/bitset"
)

// CompressBuffer returns a zstd-compressed copy of the list's raw
// entry buffer, for at-rest storage. Never called implicitly by Push
// or the iterator: the in-memory representation always stays the
// exact wire format, and compression is an explicit transform the
// caller applies and reverses (cmd/cbitset's "list export -compress").
func (l *List) CompressBuffer() ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("bitsetlist: CompressBuffer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(l.buf, nil), nil
}

// DecompressBuffer reverses CompressBuffer and replays the result
// through NewBuffer to re-derive count and tail_offset.
func DecompressBuffer(compressed []byte, cfg bitset.Config) (*List, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("bitsetlist: DecompressBuffer: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("bitsetlist: DecompressBuffer: %w", err)
	}
	return NewBuffer(raw, cfg)
}
