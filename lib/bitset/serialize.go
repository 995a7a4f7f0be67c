package bitset

import (
	"encoding/binary"
	"fmt"

	"github.com/deepakm/cbitset-go/lib/word"
)

// NewBuffer interprets bytes as a packed array of little-endian
// 32-bit encoded words and copies them. len(bytes) must be a multiple
// of 4. Rejects any fill word whose reserved color bit is set
// (word.ErrColoredFill): this encoding never produces one, so seeing
// one means the buffer was not produced by this package.
//
// Reinterprets the byte buffer as fixed-width integers with
// encoding/binary rather than an unsafe pointer cast.
func NewBuffer(bytes []byte, cfg Config) (*Bitset, error) {
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("bitset: NewBuffer: length %d not a multiple of 4: %w", len(bytes), ErrInvalidArgument)
	}
	n := len(bytes) / 4
	words := make([]word.Word, n)
	for i := 0; i < n; i++ {
		w := word.Word(binary.LittleEndian.Uint32(bytes[i*4 : i*4+4]))
		if word.IsFill(w) && word.IsColored(w) {
			return nil, fmt.Errorf("bitset: NewBuffer: word %d: %w", i, word.ErrColoredFill)
		}
		words[i] = w
	}
	return &Bitset{words: words, cfg: cfg}, nil
}

// NewFromBits constructs a bitset with every offset in offsets set,
// applied in the given order via Set. Canonical form is the end state
// regardless of input order, since Set supports arbitrary
// random-access mutation.
func NewFromBits(offsets []Offset, cfg Config) (*Bitset, error) {
	b := New(cfg)
	for _, o := range offsets {
		if _, err := b.Set(o, true); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Bytes serializes the word stream as little-endian 32-bit words.
func (b *Bitset) Bytes() []byte {
	out := make([]byte, len(b.words)*4)
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], uint32(w))
	}
	return out
}

// Length returns the byte length of the serialized word stream
// (words_count * 4).
func (b *Bitset) Length() int {
	return len(b.words) * 4
}
