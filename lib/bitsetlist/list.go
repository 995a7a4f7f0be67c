// Package bitsetlist implements the append-only, delta-encoded
// container of (offset, bitset) entries in a single contiguous byte
// buffer. The iterator decodes each entry's words out of that buffer
// into a fresh bitset; it does not borrow them.
//
// The buffer's own growth uses lib/growbuf, the same power-of-two
// strategy lib/bitset's word array uses, and the varint header format
// picks the shortest self-describing length prefix for a value,
// fixed to a 2-bit prefix and a 1-4 byte range.
package bitsetlist

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/growbuf"
	"github.com/deepakm/cbitset-go/lib/planner"
	"github.com/deepakm/cbitset-go/lib/word"
)

// EnableTrace gates push/iteration tracing: when true, Push and
// NewBuffer log one line per entry to stderr.
var EnableTrace = false

var traceLog = log.New(os.Stderr, "bitsetlist: ", 0)

func trace(format string, args ...interface{}) {
	if EnableTrace {
		traceLog.Printf(format, args...)
	}
}

// List is an append-only sequence of (offset, bitset) entries packed
// into one contiguous buffer. The zero value is not usable; construct
// with New or NewBuffer.
type List struct {
	buf        []byte
	count      int
	tailOffset bitset.Offset
	cfg        bitset.Config
}

// New returns an empty list.
func New(cfg bitset.Config) *List {
	return &List{cfg: cfg}
}

// Config returns the list's construction-time configuration.
func (l *List) Config() bitset.Config {
	return l.cfg
}

// Count returns the number of entries pushed.
func (l *List) Count() int {
	return l.count
}

// Length returns the buffer's byte length.
func (l *List) Length() int {
	return len(l.buf)
}

// TailOffset returns the most recently pushed entry's absolute
// offset, or 0 if the list is empty.
func (l *List) TailOffset() bitset.Offset {
	return l.tailOffset
}

// Bytes returns the raw entry buffer. Callers must not mutate it.
func (l *List) Bytes() []byte {
	return l.buf
}

// Push appends a new entry at offset, requiring offset >= the current
// tail offset.
// Stores Δoffset relative to the prior tail, the entry's word count,
// and its encoded word stream verbatim.
func (l *List) Push(offset bitset.Offset, b *bitset.Bitset) error {
	if l.count > 0 && offset < l.tailOffset {
		return fmt.Errorf("bitsetlist: push offset %d before tail %d: %w", offset, l.tailOffset, bitset.ErrInvalidArgument)
	}
	delta := offset
	if l.count > 0 {
		delta = offset - l.tailOffset
	}
	if delta > MaxVarintValue {
		return fmt.Errorf("bitsetlist: push delta %d exceeds varint range: %w", delta, bitset.ErrInvalidArgument)
	}

	wordBytes := b.Bytes()
	deltaHdr, err := EncodeVarint(uint32(delta))
	if err != nil {
		return err
	}
	countHdr, err := EncodeVarint(uint32(len(wordBytes) / 4))
	if err != nil {
		return err
	}

	entryLen := len(deltaHdr) + len(countHdr) + len(wordBytes)
	l.buf = growbuf.Grow(l.buf, entryLen)
	pos := len(l.buf) - entryLen
	pos += copy(l.buf[pos:], deltaHdr)
	pos += copy(l.buf[pos:], countHdr)
	copy(l.buf[pos:], wordBytes)

	l.tailOffset = offset
	l.count++
	trace("push offset=%d delta=%d words=%d", offset, delta, len(wordBytes)/4)
	return nil
}

// NewBuffer copies buf and re-derives count and tail_offset by
// replaying every entry's varint headers. Rejects any fill word whose
// reserved color bit is set (word.ErrColoredFill), the same guard
// bitset.NewBuffer applies to a standalone word stream.
func NewBuffer(buf []byte, cfg bitset.Config) (*List, error) {
	out := make([]byte, len(buf))
	copy(out, buf)
	l := &List{buf: out, cfg: cfg}

	pos := 0
	first := true
	for pos < len(out) {
		delta, n1, err := DecodeVarint(out[pos:])
		if err != nil {
			return nil, err
		}
		pos += n1
		wordCount, n2, err := DecodeVarint(out[pos:])
		if err != nil {
			return nil, err
		}
		pos += n2
		need := int(wordCount) * 4
		if pos+need > len(out) {
			return nil, fmt.Errorf("bitsetlist: NewBuffer: truncated entry at byte %d: %w", pos, bitset.ErrInvalidArgument)
		}
		entryBytes := out[pos : pos+need]
		for i := 0; i < int(wordCount); i++ {
			w := word.Word(binary.LittleEndian.Uint32(entryBytes[i*4 : i*4+4]))
			if word.IsFill(w) && word.IsColored(w) {
				return nil, fmt.Errorf("bitsetlist: NewBuffer: entry at byte %d, word %d: %w", pos, i, word.ErrColoredFill)
			}
		}
		pos += need

		if first {
			l.tailOffset = bitset.Offset(delta)
			first = false
		} else {
			l.tailOffset += bitset.Offset(delta)
		}
		l.count++
		trace("load entry offset=%d words=%d", l.tailOffset, wordCount)
	}
	return l, nil
}

// Checksum returns an xxhash of the raw entry buffer, used to confirm
// a list buffer survived serialize/deserialize untouched.
func (l *List) Checksum() uint64 {
	return xxhash.Sum64(l.buf)
}

// Concat appends every entry of other to l, shifting each absolute
// offset by shift. Borrows other's entries
// through an iterator; does not reclaim other's underlying buffer.
func (l *List) Concat(other *List, shift bitset.Offset) error {
	it := NewIterator(other, NegInf, PosInf)
	var pushErr error
	walkErr := it.Foreach(func(offset bitset.Offset, b *bitset.Bitset) bool {
		if err := l.Push(offset+shift, b); err != nil {
			pushErr = err
			return false
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	return pushErr
}

// CountAll returns (raw, unique): raw is the sum of every entry's
// population count, and unique is the population count of the
// OR-fold of every entry's bitset.
func (l *List) CountAll() (raw, unique bitset.Offset, err error) {
	it := NewIterator(l, NegInf, PosInf)
	var union *bitset.Bitset
	walkErr := it.Foreach(func(offset bitset.Offset, b *bitset.Bitset) bool {
		raw += b.Count()
		if union == nil {
			union = b.Copy()
			return true
		}
		p := planner.New(union, l.cfg)
		p.AddBitset(planner.OR, b)
		result, execErr := p.Exec()
		if execErr != nil {
			err = execErr
			return false
		}
		union = result
		return true
	})
	if walkErr != nil {
		return 0, 0, walkErr
	}
	if err != nil {
		return 0, 0, err
	}
	if union == nil {
		union = bitset.New(l.cfg)
	}
	return raw, union.Count(), nil
}
