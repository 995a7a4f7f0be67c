package bitsetlist

import (
	"encoding/binary"
	"fmt"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/word"
)

// Bound is one edge of an iterator's half-open absolute-offset
// window. Use At for a finite edge, or the NegInf/PosInf sentinels
// for an open end.
type Bound struct {
	value  bitset.Offset
	signum int // -1: -infinity, 0: finite, +1: +infinity
}

// At returns a finite bound at o.
func At(o bitset.Offset) Bound {
	return Bound{value: o}
}

// NegInf and PosInf are the iterator window's open-ended sentinels
// (either bound may be an open sentinel meaning -infinity/+infinity).
var (
	NegInf = Bound{signum: -1}
	PosInf = Bound{signum: 1}
)

func (b Bound) satisfiedAsLower(o bitset.Offset) bool {
	if b.signum == -1 {
		return true
	}
	if b.signum == 1 {
		return false
	}
	return o >= b.value
}

func (b Bound) satisfiedAsUpper(o bitset.Offset) bool {
	if b.signum == 1 {
		return true
	}
	if b.signum == -1 {
		return false
	}
	return o < b.value
}

// Iterator walks a List's entries in ascending offset order, yielding
// only those whose absolute offset falls in the half-open window
// [start, end). Each entry's word stream is decoded out of the list's
// buffer with a plain encoding/binary scan rather than an unsafe
// pointer cast.
type Iterator struct {
	l     *List
	start Bound
	end   Bound

	walked  bool
	offsets []bitset.Offset
	bitsets []*bitset.Bitset
}

// NewIterator constructs an iterator over l's entries restricted to
// [start, end).
func NewIterator(l *List, start, end Bound) *Iterator {
	return &Iterator{l: l, start: start, end: end}
}

// Foreach decodes every entry in order, invoking fn for each one
// whose absolute offset lies in the iterator's window. Stops early if
// fn returns false.
func (it *Iterator) Foreach(fn func(offset bitset.Offset, b *bitset.Bitset) bool) error {
	buf := it.l.buf
	pos := 0
	var absolute bitset.Offset
	first := true

	for pos < len(buf) {
		delta, n1, err := DecodeVarint(buf[pos:])
		if err != nil {
			return err
		}
		pos += n1

		wordCount, n2, err := DecodeVarint(buf[pos:])
		if err != nil {
			return err
		}
		pos += n2

		need := int(wordCount) * 4
		if pos+need > len(buf) {
			return fmt.Errorf("bitsetlist: iterator: truncated entry at byte %d: %w", pos, bitset.ErrInvalidArgument)
		}
		entryBytes := buf[pos : pos+need]
		pos += need

		if first {
			absolute = bitset.Offset(delta)
			first = false
		} else {
			absolute += bitset.Offset(delta)
		}

		if !it.start.satisfiedAsLower(absolute) || !it.end.satisfiedAsUpper(absolute) {
			continue
		}

		words := make([]word.Word, wordCount)
		for i := range words {
			words[i] = word.Word(binary.LittleEndian.Uint32(entryBytes[i*4 : i*4+4]))
		}
		b := bitset.FromWords(words, it.l.cfg)
		trace("iterate offset=%d words=%d", absolute, wordCount)
		if !fn(absolute, b) {
			return nil
		}
	}
	return nil
}

func (it *Iterator) walk() error {
	if it.walked {
		return nil
	}
	err := it.Foreach(func(offset bitset.Offset, b *bitset.Bitset) bool {
		it.offsets = append(it.offsets, offset)
		it.bitsets = append(it.bitsets, b)
		return true
	})
	if err != nil {
		return err
	}
	it.walked = true
	return nil
}

// Offsets returns the absolute offsets of every entry in the window,
// in ascending order, performing a full walk on first call.
func (it *Iterator) Offsets() ([]bitset.Offset, error) {
	if err := it.walk(); err != nil {
		return nil, err
	}
	return it.offsets, nil
}

// Bitsets returns a bitset for every entry in the window, parallel to
// Offsets. Each one owns a copy of its entry's words, decoded from the
// list's buffer.
func (it *Iterator) Bitsets() ([]*bitset.Bitset, error) {
	if err := it.walk(); err != nil {
		return nil, err
	}
	return it.bitsets, nil
}
