package bitset

import "github.com/deepakm/cbitset-go/lib/word"

// Count returns the number of set bits: the sum of popcounts over
// every literal's 31-bit payload, plus one for every fill that
// absorbs a bit.
func (b *Bitset) Count() Offset {
	var total Offset
	for _, w := range b.words {
		if word.IsLiteral(w) {
			total += Offset(word.Popcount31(w))
		} else if word.HasAbsorbedBit(w) {
			total++
		}
	}
	return total
}

// Min returns the smallest set offset, or 0 if the bitset is empty.
func (b *Bitset) Min() Offset {
	var blk Offset
	for _, w := range b.words {
		if word.IsLiteral(w) {
			if idx, ok := word.FirstSetBit(w); ok {
				return blk*word.LiteralPayload + Offset(idx)
			}
		} else if word.HasAbsorbedBit(w) {
			return (blk+Offset(word.FillLength(w)))*word.LiteralPayload + Offset(word.AbsorbedBitIndex(w))
		}
		blk += WordBlockSpan(w)
	}
	return 0
}

// Max returns the largest set offset, or 0 if the bitset is empty.
// Block indices only increase walking the stream, so the last match
// found during a single forward pass is the maximum — no separate
// backward walk is needed.
func (b *Bitset) Max() Offset {
	var blk Offset
	var ans Offset
	var found bool
	for _, w := range b.words {
		if word.IsLiteral(w) {
			if idx, ok := word.LastSetBit(w); ok {
				ans = blk*word.LiteralPayload + Offset(idx)
				found = true
			}
		} else if word.HasAbsorbedBit(w) {
			ans = (blk+Offset(word.FillLength(w)))*word.LiteralPayload + Offset(word.AbsorbedBitIndex(w))
			found = true
		}
		blk += WordBlockSpan(w)
	}
	if !found {
		return 0
	}
	return ans
}
