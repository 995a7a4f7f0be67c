package planner

import (
	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/word"
)

// infiniteRun stands in for "this operand has no more words, so every
// remaining block reads as clean zero forever" — large enough that it
// never wins a min() against any operand that still has real content.
const infiniteRun = bitset.Offset(1) << 62

// segment is one stable run in an operand's word stream: either
// length clean-zero blocks (length > 1 always means zero; only a
// literal or an absorbed block can carry a nonzero single-block
// value), or exactly one block carrying value.
type segment struct {
	length bitset.Offset
	value  word.Word
}

// cursor walks one operand's word stream one segment at a time,
// tracking how far into the current word it has advanced in blocks.
// This is the per-operand state the lockstep walk maintains: the
// current word's index and how many of its blocks have been consumed.
type cursor struct {
	words     []word.Word
	idx       int
	posInWord bitset.Offset
}

func newCursor(b *bitset.Bitset) *cursor {
	return &cursor{words: b.Words()}
}

func (c *cursor) atEnd() bool {
	return c.idx >= len(c.words)
}

// nextSegment returns the stable run starting at the cursor's current
// position without advancing it. Skips over any fully-consumed words
// left behind by a previous advance.
func (c *cursor) nextSegment() segment {
	for !c.atEnd() {
		w := c.words[c.idx]
		span := bitset.WordBlockSpan(w)
		if c.posInWord >= span {
			c.idx++
			c.posInWord = 0
			continue
		}
		if word.IsLiteral(w) {
			return segment{length: 1, value: word.Payload(w)}
		}
		L := bitset.Offset(word.FillLength(w))
		if c.posInWord < L {
			return segment{length: L - c.posInWord}
		}
		// posInWord == L < span: the absorbed block.
		return segment{length: 1, value: word.LiteralForBit(word.AbsorbedBitIndex(w))}
	}
	return segment{length: infiniteRun}
}

// advance moves the cursor forward n blocks, which may span multiple
// words.
func (c *cursor) advance(n bitset.Offset) {
	for n > 0 && !c.atEnd() {
		span := bitset.WordBlockSpan(c.words[c.idx])
		avail := span - c.posInWord
		step := n
		if step > avail {
			step = avail
		}
		c.posInWord += step
		n -= step
		if c.posInWord >= span {
			c.idx++
			c.posInWord = 0
		}
	}
}
