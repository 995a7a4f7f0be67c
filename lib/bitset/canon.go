package bitset

import (
	"fmt"

	"github.com/deepakm/cbitset-go/lib/growbuf"
	"github.com/deepakm/cbitset-go/lib/word"
)

// WordBlockSpan returns the number of logical 31-bit blocks a single
// encoded word covers: 1 for a literal, or L (+1 if it absorbs a bit)
// for a fill. Exported so lib/planner's lockstep cursor can walk an
// operand's word stream without duplicating the block-span rule.
func WordBlockSpan(w word.Word) Offset {
	if word.IsLiteral(w) {
		return 1
	}
	span := Offset(word.FillLength(w))
	if word.HasAbsorbedBit(w) {
		span++
	}
	return span
}

// removeAt deletes the n words starting at idx.
func removeAt(words []word.Word, idx, n int) []word.Word {
	copy(words[idx:], words[idx+n:])
	return words[:len(words)-n]
}

// spliceAt replaces the removeCount words starting at idx with ins.
// Used only on the rare mid-stream split/materialize paths (case 4,
// and case 5's materialize and length-overflow branches); the
// steady-state append path
// uses growbuf.Grow instead, keeping the same fast-path/slow-path
// split as the steady-state append path.
func spliceAt(words []word.Word, idx, removeCount int, ins ...word.Word) []word.Word {
	tail := append([]word.Word(nil), words[idx+removeCount:]...)
	words = append(words[:idx], ins...)
	words = append(words, tail...)
	return words
}

// mergeForward merges words[idx] into words[idx+1] when words[idx] is
// a fill with P=0 (canonical form rule 3: "a fill with P=0 followed
// by another fill absorbs into the second by summing lengths"). The
// merged word keeps words[idx+1]'s position. No-op if the merge would
// overflow MaxFillLength, or either word isn't eligible.
func mergeForward(words []word.Word, idx int) []word.Word {
	if idx < 0 || idx+1 >= len(words) {
		return words
	}
	a, b := words[idx], words[idx+1]
	if !word.IsFill(a) || word.FillPosition(a) != 0 || !word.IsFill(b) {
		return words
	}
	combined := word.FillLength(a) + word.FillLength(b)
	if combined > word.MaxFillLength {
		return words
	}
	pos := -1
	if word.HasAbsorbedBit(b) {
		pos = word.AbsorbedBitIndex(b)
	}
	merged, err := word.MakeFill(combined, pos)
	if err != nil {
		return words
	}
	words[idx] = merged
	return removeAt(words, idx+1, 1)
}

// appendFillWord appends w to the tail of words, then applies rule 3
// against whatever was previously at the tail.
func appendFillWord(words []word.Word, w word.Word) []word.Word {
	words = growbuf.Grow(words, 1)
	words[len(words)-1] = w
	if len(words) >= 2 {
		words = mergeForward(words, len(words)-2)
	}
	return words
}

// AppendFill appends a fill describing length clean blocks, with pos
// (0..30, or -1 for none) absorbed into the final block. Runs longer
// than word.MaxFillLength are chained into multiple fill words per
// a run longer than a single fill word can hold; only the last
// chunk carries pos. Exported so lib/planner's output emission can
// reuse the exact same tail-coalescing rules.
func AppendFill(words []word.Word, length Offset, pos int) ([]word.Word, error) {
	for length > Offset(word.MaxFillLength) {
		w, err := word.MakeFill(word.MaxFillLength, -1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		words = appendFillWord(words, w)
		length -= Offset(word.MaxFillLength)
	}
	w, err := word.MakeFill(word.Word(length), pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return appendFillWord(words, w), nil
}

// AppendLiteral appends a literal word, folding it into the
// preceding fill when canonical form rules 4/5 apply: an all-zero
// literal extends a preceding P=0 fill's run by one block, and a
// single-set-bit literal becomes that fill's absorbed position.
// Exported for the same reason as AppendFill.
func AppendLiteral(words []word.Word, w word.Word) []word.Word {
	n := len(words)
	if n > 0 {
		prev := words[n-1]
		if word.IsFill(prev) && word.FillPosition(prev) == 0 {
			if word.IsZeroLiteral(w) && word.FillLength(prev) < word.MaxFillLength {
				merged, err := word.MakeFill(word.FillLength(prev)+1, -1)
				if err == nil {
					words[n-1] = merged
					return words
				}
			} else if idx, ok := word.SingleBitIndex(w); ok {
				words[n-1] = word.SetFillPosition(prev, idx)
				return words
			}
		}
	}
	return growAndSet(words, w)
}

func growAndSet(words []word.Word, w word.Word) []word.Word {
	words = growbuf.Grow(words, 1)
	words[len(words)-1] = w
	return words
}
