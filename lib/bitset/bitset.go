package bitset

import (
	"github.com/deepakm/cbitset-go/lib/word"
)

// Bitset owns a dynamically sized ordered sequence of encoded words.
// Its zero value is not usable; construct with New,
// NewBuffer, or NewFromBits.
type Bitset struct {
	words []word.Word
	cfg   Config
}

// New returns an empty bitset (length 0).
func New(cfg Config) *Bitset {
	return &Bitset{cfg: cfg}
}

// Config returns the bitset's construction-time configuration.
func (b *Bitset) Config() Config {
	return b.cfg
}

// FromWords wraps an already-canonical word stream as a Bitset.
// Exported for lib/planner, whose execution engine assembles an
// output word stream directly via AppendFill/AppendLiteral and hands
// it back as a plain Bitset rather than replaying Set calls.
func FromWords(words []word.Word, cfg Config) *Bitset {
	return &Bitset{words: words, cfg: cfg}
}

// location describes where a logical block falls in the word stream.
type location struct {
	idx        int    // index of the covering word, or len(words) past end
	blockStart Offset // logical block index the covering word begins at
	span       Offset // block span of the covering word (0 past end)
}

// locate walks the word stream accumulating a logical block cursor
// and returns the word covering block, or a past-end location if the
// stream doesn't reach that far.
func (b *Bitset) locate(block Offset) location {
	var blk Offset
	for i, w := range b.words {
		span := WordBlockSpan(w)
		if block < blk+span {
			return location{idx: i, blockStart: blk, span: span}
		}
		blk += span
	}
	return location{idx: len(b.words), blockStart: blk, span: 0}
}

// Get returns the bit at logical offset o. Total function: never
// fails, returns false past the defined length.
func (b *Bitset) Get(o Offset) bool {
	block := o / word.LiteralPayload
	inOff := int(o % word.LiteralPayload)
	loc := b.locate(block)
	if loc.idx == len(b.words) {
		return false
	}
	w := b.words[loc.idx]
	if word.IsLiteral(w) {
		return w&word.LiteralForBit(inOff) != 0
	}
	local := block - loc.blockStart
	L := Offset(word.FillLength(w))
	if local < L {
		return false // clean span
	}
	// local == L: the absorbed block
	return word.HasAbsorbedBit(w) && inOff == word.AbsorbedBitIndex(w)
}

// Unset is Set(o, false).
func (b *Bitset) Unset(o Offset) (bool, error) {
	return b.Set(o, false)
}

// Set writes v at logical offset o and returns the previous value.
// Restores canonical form in the neighborhood of the mutation before
// returning.
func (b *Bitset) Set(o Offset, v bool) (bool, error) {
	if err := b.checkOffset(o); err != nil {
		return false, err
	}
	block := o / word.LiteralPayload
	inOff := int(o % word.LiteralPayload)
	loc := b.locate(block)

	if loc.idx == len(b.words) {
		return b.setPastEnd(loc.blockStart, block, inOff, v)
	}

	w := b.words[loc.idx]
	if word.IsLiteral(w) {
		return b.setInLiteral(loc.idx, inOff, v)
	}

	local := block - loc.blockStart
	L := Offset(word.FillLength(w))
	if local < L {
		if !v {
			return false, nil // case 3: clean span, already false
		}
		return b.splitFillClean(loc.idx, local, inOff)
	}
	// local == L: absorbed block
	return b.setAbsorbed(loc.idx, inOff, v)
}

func (b *Bitset) checkOffset(o Offset) error {
	if !b.cfg.OffsetWidth64 && o > MaxOffset32 {
		return ErrOverflow
	}
	return nil
}

// setPastEnd implements case 1: the cursor never reached o.
func (b *Bitset) setPastEnd(blockStart, block Offset, inOff int, v bool) (bool, error) {
	if !v {
		return false, nil
	}
	gap := block - blockStart
	words, err := AppendFill(b.words, gap, inOff)
	if err != nil {
		return false, err
	}
	b.words = words
	return false, nil
}

// setInLiteral implements case 2: mutating a bit inside a literal
// word, then folding the result into a preceding P=0 fill if the
// literal became all-zero or single-bit.
func (b *Bitset) setInLiteral(idx int, inOff int, v bool) (bool, error) {
	w := b.words[idx]
	bit := word.LiteralForBit(inOff)
	old := w&bit != 0
	if v {
		w |= bit
	} else {
		w &^= bit
	}
	b.words[idx] = w

	if idx == len(b.words)-1 && word.IsZeroLiteral(w) {
		// Canonical form rule 1: a tail literal cleared to zero carries
		// no information, and neither does any empty word before it.
		b.words = b.words[:idx]
		for n := len(b.words); n > 0; n = len(b.words) {
			last := b.words[n-1]
			if (word.IsFill(last) && word.HasAbsorbedBit(last)) || (word.IsLiteral(last) && !word.IsZeroLiteral(last)) {
				break
			}
			b.words = b.words[:n-1]
		}
		return old, nil
	}

	if idx == 0 {
		return old, nil
	}
	prev := b.words[idx-1]
	if !word.IsFill(prev) || word.FillPosition(prev) != 0 {
		return old, nil
	}
	if word.IsZeroLiteral(w) {
		if word.FillLength(prev) < word.MaxFillLength {
			merged, err := word.MakeFill(word.FillLength(prev)+1, -1)
			if err != nil {
				return old, err
			}
			b.words[idx-1] = merged
			b.words = removeAt(b.words, idx, 1)
			b.words = mergeForward(b.words, idx-1)
		}
	} else if bitIdx, ok := word.SingleBitIndex(w); ok {
		b.words[idx-1] = word.SetFillPosition(prev, bitIdx)
		b.words = removeAt(b.words, idx, 1)
	}
	return old, nil
}

// splitFillClean implements case 4: setting a true bit somewhere in a
// fill's clean span, splitting it into a head fill (absorbing the new
// bit) and a tail fill covering the rest of the run, which keeps the
// original fill's absorbed bit.
func (b *Bitset) splitFillClean(idx int, local Offset, inOff int) (bool, error) {
	w := b.words[idx]
	L := Offset(word.FillLength(w))
	tailLen := L - local - 1
	tailPos := -1
	if word.HasAbsorbedBit(w) {
		tailPos = word.AbsorbedBitIndex(w)
	}

	replacement := make([]word.Word, 0, 2)
	if local == 0 && idx > 0 && word.IsFill(b.words[idx-1]) && word.FillPosition(b.words[idx-1]) == 0 {
		// Degenerate head (k=0): fold the absorbed bit into the
		// preceding P=0 fill instead of emitting a new zero-length
		// fill word.
		b.words[idx-1] = word.SetFillPosition(b.words[idx-1], inOff)
	} else {
		headWord, err := word.MakeFill(word.Word(local), inOff)
		if err != nil {
			return false, err
		}
		replacement = append(replacement, headWord)
	}

	if tailLen > 0 || tailPos >= 0 {
		tailWord, err := word.MakeFill(word.Word(tailLen), tailPos)
		if err != nil {
			return false, err
		}
		replacement = append(replacement, tailWord)
	}

	b.words = spliceAt(b.words, idx, 1, replacement...)

	if tailLen > 0 {
		mergeIdx := idx + len(replacement) - 1
		b.words = mergeForward(b.words, mergeIdx)
	}
	return false, nil
}

// setAbsorbed implements case 5: mutating the single bit a fill
// absorbs in the block immediately following its clean run.
func (b *Bitset) setAbsorbed(idx int, inOff int, v bool) (bool, error) {
	w := b.words[idx]
	pos := word.AbsorbedBitIndex(w)

	if v {
		if inOff == pos {
			return true, nil // already set, no change
		}
		// The absorbed block already has one bit; materialize it as
		// a literal carrying both, and leave the fill's position
		// cleared (the literal now owns that block).
		lit := word.LiteralForBit(pos) | word.LiteralForBit(inOff)
		if word.FillLength(w) == 0 {
			// No clean run to keep: the literal replaces the fill
			// rather than leaving an empty L=0 P=0 fill (rule 2).
			b.words[idx] = lit
			return false, nil
		}
		b.words[idx] = word.ClearFillPosition(w)
		b.words = spliceAt(b.words, idx+1, 0, lit)
		return false, nil
	}

	if inOff != pos {
		return false, nil
	}

	// Clearing the absorbed bit turns it back into a clean block. If
	// this fill is the last word, that clean block (and the run
	// before it) trails off to infinity and carries no information:
	// canonical form rule 1 forbids a trailing P=0 fill, so the whole
	// word is dropped instead of kept as a now-larger clean run.
	if idx == len(b.words)-1 {
		b.words = b.words[:idx]
		return true, nil
	}

	newLen := Offset(word.FillLength(w)) + 1
	if newLen <= Offset(word.MaxFillLength) {
		merged, err := word.MakeFill(word.Word(newLen), -1)
		if err != nil {
			return false, err
		}
		b.words[idx] = merged
		b.words = mergeForward(b.words, idx)
		return true, nil
	}

	// newLen overflows a single fill word: keep the original run
	// length, clear its position, and splice in a standalone 1-block
	// clean fill, which may itself merge forward.
	b.words[idx] = word.ClearFillPosition(w)
	zero, err := word.MakeFill(1, -1)
	if err != nil {
		return false, err
	}
	b.words = spliceAt(b.words, idx+1, 0, zero)
	b.words = mergeForward(b.words, idx+1)
	return true, nil
}

// Clear resets the bitset to empty, preserving allocated capacity.
func (b *Bitset) Clear() {
	b.words = b.words[:0]
}

// Copy returns a new bitset with an identical, independent word
// stream.
func (b *Bitset) Copy() *Bitset {
	words := make([]word.Word, len(b.words))
	copy(words, b.words)
	return &Bitset{words: words, cfg: b.cfg}
}

// Words returns the bitset's raw encoded word stream. Callers must
// not mutate the returned slice; use Copy to obtain an independent
// one.
func (b *Bitset) Words() []word.Word {
	return b.words
}
