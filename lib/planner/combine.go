package planner

import (
	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/word"
)

// combine walks a and b in lockstep over logical blocks and folds
// them with op into a freshly materialized, canonical output bitset.
func combine(cfg bitset.Config, a, b *bitset.Bitset, op Op) (*bitset.Bitset, error) {
	ca := newCursor(a)
	cb := newCursor(b)
	var out []word.Word

	for !(ca.atEnd() && cb.atEnd()) {
		sa := ca.nextSegment()
		sb := cb.nextSegment()
		run := sa.length
		if sb.length < run {
			run = sb.length
		}

		if run > 1 {
			// A multi-block stable run is only possible when both
			// operands are clean for the whole run, so the folded
			// result is clean zero regardless of op.
			words, err := bitset.AppendFill(out, run, -1)
			if err != nil {
				return nil, err
			}
			out = words
		} else {
			result := applyOp(op, sa.value, sb.value)
			if result == 0 {
				words, err := bitset.AppendFill(out, 1, -1)
				if err != nil {
					return nil, err
				}
				out = words
			} else {
				out = bitset.AppendLiteral(out, result)
			}
		}

		ca.advance(run)
		cb.advance(run)
	}

	// Canonical form rule 1: trailing fills that carry no set bit are
	// dropped.
	for n := len(out); n > 0 && word.IsFill(out[n-1]) && !word.HasAbsorbedBit(out[n-1]); n-- {
		out = out[:n-1]
	}

	return bitset.FromWords(out, cfg), nil
}

// applyOp computes a single 31-bit block result for one of the four
// boolean operators.
func applyOp(op Op, a, b word.Word) word.Word {
	switch op {
	case OR:
		return a | b
	case AND:
		return a & b
	case XOR:
		return a ^ b
	case ANDNOT:
		return a &^ b
	default:
		return 0
	}
}
