// Package bitset implements the compressed, word-aligned hybrid
// run-length bitset: random-access get/set/unset, population
// counting, min/max, copy, and buffer serialization, all directly
// over the compressed word stream without a decompression step.
//
// The growable word array and its exponential-doubling growth goes
// through lib/growbuf so lib/bitsetlist can share the same strategy
// for its own byte buffer.
package bitset

import "errors"

// Offset is a logical bit offset into a bitset. The type is always
// 64-bit internally; Config.OffsetWidth64 controls validation only
// (offsets are rejected once they would not fit a 32-bit offset
// space), not storage width — the encoded word representation never
// changes: the only effect is that more successive max-length fills
// may be required to reach far-distant offsets.
type Offset = uint64

// OOMPolicy selects how an allocation failure is reported. No code in
// this module reads it: allocation goes through Go's make/append,
// whose failure the Go runtime handles, so both policies behave the
// same.
type OOMPolicy int

const (
	// OOMPropagate names reporting allocation failure as an error.
	OOMPropagate OOMPolicy = iota
	// OOMAbort names the reference C implementation's abort-on-OOM
	// behavior.
	OOMAbort
)

// Config carries the construction-time options: offset width and
// OOM policy. The zero Config is the default: 32-bit
// offsets, propagate-on-OOM.
type Config struct {
	OffsetWidth64 bool
	OOMPolicy     OOMPolicy
}

// DefaultConfig returns the reference's default configuration.
func DefaultConfig() Config {
	return Config{OffsetWidth64: false, OOMPolicy: OOMPropagate}
}

// MaxOffset32 is the largest offset representable with 32-bit
// offsets (2^32 - 1).
const MaxOffset32 Offset = 1<<32 - 1

// Errors matching this module's three failure kinds.
var (
	// ErrInvalidArgument marks a precondition violation: a malformed
	// buffer, an out-of-order list push, or a fill length that was not
	// split before reaching the word codec.
	ErrInvalidArgument = errors.New("bitset: invalid argument")

	// ErrOverflow marks offset arithmetic that overflows the
	// configured offset width.
	ErrOverflow = errors.New("bitset: offset overflow")

	// ErrOutOfMemory is the out-of-memory failure kind. No function in
	// this module returns it; see DESIGN.md.
	ErrOutOfMemory = errors.New("bitset: out of memory")
)
