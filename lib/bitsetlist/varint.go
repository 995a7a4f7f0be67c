package bitsetlist

import (
	"fmt"

	"github.com/deepakm/cbitset-go/lib/bitset"
)

// MaxVarintValue is the largest value the 2-bit-prefixed varint can
// hold (2^30 - 1, the 4-byte form's range).
const MaxVarintValue = 1<<30 - 1

// EncodeVarint encodes value in the shortest of the four forms: a
// 2-bit byte-count prefix (00/01/10/11 for 1/2/3/4 bytes) followed by
// the value's high bits in the remainder of the first byte and its
// low bits across the following bytes, big-endian. This is the list
// buffer's length/offset encoding, distinct from LEB128.
func EncodeVarint(value uint32) ([]byte, error) {
	if value > MaxVarintValue {
		return nil, fmt.Errorf("bitsetlist: varint value %d exceeds %d: %w", value, MaxVarintValue, bitset.ErrInvalidArgument)
	}
	var n int
	switch {
	case value < 1<<6:
		n = 1
	case value < 1<<14:
		n = 2
	case value < 1<<22:
		n = 3
	default:
		n = 4
	}
	totalBits := uint(n * 8)
	combined := (uint32(n-1) << (totalBits - 2)) | value
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(combined)
		combined >>= 8
	}
	return buf, nil
}

// DecodeVarint reads one varint from the head of buf, returning its
// value and the number of bytes consumed.
func DecodeVarint(buf []byte) (value uint32, consumed int, err error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("bitsetlist: DecodeVarint: empty buffer: %w", bitset.ErrInvalidArgument)
	}
	n := int(buf[0]>>6) + 1
	if len(buf) < n {
		return 0, 0, fmt.Errorf("bitsetlist: DecodeVarint: need %d bytes, have %d: %w", n, len(buf), bitset.ErrInvalidArgument)
	}
	var combined uint32
	for i := 0; i < n; i++ {
		combined = combined<<8 | uint32(buf[i])
	}
	mask := uint32(1)<<(uint(n*8)-2) - 1
	return combined & mask, n, nil
}
