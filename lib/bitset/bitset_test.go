package bitset

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/deepakm/cbitset-go/lib/word"
)

func TestEmptyBitset(t *testing.T) {
	b := New(DefaultConfig())
	if b.Count() != 0 {
		t.Errorf("expected count 0, got %d", b.Count())
	}
	if b.Min() != 0 || b.Max() != 0 {
		t.Errorf("expected min=max=0 on empty bitset, got min=%d max=%d", b.Min(), b.Max())
	}
	if got, err := b.Set(5, false); err != nil || got {
		t.Errorf("Set(5,false) on empty bitset should return (false,nil), got (%v,%v)", got, err)
	}
	if len(b.words) != 0 {
		t.Errorf("Set(o,false) on an empty bitset must not allocate, got %d words", len(b.words))
	}
}

// Scenario 1: single bit across a block boundary.
func TestSingleBitAcrossBlockBoundary(t *testing.T) {
	b := New(DefaultConfig())
	old, err := b.Set(31, true)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if old {
		t.Errorf("expected previous value false")
	}
	if b.Count() != 1 {
		t.Errorf("expected count 1, got %d", b.Count())
	}
	if !b.Get(31) {
		t.Errorf("expected Get(31)=true")
	}
	if b.Get(30) {
		t.Errorf("expected Get(30)=false")
	}
	if b.Min() != 31 || b.Max() != 31 {
		t.Errorf("expected min=max=31, got min=%d max=%d", b.Min(), b.Max())
	}
	if len(b.words) != 1 {
		t.Fatalf("expected a single encoded word, got %d", len(b.words))
	}
	w := b.words[0]
	if !word.IsFill(w) || word.FillLength(w) != 1 || word.AbsorbedBitIndex(w) != 0 {
		t.Errorf("expected fill L=1 P=1, got word=%#x", uint32(w))
	}
}

// Scenario 2: fill partition.
func TestFillPartition(t *testing.T) {
	fw, err := word.MakeFill(2, -1)
	if err != nil {
		t.Fatalf("MakeFill failed: %v", err)
	}
	b := &Bitset{words: []word.Word{fw}, cfg: DefaultConfig()}

	if _, err := b.Set(32, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !b.Get(32) {
		t.Errorf("expected Get(32)=true")
	}
	if len(b.words) != 2 {
		t.Fatalf("expected 2 words after split, got %d", len(b.words))
	}
	if !word.IsFill(b.words[0]) || word.FillLength(b.words[0]) != 1 || word.HasAbsorbedBit(b.words[0]) {
		t.Errorf("expected head fill L=1 P=0, got %#x", uint32(b.words[0]))
	}
	if !word.IsLiteral(b.words[1]) {
		t.Errorf("expected a literal tail word")
	}
	idx, ok := word.SingleBitIndex(b.words[1])
	if !ok || idx != 1 {
		t.Errorf("expected literal with only bit index 1 set, got %#x", uint32(b.words[1]))
	}
}

func TestSetReturnsOldValueAndRoundTrips(t *testing.T) {
	b := New(DefaultConfig())
	for _, o := range []Offset{0, 1, 30, 31, 61, 62, 1000} {
		old, err := b.Set(o, true)
		if err != nil {
			t.Fatalf("Set(%d,true) failed: %v", o, err)
		}
		if old {
			t.Errorf("Set(%d,true): expected old=false", o)
		}
		if !b.Get(o) {
			t.Errorf("Get(%d) after Set(true) should be true", o)
		}
		old, err = b.Set(o, false)
		if err != nil {
			t.Fatalf("Set(%d,false) failed: %v", o, err)
		}
		if !old {
			t.Errorf("Set(%d,false): expected old=true", o)
		}
		if b.Get(o) {
			t.Errorf("Get(%d) after Set(false) should be false", o)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := New(DefaultConfig())
	b.Set(100, true)
	c := b.Copy()
	if c.Count() != b.Count() {
		t.Fatalf("copy count mismatch")
	}
	b.Set(200, true)
	if c.Get(200) {
		t.Errorf("mutating the original must not affect the copy")
	}
}

func TestBufferRoundTrip(t *testing.T) {
	b := New(DefaultConfig())
	for _, o := range []Offset{3, 1000, 1001, 1100} {
		b.Set(o, true)
	}
	buf := b.Bytes()
	if len(buf) != b.Length() {
		t.Fatalf("Length() mismatch: got %d want %d", b.Length(), len(buf))
	}
	c, err := NewBuffer(buf, DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if c.Count() != b.Count() {
		t.Errorf("round-tripped count mismatch: got %d want %d", c.Count(), b.Count())
	}
	for _, o := range []Offset{3, 1000, 1001, 1100} {
		if !c.Get(o) {
			t.Errorf("round-tripped bitset missing offset %d", o)
		}
	}
	if c.Checksum() != b.Checksum() {
		t.Errorf("round-tripped checksum mismatch")
	}
}

func TestNewBufferRejectsBadLength(t *testing.T) {
	if _, err := NewBuffer([]byte{1, 2, 3}, DefaultConfig()); err == nil {
		t.Errorf("expected error for a buffer length not a multiple of 4")
	}
}

func TestNewBufferRejectsColoredFill(t *testing.T) {
	w, err := word.MakeFill(5, -1)
	if err != nil {
		t.Fatalf("MakeFill failed: %v", err)
	}
	w |= word.ColorBit
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(w))
	if _, err := NewBuffer(buf, DefaultConfig()); !errors.Is(err, word.ErrColoredFill) {
		t.Errorf("expected word.ErrColoredFill, got %v", err)
	}
}

func TestNewFromBitsOutOfOrder(t *testing.T) {
	offsets := []Offset{500, 3, 1000, 4}
	b, err := NewFromBits(offsets, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromBits failed: %v", err)
	}
	if b.Count() != Offset(len(offsets)) {
		t.Errorf("expected count %d, got %d", len(offsets), b.Count())
	}
	for _, o := range offsets {
		if !b.Get(o) {
			t.Errorf("missing offset %d", o)
		}
	}
}

func TestSparse64Bit(t *testing.T) {
	cfg := Config{OffsetWidth64: true}
	b := New(cfg)
	if _, err := b.Set(1, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	far := Offset(1_000_000_000_000)
	if _, err := b.Set(far, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if b.Count() != 2 {
		t.Errorf("expected count 2, got %d", b.Count())
	}
	if !b.Get(1) || !b.Get(far) {
		t.Errorf("expected both offsets readable")
	}
	if len(b.words) < 2 {
		t.Errorf("expected a chain of fill words bridging the gap, got %d words", len(b.words))
	}
}

// Property-based: random set(o,v) sequences must agree with a naive
// sorted-offset reference.
func TestRandomAgreesWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := New(DefaultConfig())
	ref := make(map[Offset]bool)

	for i := 0; i < 1000; i++ {
		o := Offset(rng.Intn(1_000_000))
		v := rng.Intn(2) == 1
		old, err := b.Set(o, v)
		if err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if old != ref[o] {
			t.Fatalf("Set(%d,%v) returned old=%v, reference old=%v", o, v, old, ref[o])
		}
		ref[o] = v
	}

	var wantCount Offset
	var offsets []int
	for o, v := range ref {
		if v {
			wantCount++
			offsets = append(offsets, int(o))
		}
	}
	if b.Count() != wantCount {
		t.Fatalf("count mismatch: got %d want %d", b.Count(), wantCount)
	}
	for o, v := range ref {
		if b.Get(o) != v {
			t.Fatalf("Get(%d) = %v, want %v", o, b.Get(o), v)
		}
	}
	if len(offsets) > 0 {
		sort.Ints(offsets)
		if b.Min() != Offset(offsets[0]) {
			t.Fatalf("Min mismatch: got %d want %d", b.Min(), offsets[0])
		}
		if b.Max() != Offset(offsets[len(offsets)-1]) {
			t.Fatalf("Max mismatch: got %d want %d", b.Max(), offsets[len(offsets)-1])
		}
	}
}
