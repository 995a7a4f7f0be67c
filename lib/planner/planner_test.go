package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepakm/cbitset-go/lib/bitset"
)

func setAll(t *testing.T, offsets ...bitset.Offset) *bitset.Bitset {
	t.Helper()
	b := bitset.New(bitset.DefaultConfig())
	for _, o := range offsets {
		_, err := b.Set(o, true)
		require.NoError(t, err)
	}
	return b
}

func collect(b *bitset.Bitset, limit bitset.Offset) []bitset.Offset {
	var got []bitset.Offset
	for o := bitset.Offset(0); o < limit; o++ {
		if b.Get(o) {
			got = append(got, o)
		}
	}
	return got
}

// Scenario 3: OR fold.
func TestORFold(t *testing.T) {
	b1 := setAll(t, 100, 200, 300)
	b2 := setAll(t, 100)
	b3 := setAll(t, 300, 400)

	p := New(b1, bitset.DefaultConfig())
	p.AddBitset(OR, b2)
	p.AddBitset(OR, b3)
	result, err := p.Exec()
	require.NoError(t, err)

	require.Equal(t, bitset.Offset(4), result.Count())
	require.Equal(t, []bitset.Offset{100, 200, 300, 400}, collect(result, 500))
}

// Scenario 4: AND then ANDNOT.
func TestANDThenANDNOT(t *testing.T) {
	b1 := setAll(t, 3, 1000, 1001, 1100)
	b2 := setAll(t, 3, 130, 1000, 1101)
	b3 := setAll(t, 1000)

	p := New(b1, bitset.DefaultConfig())
	p.AddBitset(AND, b2)
	p.AddBitset(ANDNOT, b3)
	result, err := p.Exec()
	require.NoError(t, err)

	require.Equal(t, bitset.Offset(1), result.Count())
	require.Equal(t, []bitset.Offset{3}, collect(result, 2000))
}

// Scenario 5: nested planner.
func TestNestedPlanner(t *testing.T) {
	b1 := setAll(t, 100, 200, 300)
	b2 := setAll(t, 100)
	b3 := setAll(t, 300, 400)

	inner := New(b2, bitset.DefaultConfig())
	inner.AddBitset(OR, b3)

	outer := New(b1, bitset.DefaultConfig())
	outer.AddNested(AND, inner)

	result, err := outer.Exec()
	require.NoError(t, err)

	require.Equal(t, bitset.Offset(2), result.Count())
	require.Equal(t, []bitset.Offset{100, 300}, collect(result, 500))
}

func TestXorSelfIsIdentity(t *testing.T) {
	b := setAll(t, 1, 2, 3, 1000)
	p := New(b, bitset.DefaultConfig())
	p.AddBitset(XOR, b)
	result, err := p.Exec()
	require.NoError(t, err)
	require.Equal(t, bitset.Offset(0), result.Count())
}

func TestANDNOTEqualsANDNot(t *testing.T) {
	a := setAll(t, 1, 2, 3, 500, 1000)
	b := setAll(t, 2, 500)

	p1 := New(a, bitset.DefaultConfig())
	p1.AddBitset(ANDNOT, b)
	got, err := p1.Exec()
	require.NoError(t, err)

	// NOT b construed over the span of interest: every offset present
	// in a but absent from b.
	var want []bitset.Offset
	for _, o := range []bitset.Offset{1, 2, 3, 500, 1000} {
		if !b.Get(o) {
			want = append(want, o)
		}
	}
	require.Equal(t, want, collect(got, 2000))
}

func TestOrIsCommutativeAndAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomBitset := func(n int) *bitset.Bitset {
		b := bitset.New(bitset.DefaultConfig())
		for i := 0; i < n; i++ {
			_, err := b.Set(bitset.Offset(rng.Intn(5000)), true)
			require.NoError(t, err)
		}
		return b
	}

	a := randomBitset(50)
	b := randomBitset(50)
	c := randomBitset(50)

	ab, err := New(a, bitset.DefaultConfig()).AddBitset(OR, b).Exec()
	require.NoError(t, err)
	ba, err := New(b, bitset.DefaultConfig()).AddBitset(OR, a).Exec()
	require.NoError(t, err)
	require.Equal(t, collect(ab, 5000), collect(ba, 5000), "OR must be commutative")

	abc1, err := New(a, bitset.DefaultConfig()).AddBitset(OR, b).AddBitset(OR, c).Exec()
	require.NoError(t, err)
	bc, err := New(b, bitset.DefaultConfig()).AddBitset(OR, c).Exec()
	require.NoError(t, err)
	abc2, err := New(a, bitset.DefaultConfig()).AddBitset(OR, bc).Exec()
	require.NoError(t, err)
	require.Equal(t, collect(abc1, 5000), collect(abc2, 5000), "OR must be associative")
}

func TestPlannerAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ops := []Op{AND, OR, XOR, ANDNOT}
	refOps := map[Op]func(a, b bool) bool{
		AND:    func(a, b bool) bool { return a && b },
		OR:     func(a, b bool) bool { return a || b },
		XOR:    func(a, b bool) bool { return a != b },
		ANDNOT: func(a, b bool) bool { return a && !b },
	}

	const n = 2000
	for trial := 0; trial < 20; trial++ {
		refA := make([]bool, n)
		refB := make([]bool, n)
		a := bitset.New(bitset.DefaultConfig())
		b := bitset.New(bitset.DefaultConfig())
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.1 {
				refA[i] = true
				_, err := a.Set(bitset.Offset(i), true)
				require.NoError(t, err)
			}
			if rng.Float64() < 0.1 {
				refB[i] = true
				_, err := b.Set(bitset.Offset(i), true)
				require.NoError(t, err)
			}
		}
		op := ops[rng.Intn(len(ops))]
		result, err := New(a, bitset.DefaultConfig()).AddBitset(op, b).Exec()
		require.NoError(t, err)

		var wantCount bitset.Offset
		for i := 0; i < n; i++ {
			want := refOps[op](refA[i], refB[i])
			if want {
				wantCount++
			}
			require.Equalf(t, want, result.Get(bitset.Offset(i)), "op=%v i=%d", op, i)
		}
		require.Equal(t, wantCount, result.Count())
	}
}
