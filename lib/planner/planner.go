// Package planner builds a DAG of boolean steps over bitsets and
// executes it by walking every operand's word stream in lockstep,
// without ever decompressing into a bit array.
//
// An internal node (*Planner) carries a primary operand plus a
// left-folded sequence of (operand, operator) steps: an operand is
// either a borrowed bitset leaf or a nested planner, expressed as a
// plain Go interface rather than a tagged pointer union.
package planner

import "github.com/deepakm/cbitset-go/lib/bitset"

// Op is a boolean combining operator.
type Op int

const (
	OR Op = iota
	AND
	XOR
	ANDNOT
)

func (op Op) String() string {
	switch op {
	case OR:
		return "OR"
	case AND:
		return "AND"
	case XOR:
		return "XOR"
	case ANDNOT:
		return "ANDNOT"
	default:
		return "UNKNOWN"
	}
}

// Operand is either a borrowed *bitset.Bitset leaf or a nested
// *Planner, resolved to a concrete bitset when a step executes.
type Operand interface {
	resolve() (*bitset.Bitset, error)
}

// Of wraps a borrowed bitset reference as a planner Operand. The
// planner never mutates or owns it; the bitset must not be mutated
// for the planner's lifetime.
func Of(b *bitset.Bitset) Operand {
	return bitsetOperand{b}
}

type bitsetOperand struct {
	b *bitset.Bitset
}

func (o bitsetOperand) resolve() (*bitset.Bitset, error) {
	return o.b, nil
}

// resolve lets a *Planner itself serve as a nested Operand,
// evaluating eagerly when the enclosing step runs.
func (p *Planner) resolve() (*bitset.Bitset, error) {
	return p.Exec()
}

type step struct {
	operand Operand
	op      Op
}

// Planner assembles a left-folded boolean expression over bitsets.
// The zero value is not usable; construct with New.
type Planner struct {
	primary *bitset.Bitset
	steps   []step
	cfg     bitset.Config
}

// New constructs a planner whose first (primary) operand is primary.
// A nil primary is treated as an empty bitset under cfg.
func New(primary *bitset.Bitset, cfg bitset.Config) *Planner {
	return &Planner{primary: primary, cfg: cfg}
}

// Add appends a step combining operand into the running result via
// op. Returns the planner for chaining.
func (p *Planner) Add(op Op, operand Operand) *Planner {
	p.steps = append(p.steps, step{operand: operand, op: op})
	return p
}

// AddBitset is a convenience for Add(op, Of(b)).
func (p *Planner) AddBitset(op Op, b *bitset.Bitset) *Planner {
	return p.Add(op, Of(b))
}

// AddNested is a convenience for Add(op, nested).
func (p *Planner) AddNested(op Op, nested *Planner) *Planner {
	return p.Add(op, nested)
}

// Exec executes the left-fold and returns a newly materialized
// bitset: result0 = primary; resulti = resulti-1 <opi> operandi.
func (p *Planner) Exec() (*bitset.Bitset, error) {
	result := p.primary
	if result == nil {
		result = bitset.New(p.cfg)
	} else if len(p.steps) == 0 {
		result = result.Copy()
	}
	for _, st := range p.steps {
		operand, err := st.operand.resolve()
		if err != nil {
			return nil, err
		}
		combined, err := combine(p.cfg, result, operand, st.op)
		if err != nil {
			return nil, err
		}
		result = combined
	}
	return result, nil
}

// Count executes the planner and returns the result's population
// count. This implementation materializes rather than counting
// directly during the walk: the lockstep walk already produces a
// canonical word stream at roughly the cost of counting it in place,
// and callers rarely need only the count without ever inspecting the
// bitset.
func (p *Planner) Count() (bitset.Offset, error) {
	result, err := p.Exec()
	if err != nil {
		return 0, err
	}
	return result.Count(), nil
}
