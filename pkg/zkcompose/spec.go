package zkcompose

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

// WitnessRef names one witness slot: slot Slot of statement Statement.
type WitnessRef struct {
	Statement int
	Slot      int
}

func (r WitnessRef) less(o WitnessRef) bool {
	if r.Statement != o.Statement {
		return r.Statement < o.Statement
	}
	return r.Slot < o.Slot
}

// EqualWitnesses is a set of slots asserted to hold the same secret value.
type EqualWitnesses []WitnessRef

// Link builds an equality class from refs. Duplicates collapse.
func Link(refs ...WitnessRef) EqualWitnesses {
	return EqualWitnesses(refs).normalize()
}

func (c EqualWitnesses) normalize() EqualWitnesses {
	out := append(EqualWitnesses(nil), c...)
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	n := 0
	for i, r := range out {
		if i > 0 && r == out[n-1] {
			continue
		}
		out[n] = r
		n++
	}
	return out[:n]
}

// ProofSpec is the public description shared by prover and verifier: the
// ordered statements, the equality classes over their witness slots and a
// context string bound into the challenge.
//
// A ProofSpec is immutable once built. The statements themselves are held by
// reference and must not be modified afterwards.
type ProofSpec struct {
	statements []statement.Statement
	classes    []EqualWitnesses
	context    []byte
	// linked[i] maps a slot of statement i to the index of its class.
	linked []map[int]int
}

// NewProofSpec validates and normalizes a ProofSpec. Every inconsistency is
// reported as ErrMalformed.
func NewProofSpec(statements []statement.Statement, classes []EqualWitnesses, context []byte) (*ProofSpec, error) {
	if len(statements) == 0 {
		return nil, malformed("no statements")
	}
	for i, st := range statements {
		if st == nil {
			return nil, malformed("statement %d is nil", i)
		}
		if err := st.Validate(); err != nil {
			return nil, &MalformedError{Reason: "statement " + strconv.Itoa(i), Err: err}
		}
	}

	s := &ProofSpec{
		statements: append([]statement.Statement(nil), statements...),
		classes:    make([]EqualWitnesses, len(classes)),
		context:    bytes.Clone(context),
		linked:     make([]map[int]int, len(statements)),
	}
	for i := range s.linked {
		s.linked[i] = map[int]int{}
	}

	for ci, class := range classes {
		class = class.normalize()
		if len(class) < 2 {
			return nil, malformed("class %d has fewer than two distinct members", ci)
		}
		for _, ref := range class {
			if ref.Statement < 0 || ref.Statement >= len(statements) {
				return nil, malformed("class %d references statement %d of %d", ci, ref.Statement, len(statements))
			}
		}
		domain := statements[class[0].Statement].Curve()
		for _, ref := range class {
			st := statements[ref.Statement]
			if !st.IsSlot(ref.Slot) {
				return nil, malformed("class %d references slot %d, not a witness slot of statement %d (%s)", ci, ref.Slot, ref.Statement, st.Kind())
			}
			if st.Curve() != domain {
				return nil, malformed("class %d spans %s and %s", ci, domain, st.Curve())
			}
			if prev, dup := s.linked[ref.Statement][ref.Slot]; dup {
				return nil, malformed("classes %d and %d overlap at statement %d slot %d", prev, ci, ref.Statement, ref.Slot)
			}
			s.linked[ref.Statement][ref.Slot] = ci
		}
		s.classes[ci] = class
	}
	return s, nil
}

// Statements returns the statements in proof order.
func (s *ProofSpec) Statements() []statement.Statement {
	return append([]statement.Statement(nil), s.statements...)
}

// Len returns the number of statements.
func (s *ProofSpec) Len() int {
	return len(s.statements)
}

// Classes returns the normalized equality classes.
func (s *ProofSpec) Classes() []EqualWitnesses {
	out := make([]EqualWitnesses, len(s.classes))
	for i, c := range s.classes {
		out[i] = append(EqualWitnesses(nil), c...)
	}
	return out
}

// Context returns a copy of the context bytes.
func (s *ProofSpec) Context() []byte {
	return bytes.Clone(s.context)
}

// LinkedSlots returns, in increasing order, the slots of statement i that
// belong to some equality class.
func (s *ProofSpec) LinkedSlots(i int) []int {
	if i < 0 || i >= len(s.linked) {
		return nil
	}
	out := make([]int, 0, len(s.linked[i]))
	for slot := range s.linked[i] {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}
