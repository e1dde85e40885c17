package zkcompose

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

// StatementProof is one statement's share of a Proof: its Kind tag, the
// adapter's first-move commitment and its response to the joint challenge.
type StatementProof struct {
	_          struct{} `cbor:",toarray"`
	Kind       statement.Kind
	Commitment []byte
	Response   []byte
}

// Proof is a composed non-interactive proof. It carries the joint challenge
// and one StatementProof per statement, in ProofSpec order. It holds no
// witness data and is safe to copy and share.
type Proof struct {
	_          struct{} `cbor:",toarray"`
	Challenge  []byte
	Statements []StatementProof
}

// proofWire has Proof's layout without its methods, so the codec does not
// dispatch back into MarshalBinary and UnmarshalBinary.
type proofWire Proof

var (
	proofEncMode cbor.EncMode
	proofDecMode cbor.DecMode
)

func init() {
	var err error
	proofEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	proofDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsForbidden,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// MarshalBinary returns the canonical encoding of p.
func (p *Proof) MarshalBinary() ([]byte, error) {
	if p == nil {
		return nil, errors.New("zkcompose: nil proof")
	}
	return proofEncMode.Marshal((*proofWire)(p))
}

// UnmarshalBinary decodes a canonical encoding into p.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var out proofWire
	if err := proofDecMode.Unmarshal(data, &out); err != nil {
		return &MalformedError{Reason: "proof encoding", Err: err}
	}
	again, err := proofEncMode.Marshal(&out)
	if err != nil {
		return &MalformedError{Reason: "proof encoding", Err: err}
	}
	if !bytes.Equal(again, data) {
		return malformed("proof encoding is not canonical")
	}
	*p = Proof(out)
	return nil
}

// UnmarshalProof decodes a proof produced by MarshalBinary. Non-canonical
// encodings and trailing bytes are rejected.
func UnmarshalProof(data []byte) (*Proof, error) {
	p := new(Proof)
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Clone returns a deep copy of p.
func (p *Proof) Clone() *Proof {
	if p == nil {
		return nil
	}
	out := &Proof{
		Challenge:  bytes.Clone(p.Challenge),
		Statements: make([]StatementProof, len(p.Statements)),
	}
	for i, sp := range p.Statements {
		out.Statements[i] = StatementProof{
			Kind:       sp.Kind,
			Commitment: bytes.Clone(sp.Commitment),
			Response:   bytes.Clone(sp.Response),
		}
	}
	return out
}

// Size returns the total number of commitment and response bytes.
func (p *Proof) Size() int {
	n := len(p.Challenge)
	for _, sp := range p.Statements {
		n += len(sp.Commitment) + len(sp.Response)
	}
	return n
}

func (p *Proof) String() string {
	if p == nil {
		return "Proof(nil)"
	}
	return fmt.Sprintf("Proof(statements=%d, bytes=%d)", len(p.Statements), p.Size())
}
