package accumulator

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

const paramsDST = "ZKCOMPOSE-VB-ACCUMULATOR-PARAMS-V1"

var (
	// ErrAlreadyMember is returned when adding an element twice.
	ErrAlreadyMember = errors.New("accumulator: element already accumulated")
	// ErrNotMember is returned when removing or proving membership of an
	// element that is not accumulated.
	ErrNotMember = errors.New("accumulator: element not accumulated")
	// ErrInvalidWitness is returned when a witness fails verification.
	ErrInvalidWitness = errors.New("accumulator: invalid witness")
	// ErrDegenerateElement is returned for the single element y = -α.
	ErrDegenerateElement = errors.New("accumulator: degenerate element")
	// ErrNilParams is returned when no parameters are supplied.
	ErrNilParams = errors.New("accumulator: nil params")
)

// Params are the public generators P ∈ G1 and P̃ ∈ G2.
type Params struct {
	P  curve.Point
	P2 curve.G2Point
}

// NewParams derives parameters from label.
func NewParams(label []byte) (*Params, error) {
	p, err := curve.HashToPoint(curve.BLS12381, []byte(paramsDST), append(append([]byte(nil), label...), " : P"...))
	if err != nil {
		return nil, err
	}
	p2, err := curve.HashToG2([]byte(paramsDST), append(append([]byte(nil), label...), " : P_tilde"...))
	if err != nil {
		return nil, err
	}
	return &Params{P: p, P2: p2}, nil
}

// IsValid reports whether neither generator is the identity.
func (p *Params) IsValid() bool {
	return p != nil && p.P.Curve() == curve.BLS12381 && !p.P.IsIdentity() && !p.P2.IsIdentity()
}

// Bytes returns P ‖ P̃.
func (p *Params) Bytes() []byte {
	return append(p.P.Bytes(), p.P2.Bytes()...)
}

// SecretKey is the manager's trapdoor α.
type SecretKey struct {
	alpha curve.Scalar
}

// Zeroize clears the key.
func (sk *SecretKey) Zeroize() {
	if sk != nil {
		sk.alpha.Zeroize()
	}
}

// PublicKey is Q = α·P̃.
type PublicKey struct {
	Q curve.G2Point
}

// IsValid reports whether the key is not the identity.
func (pk *PublicKey) IsValid() bool {
	return pk != nil && !pk.Q.IsIdentity()
}

// Bytes returns the compressed encoding of Q.
func (pk *PublicKey) Bytes() []byte {
	return pk.Q.Bytes()
}

// Keypair bundles the manager's keys.
type Keypair struct {
	SecretKey *SecretKey
	PublicKey *PublicKey
}

// GenerateKeypair draws a fresh trapdoor.
func GenerateKeypair(rng io.Reader, params *Params) (*Keypair, error) {
	if params == nil {
		return nil, ErrNilParams
	}
	alpha, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, err
	}
	return &Keypair{
		SecretKey: &SecretKey{alpha: alpha},
		PublicKey: &PublicKey{Q: params.P2.Mul(alpha)},
	}, nil
}

// Accumulator is a manager-side accumulator over BLS12-381 scalars. It is
// safe for concurrent use.
type Accumulator struct {
	params *Params
	sk     *SecretKey
	pk     *PublicKey

	mu      sync.RWMutex
	value   curve.Point
	members map[string]curve.Scalar
}

// New creates an empty accumulator with value P.
func New(params *Params, kp *Keypair) (*Accumulator, error) {
	if params == nil || kp == nil || kp.SecretKey == nil || kp.PublicKey == nil {
		return nil, ErrNilParams
	}
	if !params.IsValid() {
		return nil, errors.New("accumulator: invalid params")
	}
	return &Accumulator{
		params:  params,
		sk:      kp.SecretKey,
		pk:      kp.PublicKey,
		value:   params.P,
		members: make(map[string]curve.Scalar),
	}, nil
}

// Value returns the current accumulator value.
func (a *Accumulator) Value() curve.Point {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// PublicKey returns the manager's public key.
func (a *Accumulator) PublicKey() *PublicKey {
	return a.pk
}

// Size returns the number of accumulated elements.
func (a *Accumulator) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

// Contains reports whether y is accumulated.
func (a *Accumulator) Contains(y curve.Scalar) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.members[string(y.Bytes())]
	return ok
}

// Add accumulates y: V ← (y + α)·V.
func (a *Accumulator) Add(y curve.Scalar) error {
	if err := checkElement(y); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := string(y.Bytes())
	if _, ok := a.members[key]; ok {
		return ErrAlreadyMember
	}
	f := y.Add(a.sk.alpha)
	defer f.Zeroize()
	if f.IsZero() {
		return ErrDegenerateElement
	}
	a.value = a.value.Mul(f)
	a.members[key] = y
	return nil
}

// Remove removes y: V ← V / (y + α).
func (a *Accumulator) Remove(y curve.Scalar) error {
	if err := checkElement(y); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := string(y.Bytes())
	if _, ok := a.members[key]; !ok {
		return ErrNotMember
	}
	inv := y.Add(a.sk.alpha).Inverse()
	defer inv.Zeroize()
	a.value = a.value.Mul(inv)
	delete(a.members, key)
	return nil
}

// MembershipWitness computes C = V / (y + α) for an accumulated y.
func (a *Accumulator) MembershipWitness(y curve.Scalar) (*MembershipWitness, error) {
	if err := checkElement(y); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, ok := a.members[string(y.Bytes())]; !ok {
		return nil, ErrNotMember
	}
	inv := y.Add(a.sk.alpha).Inverse()
	defer inv.Zeroize()
	return &MembershipWitness{C: a.value.Mul(inv)}, nil
}

// NonMembershipWitness computes (C, d) for a y that is not accumulated.
func (a *Accumulator) NonMembershipWitness(y curve.Scalar) (*NonMembershipWitness, error) {
	if err := checkElement(y); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, ok := a.members[string(y.Bytes())]; ok {
		return nil, ErrAlreadyMember
	}
	d := curve.ScalarFromUint64(curve.BLS12381, 1)
	for _, m := range a.members {
		d = d.Mul(m.Sub(y))
	}
	f := y.Add(a.sk.alpha)
	defer f.Zeroize()
	if f.IsZero() {
		return nil, ErrDegenerateElement
	}
	inv := f.Inverse()
	defer inv.Zeroize()
	c := a.value.Sub(a.params.P.Mul(d)).Mul(inv)
	return &NonMembershipWitness{C: c, D: d}, nil
}

// MembershipWitness is C with (y + α)·C = V.
type MembershipWitness struct {
	C curve.Point
}

// Zeroize clears the witness.
func (w *MembershipWitness) Zeroize() {
	if w != nil {
		w.C = curve.Identity(curve.BLS12381)
	}
}

// NonMembershipWitness is (C, d) with (y + α)·C + d·P = V and d ≠ 0.
type NonMembershipWitness struct {
	C curve.Point
	D curve.Scalar
}

// Zeroize clears the witness.
func (w *NonMembershipWitness) Zeroize() {
	if w != nil {
		w.C = curve.Identity(curve.BLS12381)
		w.D.Zeroize()
	}
}

// VerifyMembership checks e(C, y·P̃ + Q) = e(V, P̃).
func VerifyMembership(y curve.Scalar, w *MembershipWitness, value curve.Point, pk *PublicKey, params *Params) error {
	if w == nil || pk == nil || params == nil {
		return ErrNilParams
	}
	if err := checkElement(y); err != nil {
		return err
	}
	ok, err := curve.PairingCheck(
		[]curve.Point{w.C, value.Neg()},
		[]curve.G2Point{params.P2.Mul(y).Add(pk.Q), params.P2},
	)
	if err != nil {
		return fmt.Errorf("accumulator: pairing: %w", err)
	}
	if !ok {
		return ErrInvalidWitness
	}
	return nil
}

// VerifyNonMembership checks d ≠ 0 and e(C, y·P̃ + Q)·e(d·P, P̃) = e(V, P̃).
func VerifyNonMembership(y curve.Scalar, w *NonMembershipWitness, value curve.Point, pk *PublicKey, params *Params) error {
	if w == nil || pk == nil || params == nil {
		return ErrNilParams
	}
	if err := checkElement(y); err != nil {
		return err
	}
	if w.D.Curve() != curve.BLS12381 || w.D.IsZero() {
		return ErrInvalidWitness
	}
	ok, err := curve.PairingCheck(
		[]curve.Point{w.C, params.P.Mul(w.D).Sub(value)},
		[]curve.G2Point{params.P2.Mul(y).Add(pk.Q), params.P2},
	)
	if err != nil {
		return fmt.Errorf("accumulator: pairing: %w", err)
	}
	if !ok {
		return ErrInvalidWitness
	}
	return nil
}

func checkElement(y curve.Scalar) error {
	if y.Curve() != curve.BLS12381 {
		return fmt.Errorf("accumulator: element must be a %s scalar", curve.BLS12381)
	}
	return nil
}
