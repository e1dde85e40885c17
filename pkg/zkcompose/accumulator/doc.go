// Package accumulator implements a universal pairing-based accumulator over
// BLS12-381 in the style of Vitto and Biryukov.
//
// For a set Y and secret key α the accumulator value is
//
//	V = Π_{y ∈ Y} (y + α) · P
//
// A membership witness for y ∈ Y is C = V / (y + α). A non-membership witness
// for y ∉ Y is (C, d) with d = Π_{y' ∈ Y} (y' − y) ≠ 0 and C = (V − d·P) / (y + α).
// Both are checked with one pairing equation against the public key Q = α·P̃.
//
// The Accumulator type is the manager's view and holds α; holders and
// verifiers only need Params, PublicKey and the current Value.
package accumulator
