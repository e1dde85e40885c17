// Package statement defines the closed set of facts the proof engine can
// prove and the secret witnesses that satisfy them.
//
// A Statement carries only public data; a Witness carries the secrets. Both
// are sealed interfaces: the variant set is fixed by this package and every
// consumer dispatches with an exhaustive type switch.
//
// Witness values are addressed by slot. Slot numbering is per kind:
//
//	DiscreteLog               0 = x
//	PedersenCommitment        i = x_i
//	BBSSignature              i = message i, except revealed indices
//	AccumulatorMembership     0 = element
//	AccumulatorNonMembership  0 = element
//	VerifiableEncryption      0 = message, 1 = randomness
//	CompressedVectorOpening   i = x_i
//
// Equality constraints refer to (statement index, slot) pairs, so only slots
// reported by IsSlot can be linked.
package statement
