// Package sigma implements the sub-protocol adapters the proof engine drives,
// one per statement kind.
//
// Every adapter follows the same three-move shape:
//
//	Init       prover commits to blindings and auxiliary values
//	Respond    prover answers the shared challenge c
//	Verify     verifier checks the relation and reports slot responses
//
// Linear adapters answer with z = b + c·w for every witness variable. Two
// statements that use the same blinding b for equal witnesses therefore
// produce equal responses, which is how the engine checks equality across
// statements without learning the witness.
//
// Blindings for linked slots are injected by the caller through Init; all
// other randomness is drawn from the supplied reader.
package sigma
