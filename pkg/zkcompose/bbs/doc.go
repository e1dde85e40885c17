// Package bbs implements BBS+ signatures over BLS12-381 with signatures in G1
// and public keys in G2.
//
// A signature on messages m_1..m_n under secret key x is (A, e, s) with
//
//	A = (g1 + h0·s + Σ h_i·m_i) / (e + x)
//
// and verifies when e(A, w + e·g2) = e(g1 + h0·s + Σ h_i·m_i, g2), w = x·g2.
//
// The package covers parameter setup, key generation, signing and
// verification. Proving knowledge of a signature while hiding some messages
// is done through the proof engine with a signature statement.
package bbs
