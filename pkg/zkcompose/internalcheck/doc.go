// Package internalcheck holds static policy tests over the library source.
//
// The tests load every package under pkg/zkcompose with go/packages and fail
// on patterns that tend to leak secrets or timing: hex formatting verbs in
// format strings, == on byte slices or arrays, and math/rand in non-test
// code. It has no exported API.
package internalcheck
