// Command zkcompose is a small harness around the proof engine: it prints
// the version, runs a composed demo proof and benchmarks vector openings.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
