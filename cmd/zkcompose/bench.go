package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare compressed and plain vector opening proofs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBench(cmd)
		},
	}
	f := cmd.Flags()
	f.Int("iterations", 10, "proofs per configuration")
	f.IntSlice("sizes", []int{4, 16, 64}, "vector lengths")
	f.String("curve", "bls12-381", "bls12-381 or secp256k1")
	f.Bool("progress", true, "show a progress bar")
	_ = a.v.BindPFlag("bench.iterations", f.Lookup("iterations"))
	_ = a.v.BindPFlag("bench.sizes", f.Lookup("sizes"))
	_ = a.v.BindPFlag("bench.curve", f.Lookup("curve"))
	_ = a.v.BindPFlag("bench.progress", f.Lookup("progress"))
	return cmd
}

func parseCurve(s string) (curve.Curve, error) {
	switch strings.ToLower(s) {
	case "bls12-381", "bls12381", "bls":
		return curve.BLS12381, nil
	case "secp256k1", "secp":
		return curve.Secp256k1, nil
	default:
		return curve.Unknown, fmt.Errorf("unknown curve %q", s)
	}
}

type benchResult struct {
	kind   statement.Kind
	size   int
	bytes  int
	prove  time.Duration
	verify time.Duration
}

func (a *app) runBench(cmd *cobra.Command) error {
	cfg := a.cfg.Bench
	c, err := parseCurve(cfg.Curve)
	if err != nil {
		return err
	}
	kinds := []statement.Kind{statement.KindPedersenCommitment, statement.KindCompressedVectorOpening}

	total := int64(len(cfg.Sizes) * len(kinds) * cfg.Iterations)
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("proving"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		bar = progressbar.DefaultSilent(total)
	}

	var results []benchResult
	for _, n := range cfg.Sizes {
		for _, kind := range kinds {
			r, err := a.benchOne(cmd.Context(), c, kind, n, cfg.Iterations, bar)
			if err != nil {
				return err
			}
			results = append(results, r)
			a.zap.Info("bench",
				zap.Stringer("kind", kind),
				zap.Int("size", n),
				zap.Int("bytes", r.bytes),
				zap.Duration("prove", r.prove),
				zap.Duration("verify", r.verify),
			)
		}
	}
	_ = bar.Finish()
	renderBench(cmd.OutOrStdout(), c, results)
	return nil
}

func (a *app) benchOne(ctx context.Context, c curve.Curve, kind statement.Kind, n, iterations int, bar *progressbar.ProgressBar) (benchResult, error) {
	bases := make([]curve.Point, n)
	for i := range bases {
		var err error
		if bases[i], err = curve.HashToPoint(c, []byte("zkcompose-cli-bench"), []byte(fmt.Sprint(i))); err != nil {
			return benchResult{}, err
		}
	}

	res := benchResult{kind: kind, size: n}
	for it := 0; it < iterations; it++ {
		x := make([]curve.Scalar, n)
		for i := range x {
			var err error
			if x[i], err = curve.RandomScalar(c, rand.Reader); err != nil {
				return benchResult{}, err
			}
		}
		commitment := curve.MultiScalarMul(bases, x)

		var (
			st statement.Statement
			w  statement.Witness
		)
		switch kind {
		case statement.KindCompressedVectorOpening:
			st = &statement.CompressedVectorOpening{Bases: bases, Commitment: commitment}
			w = &statement.CompressedVectorWitness{Openings: x}
		default:
			st = &statement.PedersenCommitment{Bases: bases, Commitment: commitment}
			w = &statement.PedersenWitness{Openings: x}
		}
		spec, err := zkcompose.NewProofSpec([]statement.Statement{st}, nil, []byte("zkcompose-cli-bench"))
		if err != nil {
			return benchResult{}, err
		}

		start := time.Now()
		proof, err := a.engine.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: []statement.Witness{w}})
		if err != nil {
			return benchResult{}, fmt.Errorf("prove %s n=%d: %w", kind, n, err)
		}
		res.prove += time.Since(start)

		start = time.Now()
		if err := a.engine.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof}); err != nil {
			return benchResult{}, fmt.Errorf("verify %s n=%d: %w", kind, n, err)
		}
		res.verify += time.Since(start)
		res.bytes = proof.Size()
		w.Zeroize()
		_ = bar.Add(1)
	}
	res.prove /= time.Duration(iterations)
	res.verify /= time.Duration(iterations)
	return res, nil
}

func renderBench(w io.Writer, c curve.Curve, results []benchResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("vector openings on %s", c)
	t.AppendHeader(table.Row{"size", "kind", "proof bytes", "prove", "verify"})
	for _, r := range results {
		t.AppendRow(table.Row{r.size, r.kind, r.bytes, r.prove.Round(time.Microsecond), r.verify.Round(time.Microsecond)})
	}
	t.Render()
}
