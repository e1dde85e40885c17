package zkcompose

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/logging"
)

// DefaultDomain separates this engine's transcripts from any other protocol.
const DefaultDomain = "zkcompose/v1"

// Config holds the engine's tunables. The zero value is usable.
type Config struct {
	// Logger receives session-shape records at Debug and rejections at Warn.
	// Nil binds to slog.Default().
	Logger logging.Logger

	// Workers bounds how many statements are initialized or verified at
	// once. Zero means GOMAXPROCS; one runs sequentially.
	Workers int

	// Domain is the transcript domain separator. Prover and verifier must
	// agree on it. Empty means DefaultDomain.
	Domain string
}

// Engine proves and verifies composed statements. An Engine holds no
// per-session state and is safe for concurrent use.
type Engine struct {
	log     logging.Logger
	workers int
	domain  string
}

// New returns an Engine configured by cfg.
func New(cfg Config) *Engine {
	e := &Engine{log: cfg.Logger, workers: cfg.Workers, domain: cfg.Domain}
	if e.log == nil {
		e.log = logging.New(nil)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.domain == "" {
		e.domain = DefaultDomain
	}
	return e
}

var defaultEngine = sync.OnceValue(func() *Engine { return New(Config{}) })

// Prove runs the default engine's Prove.
func Prove(ctx context.Context, params *ProveParams) (*Proof, error) {
	return defaultEngine().Prove(ctx, params)
}

// Verify runs the default engine's Verify.
func Verify(ctx context.Context, params *VerifyParams) error {
	return defaultEngine().Verify(ctx, params)
}

// forEach calls fn for every index in [0, n) on at most workers goroutines.
// A failing index does not stop the others, so the returned index is always
// the lowest one that failed. It returns -1 and the context error if ctx is
// done before every index ran.
func (e *Engine) forEach(ctx context.Context, n int, fn func(i int) error) (int, error) {
	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = fn(i)
			return nil
		})
	}
	cerr := g.Wait()
	for i, err := range errs {
		if err != nil {
			return i, err
		}
	}
	if cerr != nil {
		return -1, cerr
	}
	return -1, nil
}
