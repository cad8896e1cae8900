package refvec

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pithecene-io/hallmark/log"
	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/stream"
	"github.com/pithecene-io/hallmark/types"
)

// Config configures an Engine.
type Config struct {
	// Workers is the number of concurrent evaluation workers.
	// Zero or one selects sequential traversal. Index order of the
	// assembled vector is preserved either way.
	Workers int
	// Metrics receives traversal counters. Nil disables collection.
	Metrics *metrics.Collector
	// Logger receives traversal progress logs. Nil disables logging.
	Logger *log.Logger
}

// Engine drives reference-vector generation and confirmation over the
// deterministic stream. An Engine is stateless between calls and safe for
// concurrent use.
type Engine struct {
	workers int
	metrics *metrics.Collector
	logger  *log.Logger
}

// NewEngine creates an engine from the given configuration.
func NewEngine(cfg Config) *Engine {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		workers: workers,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Generate builds the length-n reference vector of candidate f over the
// stream defined by (seed, k). Position i of the result holds the bit of
// f(item(i)) at position i mod (8 * len(output)), MSB-first.
//
// Fails fast on the first structural error: an evaluator failure or empty
// output aborts the traversal and the partial vector is discarded.
func (e *Engine) Generate(ctx context.Context, seed []byte, k int, f Evaluator, n int) (types.BitVector, error) {
	if n <= 0 {
		return types.BitVector{}, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if _, err := stream.New(seed, k); err != nil {
		return types.BitVector{}, err
	}

	e.logDebug("generating reference vector", map[string]any{"bits": n, "workers": e.workers})

	bits, err := e.traverse(ctx, seed, k, f, n)
	if err != nil {
		return types.BitVector{}, err
	}
	return types.FromBits(bits), nil
}

// Confirm re-derives the stream defined by (seed, k), extracts candidate
// f's bit per index exactly as Generate does, and compares each against
// the supplied reference vector. Position i of the result is true iff the
// extracted bit equals ref bit i.
//
// Mismatches are data, not errors; only structural failures (evaluator
// error, empty output, invalid arguments) return an error.
func (e *Engine) Confirm(ctx context.Context, seed []byte, k int, f Evaluator, ref types.BitVector) ([]bool, error) {
	n := ref.Len()
	if n == 0 {
		return nil, ErrEmptyVector
	}
	if _, err := stream.New(seed, k); err != nil {
		return nil, err
	}

	e.logDebug("confirming against reference vector", map[string]any{"bits": n, "workers": e.workers})

	bits, err := e.traverse(ctx, seed, k, f, n)
	if err != nil {
		return nil, err
	}

	result := make([]bool, n)
	for i, bit := range bits {
		result[i] = bit == ref.Bit(i)
		if result[i] {
			e.metrics.IncBitsMatched()
		} else {
			e.metrics.IncBitsMismatched()
		}
	}
	return result, nil
}

// traverse produces the extracted bit for each index in [0, n).
// Arguments are validated by the callers.
func (e *Engine) traverse(ctx context.Context, seed []byte, k int, f Evaluator, n int) ([]bool, error) {
	if e.workers > 1 {
		return e.traverseParallel(ctx, seed, k, f, n)
	}
	return e.traverseSequential(ctx, seed, k, f, n)
}

func (e *Engine) traverseSequential(ctx context.Context, seed []byte, k int, f Evaluator, n int) ([]bool, error) {
	cur, err := stream.New(seed, k)
	if err != nil {
		return nil, err
	}

	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bit, err := e.probe(cur.Next(), f, uint64(i))
		if err != nil {
			return nil, err
		}
		bits[i] = bit
	}
	return bits, nil
}

// traverseParallel evaluates indices concurrently. Each worker writes only
// its own slot, so the assembled slice preserves index order without
// additional synchronization. The first structural error cancels the
// group; remaining workers observe the context and stop.
func (e *Engine) traverseParallel(ctx context.Context, seed []byte, k int, f Evaluator, n int) ([]bool, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := stream.Item(seed, k, uint64(i))
			if err != nil {
				return err
			}
			bit, err := e.probe(item, f, uint64(i))
			if err != nil {
				return err
			}
			bits[i] = bit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bits, nil
}

// probe applies the candidate to one item and extracts its sampled bit.
func (e *Engine) probe(item []byte, f Evaluator, i uint64) (bool, error) {
	e.metrics.IncItemsGenerated()

	out, err := f.Evaluate(item)
	e.metrics.IncEvaluations()
	if err != nil {
		e.metrics.IncEvalErrors()
		return false, &EvalError{Index: i, Err: err}
	}

	bit, err := extractBit(out, i)
	if err != nil {
		e.metrics.IncEmptyOutputs()
		return false, err
	}
	return bit, nil
}

// extractBit returns the bit of out probed at stream index i.
// The position is i mod (8 * len(out)); bits are numbered MSB-first within
// each byte, bytes in output order. Cycling the position by index means two
// functions sharing fixed prefixes or suffixes are still probed at varying
// offsets.
func extractBit(out []byte, i uint64) (bool, error) {
	if len(out) == 0 {
		return false, &DegenerateOutputError{Index: i}
	}
	pos := i % uint64(8*len(out))
	return out[pos/8]&(1<<(7-uint(pos%8))) != 0, nil
}

func (e *Engine) logDebug(message string, fields map[string]any) {
	if e.logger != nil {
		e.logger.Debug(message, fields)
	}
}

// ProbeBit extracts the single fingerprint bit of candidate f at stream
// index i, without assembling a vector. Used by incremental consumers such
// as the distinguishability analyzer.
func ProbeBit(ctx context.Context, seed []byte, k int, f Evaluator, i uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	item, err := stream.Item(seed, k, i)
	if err != nil {
		return false, err
	}

	out, err := f.Evaluate(item)
	if err != nil {
		return false, &EvalError{Index: i, Err: err}
	}
	return extractBit(out, i)
}

// Generate builds a reference vector with a default sequential engine.
func Generate(ctx context.Context, seed []byte, k int, f Evaluator, n int) (types.BitVector, error) {
	return NewEngine(Config{}).Generate(ctx, seed, k, f, n)
}

// Confirm compares a candidate against a reference vector with a default
// sequential engine.
func Confirm(ctx context.Context, seed []byte, k int, f Evaluator, ref types.BitVector) ([]bool, error) {
	return NewEngine(Config{}).Confirm(ctx, seed, k, f, ref)
}
