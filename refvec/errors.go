// Package refvec implements reference-vector generation and confirmation.
//
// This file defines the engine's error taxonomy. Structural failures carry
// the offending stream index and support errors.Is/errors.As for typed
// assertions; confirmation mismatches are ordinary data and never surface
// as errors.
package refvec

import (
	"errors"
	"fmt"
)

// Sentinel errors for argument validation.
var (
	// ErrInvalidCount indicates a non-positive vector length request.
	ErrInvalidCount = errors.New("bit count must be positive")

	// ErrEmptyVector indicates a confirmation against a zero-length
	// reference vector, which samples no indices.
	ErrEmptyVector = errors.New("reference vector is empty")
)

// EvalError reports a candidate function failure at a specific stream index.
// Generation and confirmation fail fast on the first EvalError; partial
// vectors are discarded, never returned truncated.
type EvalError struct {
	// Index is the stream index whose item the candidate rejected.
	Index uint64
	// Err is the underlying evaluator error.
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// DegenerateOutputError reports a zero-length candidate output at a
// specific stream index. With no output bits, no extraction position
// exists, so the traversal cannot continue.
type DegenerateOutputError struct {
	// Index is the stream index that produced the empty output.
	Index uint64
}

func (e *DegenerateOutputError) Error() string {
	return fmt.Sprintf("item %d: candidate produced empty output, no bit position exists", e.Index)
}
