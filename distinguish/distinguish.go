// Package distinguish finds the minimum reference-vector length at which a
// set of candidate functions produce pairwise distinct vectors.
//
// Vectors are extended one bit at a time, so candidates are evaluated at
// most once per stream index regardless of how many lengths are probed.
package distinguish

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pithecene-io/hallmark/log"
	"github.com/pithecene-io/hallmark/refvec"
	"github.com/pithecene-io/hallmark/types"
)

// DefaultCeiling bounds the search when the caller does not set one.
const DefaultCeiling = 4096

var (
	// ErrNotDistinguishable indicates the candidates still collide at the
	// search ceiling. Behaviorally identical candidates always hit this.
	ErrNotDistinguishable = errors.New("candidates not distinguishable within ceiling")

	// ErrNoCandidates indicates an empty candidate set.
	ErrNoCandidates = errors.New("no candidates given")

	// ErrDuplicateName indicates two candidates sharing a name.
	ErrDuplicateName = errors.New("duplicate candidate name")
)

// Candidate is a named function under analysis.
type Candidate struct {
	Name string
	Fn   refvec.Evaluator
}

// Config configures an analysis run.
type Config struct {
	// Seed and ItemLength define the stream all candidates are probed on.
	Seed       []byte
	ItemLength int
	// Ceiling bounds the vector lengths tried. Zero selects DefaultCeiling.
	Ceiling int
	// Logger receives per-extension progress logs. Nil disables logging.
	Logger *log.Logger
}

// Report is the analysis result.
type Report struct {
	// MinLength is the smallest vector length with pairwise distinct vectors.
	MinLength int
	// Vectors holds each candidate's vector at MinLength, keyed by name.
	Vectors map[string]types.BitVector
}

// Run searches lengths 1..ceiling for the smallest at which every pair of
// candidates differs in at least one position. Candidate names must be
// unique; they key the report.
func Run(ctx context.Context, cfg Config, candidates []Candidate) (*Report, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = true
	}
	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	bits := make([][]bool, len(candidates))
	for n := 1; n <= ceiling; n++ {
		for ci, c := range candidates {
			bit, err := refvec.ProbeBit(ctx, cfg.Seed, cfg.ItemLength, c.Fn, uint64(n-1))
			if err != nil {
				return nil, fmt.Errorf("candidate %q: %w", c.Name, err)
			}
			bits[ci] = append(bits[ci], bit)
		}
		if !pairwiseDistinct(bits) {
			continue
		}
		if cfg.Logger != nil {
			cfg.Logger.Debug("candidates separated", map[string]any{"length": n})
		}
		vectors := make(map[string]types.BitVector, len(candidates))
		for ci, c := range candidates {
			vectors[c.Name] = types.FromBits(bits[ci])
		}
		return &Report{MinLength: n, Vectors: vectors}, nil
	}
	return nil, fmt.Errorf("%w: ceiling %d", ErrNotDistinguishable, ceiling)
}

// pairwiseDistinct reports whether no two bit slices are equal. All slices
// share the same length by construction, so packed-hex keys suffice.
func pairwiseDistinct(bits [][]bool) bool {
	if len(bits) == 1 {
		return true
	}
	keys := make(map[string]bool, len(bits))
	for _, b := range bits {
		key := types.FromBits(b).Hex()
		if keys[key] {
			return false
		}
		keys[key] = true
	}
	return true
}

// Names returns the candidate names in sorted order, for stable rendering.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}
