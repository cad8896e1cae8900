package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// StreamMeta identifies a stream traversal for logging and metrics.
// The raw seed is never logged; SeedDigest is a short SHA-256 prefix
// sufficient to correlate log lines from the same stream.
type StreamMeta struct {
	// SeedDigest is the first 8 hex characters of SHA-256(seed).
	SeedDigest string
	// ItemLength is the stream item length in bytes (k).
	ItemLength int
	// Evaluator is the candidate function name, when known.
	Evaluator string
}

// NewStreamMeta builds stream identity metadata from the seed and item length.
func NewStreamMeta(seed []byte, itemLength int, evaluator string) *StreamMeta {
	sum := sha256.Sum256(seed)
	return &StreamMeta{
		SeedDigest: hex.EncodeToString(sum[:4]),
		ItemLength: itemLength,
		Evaluator:  evaluator,
	}
}
