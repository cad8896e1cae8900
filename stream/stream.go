// Package stream implements the deterministic pseudorandom item stream.
//
// A stream turns (seed, item length k) into an unbounded, index-addressable
// sequence of k-byte pseudorandom items. Every item is a pure function of
// (seed, k, index): re-querying any index at any time yields the same bytes,
// and restarting a cursor replays the identical sequence.
//
// Expansion scheme (compatibility contract — two implementations agree on
// fingerprints only if they match this exactly):
//
//	salt(i)  = minimal-width big-endian encoding of i, empty for i = 0
//	block 0  = SHA-256(seed || salt(i))
//	block j  = SHA-256(block[j-1] || uint32be(j))   for j >= 1
//	item(i)  = first k bytes of block 0 || block 1 || ...
//
// The index salt keys each item independently; the block counter keys each
// expansion block so items longer than one digest never repeat blocks.
package stream

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidLength indicates a non-positive item length.
var ErrInvalidLength = errors.New("item length must be positive")

// Item returns the k-byte stream item at index i for the given seed.
// The seed may be empty; that is a valid, fixed deterministic stream.
func Item(seed []byte, k int, i uint64) ([]byte, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, k)
	}

	h := sha256.New()
	h.Write(seed)
	h.Write(indexSalt(i))
	block := h.Sum(nil)

	out := make([]byte, 0, ((k+sha256.Size-1)/sha256.Size)*sha256.Size)
	out = append(out, block...)

	var counter [4]byte
	for j := uint32(1); len(out) < k; j++ {
		binary.BigEndian.PutUint32(counter[:], j)
		next := sha256.New()
		next.Write(block)
		next.Write(counter[:])
		block = next.Sum(nil)
		out = append(out, block...)
	}

	return out[:k], nil
}

// indexSalt returns the minimal-width big-endian encoding of i.
// Index 0 encodes to the empty slice, so item 0 degenerates to an
// expansion of the bare seed.
func indexSalt(i uint64) []byte {
	if i == 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], i)
	j := 0
	for buf[j] == 0 {
		j++
	}
	return buf[j:]
}

// Stream is a lazy cursor over the unbounded item sequence.
//
// The cursor holds no state beyond the next index: any index remains
// independently addressable via At, and Reset rewinds to index 0. A Stream
// is not safe for concurrent use; concurrent traversals should call the
// pure Item function or use independent cursors.
type Stream struct {
	seed []byte
	k    int
	next uint64
}

// New creates a stream cursor for (seed, k), positioned at index 0.
// The seed is copied; later mutation of the caller's slice has no effect.
func New(seed []byte, k int) (*Stream, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, k)
	}
	seedCopy := make([]byte, len(seed))
	copy(seedCopy, seed)
	return &Stream{seed: seedCopy, k: k}, nil
}

// Next returns the item at the cursor position and advances the cursor.
func (s *Stream) Next() []byte {
	item := s.At(s.next)
	s.next++
	return item
}

// At returns the item at index i without moving the cursor.
func (s *Stream) At(i uint64) []byte {
	// Length was validated at construction; Item cannot fail here.
	item, err := Item(s.seed, s.k, i)
	if err != nil {
		panic(fmt.Sprintf("stream: item(%d) failed on validated stream: %v", i, err))
	}
	return item
}

// Index returns the cursor position (the index Next will produce).
func (s *Stream) Index() uint64 { return s.next }

// Reset rewinds the cursor to index 0.
func (s *Stream) Reset() { s.next = 0 }

// ItemLength returns the stream's item length in bytes.
func (s *Stream) ItemLength() int { return s.k }
