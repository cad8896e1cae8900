// Package types defines the shared data model for hallmark.
//
// The central type is BitVector, the reference vector that fingerprints a
// candidate function's behavior over a sampled input stream. Its packed
// representation is a compatibility contract: bits are stored MSB-first
// within each byte, bytes in vector order, trailing pad bits zero. The
// packed form carries no metadata — the (seed, item length) agreement that
// gives a vector meaning travels out of band (see Fingerprint).
package types

import (
	"encoding/hex"
	"fmt"
)

// BitVector is an immutable ordered sequence of bits.
//
// The zero value is the empty vector. Position i holds the bit extracted
// from stream index i; the vector's length is the number of indices
// sampled, independent of the stream's item length.
type BitVector struct {
	packed []byte
	n      int
}

// FromBits builds a BitVector from an ordered bit slice.
func FromBits(bits []bool) BitVector {
	packed := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			packed[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return BitVector{packed: packed, n: len(bits)}
}

// FromPacked builds a BitVector of length n from packed bytes.
// The packed slice must be exactly ceil(n/8) bytes with zero pad bits.
func FromPacked(packed []byte, n int) (BitVector, error) {
	if n < 0 {
		return BitVector{}, fmt.Errorf("negative bit count %d", n)
	}
	want := (n + 7) / 8
	if len(packed) != want {
		return BitVector{}, fmt.Errorf("packed length %d, want %d bytes for %d bits", len(packed), want, n)
	}
	if pad := uint(want*8 - n); pad > 0 {
		if packed[want-1]&(1<<pad-1) != 0 {
			return BitVector{}, fmt.Errorf("nonzero pad bits in packed vector")
		}
	}
	cp := make([]byte, len(packed))
	copy(cp, packed)
	return BitVector{packed: cp, n: n}, nil
}

// ParseHex parses the packed hexadecimal form of a vector of length n.
func ParseHex(s string, n int) (BitVector, error) {
	packed, err := hex.DecodeString(s)
	if err != nil {
		return BitVector{}, fmt.Errorf("invalid vector hex: %w", err)
	}
	return FromPacked(packed, n)
}

// Len returns the number of bits in the vector.
func (v BitVector) Len() int { return v.n }

// Bit returns the bit at position i. Panics if i is out of range,
// mirroring slice indexing.
func (v BitVector) Bit(i int) bool {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("types: bit index %d out of range [0,%d)", i, v.n))
	}
	return v.packed[i/8]&(1<<(7-uint(i%8))) != 0
}

// Bools returns the vector as an ordered bit slice.
func (v BitVector) Bools() []bool {
	bits := make([]bool, v.n)
	for i := range bits {
		bits[i] = v.Bit(i)
	}
	return bits
}

// Bytes returns a copy of the packed representation (ceil(n/8) bytes).
func (v BitVector) Bytes() []byte {
	cp := make([]byte, len(v.packed))
	copy(cp, v.packed)
	return cp
}

// Hex returns the packed hexadecimal form.
func (v BitVector) Hex() string {
	return hex.EncodeToString(v.packed)
}

// Equal reports whether two vectors have identical length and bits.
func (v BitVector) Equal(o BitVector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.packed {
		if v.packed[i] != o.packed[i] {
			return false
		}
	}
	return true
}

// String renders the vector as a bit string, e.g. "10110".
func (v BitVector) String() string {
	buf := make([]byte, v.n)
	for i := 0; i < v.n; i++ {
		if v.Bit(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
