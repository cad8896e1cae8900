package types

import (
	"errors"
	"fmt"
	"time"
)

// FingerprintFormatVersion is the semantic version of the stored
// fingerprint record format.
const FingerprintFormatVersion = "0.1.0"

// Fingerprint is the stored/communicated artifact pairing a reference
// vector with the out-of-band stream agreement that gives it meaning.
// All fields use msgpack tags to match the wire format.
//
// The packed vector itself never embeds seed or item length; Fingerprint
// is the carrier for that agreement when both sides want it in one record.
type Fingerprint struct {
	// FormatVersion is the semantic version of the record format.
	FormatVersion string `msgpack:"format_version" json:"format_version" yaml:"format_version"`
	// Seed is the stream seed. May be empty (a valid, fixed stream).
	Seed []byte `msgpack:"seed" json:"seed" yaml:"seed"`
	// ItemLength is the stream item length in bytes (k).
	ItemLength int `msgpack:"item_length" json:"item_length" yaml:"item_length"`
	// Bits is the vector length in bits (n).
	Bits int `msgpack:"bits" json:"bits" yaml:"bits"`
	// Vector is the packed reference vector, ceil(Bits/8) bytes.
	Vector []byte `msgpack:"vector" json:"vector" yaml:"vector"`
	// Evaluator is the name of the candidate function, when known.
	Evaluator string `msgpack:"evaluator,omitempty" json:"evaluator,omitempty" yaml:"evaluator,omitempty"`
	// CreatedAt is the record creation timestamp in ISO 8601 UTC format.
	CreatedAt string `msgpack:"created_at" json:"created_at" yaml:"created_at"`
}

// NewFingerprint builds a Fingerprint record for the given stream
// agreement and reference vector.
func NewFingerprint(seed []byte, itemLength int, evaluator string, vec BitVector) *Fingerprint {
	seedCopy := make([]byte, len(seed))
	copy(seedCopy, seed)
	return &Fingerprint{
		FormatVersion: FingerprintFormatVersion,
		Seed:          seedCopy,
		ItemLength:    itemLength,
		Bits:          vec.Len(),
		Vector:        vec.Bytes(),
		Evaluator:     evaluator,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// BitVector reconstructs the reference vector from the packed fields.
func (f *Fingerprint) BitVector() (BitVector, error) {
	return FromPacked(f.Vector, f.Bits)
}

// Validate checks structural invariants of the record.
func (f *Fingerprint) Validate() error {
	if f.FormatVersion == "" {
		return errors.New("missing format_version")
	}
	if f.ItemLength <= 0 {
		return fmt.Errorf("item_length must be positive, got %d", f.ItemLength)
	}
	if f.Bits <= 0 {
		return fmt.Errorf("bits must be positive, got %d", f.Bits)
	}
	if _, err := f.BitVector(); err != nil {
		return fmt.Errorf("invalid vector: %w", err)
	}
	return nil
}
