// Package digest provides the built-in candidate function registry.
//
// Built-ins cover the common hash families plus an identity passthrough
// useful for exercising bit-position cycling. External programs are bridged
// through ExecEvaluator.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnknownEvaluator indicates a name absent from the registry.
var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Func is a named built-in candidate function. It satisfies the engine's
// evaluator contract; built-ins never fail.
type Func struct {
	name string
	fn   func([]byte) []byte
}

// Name returns the registry name.
func (f Func) Name() string { return f.name }

// Evaluate applies the function to a stream item.
func (f Func) Evaluate(input []byte) ([]byte, error) {
	return f.fn(input), nil
}

var registry = map[string]Func{
	"identity": {name: "identity", fn: func(in []byte) []byte {
		out := make([]byte, len(in))
		copy(out, in)
		return out
	}},
	"md5": {name: "md5", fn: func(in []byte) []byte {
		sum := md5.Sum(in)
		return sum[:]
	}},
	"sha1": {name: "sha1", fn: func(in []byte) []byte {
		sum := sha1.Sum(in)
		return sum[:]
	}},
	"sha256": {name: "sha256", fn: func(in []byte) []byte {
		sum := sha256.Sum256(in)
		return sum[:]
	}},
	"sha512": {name: "sha512", fn: func(in []byte) []byte {
		sum := sha512.Sum512(in)
		return sum[:]
	}},
	"sha3-256": {name: "sha3-256", fn: func(in []byte) []byte {
		sum := sha3.Sum256(in)
		return sum[:]
	}},
	"blake2b-256": {name: "blake2b-256", fn: func(in []byte) []byte {
		sum := blake2b.Sum256(in)
		return sum[:]
	}},
	"blake3": {name: "blake3", fn: func(in []byte) []byte {
		sum := blake3.Sum256(in)
		return sum[:]
	}},
}

// Lookup resolves a registry name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return Func{}, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	return f, nil
}

// Names returns all registry names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
