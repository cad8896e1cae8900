// Package store persists fingerprint records on filesystem or S3 backends.
//
// This file defines sentinel errors and the classified wrapper for storage
// failures. These enable callers to use errors.Is/errors.As for typed
// assertions rather than string matching.
package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Sentinel errors for storage failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrNotFound indicates the target path/resource does not exist (ENOENT, 404).
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied indicates a permission/access failure (EACCES, 403).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCorrupt indicates a record that was read but could not be decoded
	// or failed validation.
	ErrCorrupt = errors.New("corrupt fingerprint record")

	// ErrAuth indicates authentication failure (no credentials, expired token).
	ErrAuth = errors.New("authentication failed")

	// ErrInvalidName indicates a record name unsafe for the backend.
	ErrInvalidName = errors.New("invalid record name")
)

// StoreError wraps an underlying error with storage classification.
// It preserves the original error in the chain for inspection via errors.As.
type StoreError struct {
	// Kind is the sentinel error for classification (e.g., ErrNotFound).
	Kind error
	// Op is the operation that failed (e.g., "save", "load").
	Op string
	// Path is the record path involved.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// wrapOpError classifies and wraps a backend operation error.
// Returns nil if err is nil.
func wrapOpError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Kind: classifyError(err), Op: op, Path: path, Err: err}
}

// classifyError determines the appropriate sentinel for the given error.
// Typed checks run first; message patterns cover errors the SDKs surface
// without types.
func classifyError(err error) error {
	var noKey *s3types.NoSuchKey
	var noBucket *s3types.NoSuchBucket
	switch {
	case errors.Is(err, os.ErrNotExist), errors.As(err, &noKey), errors.As(err, &noBucket):
		return ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "nosuchkey", "notfound", "404", "does not exist"):
		return ErrNotFound
	case containsAny(msg, "accessdenied", "forbidden", "403", "permission denied"):
		return ErrPermissionDenied
	case containsAny(msg, "nocredentialproviders", "credentials", "expiredtoken", "401"):
		return ErrAuth
	default:
		return errors.New("storage error")
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
