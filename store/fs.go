package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSBackend stores records as files under a root directory.
type FSBackend struct {
	root string
}

// NewFSBackend creates a filesystem backend rooted at dir, creating the
// directory if needed.
func NewFSBackend(dir string) (*FSBackend, error) {
	if dir == "" {
		return nil, &StoreError{Kind: ErrInvalidName, Op: "init", Path: dir, Err: fmt.Errorf("empty root directory")}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrapOpError(err, "init", dir)
	}
	return &FSBackend{root: dir}, nil
}

// Put implements Backend. Records are written atomically via a temp file
// rename so a crashed write never leaves a truncated record behind.
func (b *FSBackend) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.resolve(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.root, ".tmp-*")
	if err != nil {
		return wrapOpError(err, "save", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return wrapOpError(err, "save", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return wrapOpError(err, "save", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return wrapOpError(err, "save", path)
	}
	return nil
}

// Get implements Backend.
func (b *FSBackend) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapOpError(err, "load", path)
	}
	return data, nil
}

// resolve validates name and joins it under the root. Separators and parent
// references are rejected so records cannot escape the root.
func (b *FSBackend) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return "", &StoreError{Kind: ErrInvalidName, Op: "resolve", Path: name, Err: fmt.Errorf("name must be a bare filename")}
	}
	return filepath.Join(b.root, name), nil
}
