// AngelaMos | 2026
// storage.go

// Package storage keeps uploaded document blobs, one directory per bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/carterperez-dev/foodhall/internal/core"
)

const (
	BucketContracts       = "contracts"
	BucketAdminDocuments  = "admin-documents"
	BucketVendorDocuments = "vendor-documents"
)

var Buckets = []string{BucketContracts, BucketAdminDocuments, BucketVendorDocuments}

type Store interface {
	Put(ctx context.Context, bucket, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, key string) error
}

// Filesystem stores blobs under a root directory. All access goes through
// an os.Root so keys cannot escape it.
type Filesystem struct {
	root *os.Root
}

func NewFilesystem(dir string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}

	for _, bucket := range Buckets {
		if err := root.Mkdir(bucket, 0o750); err != nil && !errors.Is(err, fs.ErrExist) {
			_ = root.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Put(
	ctx context.Context,
	bucket, key string,
	r io.Reader,
) (int64, error) {
	name, err := objectPath(bucket, key)
	if err != nil {
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dst, err := f.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("put %s: %w", name, core.ErrDuplicateKey)
		}
		return 0, fmt.Errorf("put %s: %w", name, err)
	}

	written, copyErr := io.Copy(dst, r)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = f.root.Remove(name) //nolint:errcheck // partial blob
		return 0, fmt.Errorf("put %s: %w", name, err)
	}

	return written, nil
}

func (f *Filesystem) Open(
	_ context.Context,
	bucket, key string,
) (io.ReadCloser, error) {
	name, err := objectPath(bucket, key)
	if err != nil {
		return nil, err
	}

	file, err := f.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", name, core.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	return file, nil
}

func (f *Filesystem) Delete(_ context.Context, bucket, key string) error {
	name, err := objectPath(bucket, key)
	if err != nil {
		return err
	}

	if err := f.root.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", name, core.ErrNotFound)
		}
		return fmt.Errorf("delete %s: %w", name, err)
	}

	return nil
}

func (f *Filesystem) Close() error {
	return f.root.Close()
}

func IsBucket(bucket string) bool {
	return slices.Contains(Buckets, bucket)
}

// objectPath validates bucket and key and joins them. Keys are flat names.
func objectPath(bucket, key string) (string, error) {
	if !IsBucket(bucket) {
		return "", fmt.Errorf("unknown bucket %q: %w", bucket, core.ErrInvalidInput)
	}

	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("invalid object key %q: %w", key, core.ErrInvalidInput)
	}

	return filepath.Join(bucket, key), nil
}

// SafeName reduces an uploaded file name to a key-safe form.
func SafeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
