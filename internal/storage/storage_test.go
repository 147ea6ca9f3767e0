// AngelaMos | 2026
// storage_test.go

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/carterperez-dev/foodhall/internal/core"
)

func newTestStore(t *testing.T) *Filesystem {
	t.Helper()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	t.Cleanup(func() { _ = fs.Close() })
	return fs
}

func TestPutOpenDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Put(ctx, BucketContracts, "lease-a1.pdf", strings.NewReader("%PDF-1.7"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != 8 {
		t.Errorf("written = %d, want 8", n)
	}

	if _, err := store.Put(ctx, BucketContracts, "lease-a1.pdf", strings.NewReader("x")); !errors.Is(err, core.ErrDuplicateKey) {
		t.Errorf("expected duplicate key, got %v", err)
	}

	rc, err := store.Open(ctx, BucketContracts, "lease-a1.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "%PDF-1.7" {
		t.Errorf("body = %q", body)
	}

	if err := store.Delete(ctx, BucketContracts, "lease-a1.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, BucketContracts, "lease-a1.pdf"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
	if _, err := store.Open(ctx, BucketContracts, "lease-a1.pdf"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("open deleted: %v", err)
	}
}

func TestRejectsUnsafeKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		bucket string
		key    string
	}{
		{"parent traversal", BucketContracts, "../escape.txt"},
		{"nested path", BucketContracts, "a/b.txt"},
		{"windows separator", BucketContracts, `..\escape.txt`},
		{"dot dot", BucketContracts, ".."},
		{"empty", BucketContracts, ""},
		{"unknown bucket", "tmp", "file.txt"},
		{"bucket traversal", "../contracts", "file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Put(ctx, tt.bucket, tt.key, strings.NewReader("x"))
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lease Agreement.pdf", "Lease_Agreement.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\mali\menu.png`, "menu.png"},
		{"สัญญา.pdf", "pdf"},
		{"...", "file"},
	}

	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
