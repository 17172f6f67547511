package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the serialized archive in a single local JSON file,
// for single-host deployments without Redis.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file-backed archive store.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Read loads the serialized archive; a missing file means no store yet.
func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("archive/file: read %s: %w", b.path, err)
	}
	return data, nil
}

// Write replaces the serialized archive. The write goes through a temp
// file and rename so a crash never leaves a half-written store.
func (b *FileBackend) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".saved_invoices-*")
	if err != nil {
		return fmt.Errorf("archive/file: temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("archive/file: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("archive/file: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("archive/file: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("archive/file: rename: %w", err)
	}
	return nil
}
