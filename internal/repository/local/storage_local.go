package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage writes uploads to a directory on disk. The HTTP layer serves the
// directory under /files, so returned URLs are relative paths.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Upload(_ context.Context, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	dest := filepath.Join(s.dir, filepath.Clean("/"+objectName))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(dest)
		return "", err
	}
	rel, err := filepath.Rel(s.dir, dest)
	if err != nil {
		return "", err
	}
	return "/files/" + filepath.ToSlash(rel), nil
}
