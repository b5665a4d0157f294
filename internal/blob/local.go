package blob

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// PublicPrefix is the URL prefix under which local files are served.
const PublicPrefix = "/images/"

// LocalStore writes images into a directory on disk.
type LocalStore struct {
	Dir      string
	MaxBytes int64
}

func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &LocalStore{Dir: dir, MaxBytes: maxBytes}, nil
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := Validate(contentType, int64(len(data)), s.MaxBytes); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file := NewName(name)
	if err := os.WriteFile(filepath.Join(s.Dir, file), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(PublicPrefix, file), nil
}
