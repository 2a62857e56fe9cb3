package fsxlocal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileSystem stores blobs under a base directory on the local disk.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates the base directory if it does not exist.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create base path: %w", err)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

// resolve maps a key to a path inside basePath, rejecting traversal.
func (l *LocalFileSystem) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(l.basePath, clean), nil
}

func (l *LocalFileSystem) Write(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (l *LocalFileSystem) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (l *LocalFileSystem) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (l *LocalFileSystem) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
