package fsxlocal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/fsx"
)

// LocalFileSystem stores files below a base directory.
type LocalFileSystem struct {
	basePath string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

// NewLocalFileSystem creates basePath if needed. An empty basePath is the
// working directory.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if basePath == "" {
		basePath = "."
	}
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

// resolve keeps every path inside basePath.
func (l *LocalFileSystem) resolve(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.Clean("/"+path))
	if full != l.basePath && !strings.HasPrefix(full, l.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base directory", path)
	}
	return full, nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	return l.WriteFileStream(ctx, path, bytes.NewReader(data))
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (l *LocalFileSystem) Location(path string) string {
	full, err := l.resolve(path)
	if err != nil {
		return path
	}
	return full
}
