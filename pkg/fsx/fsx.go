// Package fsx abstracts the blob storage exports are written to.
package fsx

import (
	"context"
	"io"
)

type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

type FileSystem interface {
	FileReader
	FileWriter
	Exists(ctx context.Context, path string) (bool, error)
	// Location describes where path lives, e.g. an absolute file path or an s3:// URI.
	Location(path string) string
}
