package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

type FileStorage interface {
	// Put writes the content under path, replacing any previous file
	Put(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at path. Returns ErrNotFound when missing.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; missing files are not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
