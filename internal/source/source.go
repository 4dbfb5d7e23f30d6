// Package source provides the places a user batch can be loaded from.
package source

import (
	"context"
	"fmt"
	"os"

	"userdir/internal/domain"
	"userdir/internal/randomuser"
)

// Source loads one batch of users
type Source interface {
	Fetch(ctx context.Context) ([]domain.User, error)
	Name() string
}

var (
	_ Source = (*randomuser.Client)(nil)
	_ Source = (*File)(nil)
)

// File reads a response envelope saved from the API (or written by hand)
type File struct {
	path string
}

// NewFile creates a file source
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return f.path }

// Path returns the file being read
func (f *File) Path() string { return f.path }

// Fetch reads and decodes the file. An envelope carrying an error field
// is reported as *randomuser.APIError, like a live API response.
func (f *File) Fetch(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer file.Close()

	env, err := randomuser.DecodeEnvelope(file)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", f.path, err)
	}
	if env.Error != "" {
		return nil, &randomuser.APIError{Message: env.Error}
	}
	if env.Results == nil {
		return []domain.User{}, nil
	}
	return env.Results, nil
}
