// Package fsys provides the storage drivers model files are read from and
// written to.
package fsys

import (
	"errors"
	"fmt"
	"io"

	"github.com/lemmego/appkit/config"
)

var ErrFileNotFound = errors.New("file not found")

// FS defines the methods that any storage system must implement.
type FS interface {
	// Read a file from storage.
	Read(path string) (io.ReadCloser, error)

	// Write a file to storage.
	Write(path string, contents []byte) error

	// Delete a file from storage.
	Delete(path string) error

	// Check if a file exists in storage.
	Exists(path string) (bool, error)
}

// Driver resolves the storage driver called name from the storage.* config.
// An empty name selects storage.disk.
func Driver(name string) (FS, error) {
	if name == "" {
		name = config.String("storage.disk", "local")
	}

	switch name {
	case "local":
		return NewLocalStorage(config.String("storage.local.path", "")), nil
	case "memory":
		return NewMemoryStorage(), nil
	case "s3":
		fs, err := NewS3Storage(
			config.String("storage.s3.bucket", ""),
			config.String("storage.s3.region", ""),
			config.String("storage.s3.key", ""),
			config.String("storage.s3.secret", ""),
			config.String("storage.s3.endpoint", ""),
		)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "gcs":
		fs, err := NewGCSStorage(config.String("storage.gcs.bucket", ""))
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", name)
	}
}

// MustDriver is like Driver but panics when the driver cannot be created
func MustDriver(name string) FS {
	fs, err := Driver(name)
	if err != nil {
		panic(err)
	}
	return fs
}

// ReadAll reads the whole file at path
func ReadAll(fs FS, path string) ([]byte, error) {
	rc, err := fs.Read(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
