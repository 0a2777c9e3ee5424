package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage stores files below RootDirectory. Absolute paths are used as is.
type LocalStorage struct {
	RootDirectory string
}

func NewLocalStorage(basePath string) *LocalStorage {
	if basePath == "" {
		var err error
		basePath, err = os.Getwd()
		if err != nil {
			panic(err)
		}
	}

	return &LocalStorage{
		RootDirectory: basePath,
	}
}

func (ls *LocalStorage) fullPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ls.RootDirectory, path)
}

func (ls *LocalStorage) Read(path string) (io.ReadCloser, error) {
	f, err := os.Open(ls.fullPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return f, nil
}

func (ls *LocalStorage) Write(path string, contents []byte) error {
	fullPath := ls.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	return os.WriteFile(fullPath, contents, 0644)
}

func (ls *LocalStorage) Delete(path string) error {
	err := os.Remove(ls.fullPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return err
}

func (ls *LocalStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(ls.fullPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
