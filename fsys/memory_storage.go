package fsys

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage keeps files in memory. It is used by tests and by the memory disk.
type MemoryStorage struct {
	data map[string][]byte
	mu   sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string][]byte),
	}
}

func (ms *MemoryStorage) Read(path string) (io.ReadCloser, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if data, ok := ms.data[path]; ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func (ms *MemoryStorage) Write(path string, contents []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[path] = append([]byte(nil), contents...)
	return nil
}

func (ms *MemoryStorage) Delete(path string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.data[path]; !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	delete(ms.data, path)
	return nil
}

func (ms *MemoryStorage) Exists(path string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.data[path]
	return ok, nil
}
