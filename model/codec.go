package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNotPersistable    = errors.New("model is not persistable")
)

// Persistable is implemented by models that can be read from and written to files.
type Persistable interface {
	// Snapshot returns the value to encode
	Snapshot() any

	// Restore loads state through decode, which fills the value it is given,
	// and is expected to notify observers afterwards.
	Restore(decode func(v any) error) error
}

// Codec encodes and decodes a model snapshot for one file format
type Codec interface {
	Encode(w io.Writer, v any) error
	Decode(r io.Reader, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (jsonCodec) Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

type yamlCodec struct{}

func (yamlCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlCodec) Decode(r io.Reader, v any) error {
	return yaml.NewDecoder(r).Decode(v)
}

type tomlCodec struct{}

func (tomlCodec) Encode(w io.Writer, v any) error {
	return toml.NewEncoder(w).Encode(v)
}

func (tomlCodec) Decode(r io.Reader, v any) error {
	_, err := toml.NewDecoder(r).Decode(v)
	return err
}

type codecRegistry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

var codecs = &codecRegistry{
	codecs: map[string]Codec{
		".json": jsonCodec{},
		".yaml": yamlCodec{},
		".yml":  yamlCodec{},
		".toml": tomlCodec{},
	},
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// RegisterCodec adds or replaces the codec used for a file extension
func RegisterCodec(ext string, codec Codec) {
	codecs.mu.Lock()
	defer codecs.mu.Unlock()
	codecs.codecs[normalizeExt(ext)] = codec
}

// CodecFor returns the codec registered for a file extension such as ".json"
func CodecFor(ext string) (Codec, error) {
	codecs.mu.RLock()
	defer codecs.mu.RUnlock()
	codec, ok := codecs.codecs[normalizeExt(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return codec, nil
}

// Read restores m from r using the codec selected by ext.
func Read(r io.Reader, ext string, m any) error {
	p, ok := m.(Persistable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotPersistable, m)
	}
	codec, err := CodecFor(ext)
	if err != nil {
		return err
	}
	return p.Restore(func(v any) error {
		if err := codec.Decode(r, v); err != nil {
			return fmt.Errorf("decode %s: %w", normalizeExt(ext), err)
		}
		return nil
	})
}

// Write encodes m's snapshot to w using the codec selected by ext.
func Write(w io.Writer, ext string, m any) error {
	p, ok := m.(Persistable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotPersistable, m)
	}
	codec, err := CodecFor(ext)
	if err != nil {
		return err
	}
	if err := codec.Encode(w, p.Snapshot()); err != nil {
		return fmt.Errorf("encode %s: %w", normalizeExt(ext), err)
	}
	return nil
}
