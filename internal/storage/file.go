package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every key in a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type File struct {
	mu       sync.Mutex
	path     string
	readFile func(string) ([]byte, error)
}

var errCorruptFile = errors.New("not a storage file")

func NewFile(path string) *File {
	return &File{path: path, readFile: os.ReadFile}
}

func (f *File) GetItem(_ context.Context, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", err
	}
	val, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (f *File) SetItem(_ context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if errors.Is(err, errCorruptFile) {
		// Keep the bad file for inspection and start a fresh one.
		if err := os.Rename(f.path, f.path+".corrupt"); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		items, err = make(map[string]string), nil
	}
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *File) RemoveItem(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.write(items)
}

func (f *File) read() (map[string]string, error) {
	raw, err := f.readFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	items := make(map[string]string)
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w: %s: %v", ErrUnavailable, errCorruptFile, f.path, err)
	}
	return items, nil
}

func (f *File) write(items map[string]string) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".quickcart-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return os.Rename(tmp.Name(), f.path)
}
