package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

// LocalStorage keeps every key in a single JSON object on disk. The file is
// re-read on each access so values written by other tools (the login flow
// writing the session token) are picked up, and every write replaces the file
// atomically through a rename.
var errUndecodable = errors.New("storage file is not a JSON object")

type LocalStorage struct {
	mu   sync.Mutex
	path string
}

func NewLocalStorage(path string) (*LocalStorage, error) {
	if path == "" {
		return nil, errors.New("storage path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	return &LocalStorage{path: path}, nil
}

func (s *LocalStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errUndecodable, s.path, err)
	}
	return items, nil
}

func (s *LocalStorage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp storage file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domainErrors.ErrStorageKeyEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}

	value, ok := items[key]
	return value, ok, nil
}

// SetItem starts from an empty object when the existing file cannot be decoded.
// Any other read failure is returned so the remaining keys are not lost.
func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return domainErrors.ErrStorageKeyEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if errors.Is(err, errUndecodable) {
		items = map[string]string{}
	} else if err != nil {
		return err
	}

	items[key] = value
	return s.write(items)
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := items[key]; !ok {
		return nil
	}

	delete(items, key)
	return s.write(items)
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.read()
	return err
}
