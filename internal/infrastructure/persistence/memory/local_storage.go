package memory

import (
	"context"
	"sync"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type LocalStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		items: make(map[string]string),
	}
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domainErrors.ErrStorageKeyEmpty
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return domainErrors.ErrStorageKeyEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	return nil
}
