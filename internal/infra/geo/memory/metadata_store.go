package memory

import (
	"context"
	"maps"
	"sync"

	"adradar/internal/domain/repository"
)

// MetadataStore implements repository.MetadataStore with a mutex-guarded map.
// Put swaps the whole attribute map, so a concurrent Get never observes a
// partially written set.
type MetadataStore struct {
	mu    sync.RWMutex
	attrs map[string]map[string]string
}

// NewMetadataStore creates an empty in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		attrs: make(map[string]map[string]string),
	}
}

// Put stores or overwrites the full attribute mapping for adID.
func (s *MetadataStore) Put(_ context.Context, adID string, attrs map[string]string) error {
	cloned := maps.Clone(attrs)
	if cloned == nil {
		cloned = map[string]string{}
	}

	s.mu.Lock()
	s.attrs[adID] = cloned
	s.mu.Unlock()

	return nil
}

// Get returns a copy of the attribute mapping, or ErrMetadataNotFound.
func (s *MetadataStore) Get(_ context.Context, adID string) (map[string]string, error) {
	s.mu.RLock()
	attrs, ok := s.attrs[adID]
	s.mu.RUnlock()

	if !ok {
		return nil, repository.ErrMetadataNotFound
	}

	return maps.Clone(attrs), nil
}
