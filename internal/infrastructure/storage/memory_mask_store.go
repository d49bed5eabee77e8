package storage

import (
	"context"
	"sync"

	"shipseg/internal/domain/entity"
	"shipseg/internal/domain/port"
)

// MemoryMaskStore keeps written masks in memory, keyed by item name.
type MemoryMaskStore struct {
	mu    sync.RWMutex
	masks map[string]*entity.Mask
}

// NewMemoryMaskStore creates an empty store.
func NewMemoryMaskStore() *MemoryMaskStore {
	return &MemoryMaskStore{
		masks: make(map[string]*entity.Mask),
	}
}

// Write stores a copy of mask under item.Name.
func (s *MemoryMaskStore) Write(ctx context.Context, item entity.DatasetItem, mask *entity.Mask) error {
	clone := &entity.Mask{
		Width:  mask.Width,
		Height: mask.Height,
		Pix:    append([]uint8(nil), mask.Pix...),
	}

	s.mu.Lock()
	s.masks[item.Name] = clone
	s.mu.Unlock()

	return nil
}

// Get returns the mask stored for name.
func (s *MemoryMaskStore) Get(name string) (*entity.Mask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mask, ok := s.masks[name]
	return mask, ok
}

// Len returns the number of stored masks.
func (s *MemoryMaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.masks)
}

var _ port.MaskWriter = (*MemoryMaskStore)(nil)
