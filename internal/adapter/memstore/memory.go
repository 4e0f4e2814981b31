package memstore

import (
	"fmt"
	"sync"

	"dslsplit/internal/domain"
)

// MemoryStore keeps trained tables in process memory. It backs tests and
// the wasm build.
type MemoryStore struct {
	mu         sync.RWMutex
	affix      map[string]*domain.AffixTable
	pentagrams map[string]*domain.PentagramTable
	infos      map[string]domain.TrainingInfo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		affix:      make(map[string]*domain.AffixTable),
		pentagrams: make(map[string]*domain.PentagramTable),
		infos:      make(map[string]domain.TrainingInfo),
	}
}

func (s *MemoryStore) SaveAffix(table *domain.AffixTable, info domain.TrainingInfo) error {
	key := domain.AffixKey(table.Language, table.Profile)
	info.Key = key

	s.mu.Lock()
	defer s.mu.Unlock()
	s.affix[key] = table
	s.infos[key] = info
	return nil
}

func (s *MemoryStore) LoadAffix(language, profile string) (*domain.AffixTable, error) {
	key := domain.AffixKey(language, profile)

	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.affix[key]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", key, domain.ErrNotFound)
	}
	return table, nil
}

func (s *MemoryStore) SavePentagram(table *domain.PentagramTable, info domain.TrainingInfo) error {
	key := domain.PentagramKey(table.Variant)
	info.Key = key

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pentagrams[key] = table
	s.infos[key] = info
	return nil
}

func (s *MemoryStore) LoadPentagram(variant string) (*domain.PentagramTable, error) {
	key := domain.PentagramKey(variant)

	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.pentagrams[key]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", key, domain.ErrNotFound)
	}
	return table, nil
}

func (s *MemoryStore) TrainingInfo(key string) (domain.TrainingInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.infos[key]
	if !ok {
		return domain.TrainingInfo{}, fmt.Errorf("training info %s: %w", key, domain.ErrNotFound)
	}
	return info, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
