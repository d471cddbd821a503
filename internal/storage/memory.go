package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"accneat/internal/model"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	champions   map[string]model.Champion
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.champions = make(map[string]model.Champion)
	return nil
}

func (s *MemoryStore) SaveChampion(_ context.Context, champion model.Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if champion.ID == "" {
		return errors.New("champion id is required")
	}
	s.champions[champion.ID] = Stamp(champion)
	return nil
}

func (s *MemoryStore) GetChampion(_ context.Context, id string) (model.Champion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.Champion{}, false, errNotInitialized
	}
	champion, ok := s.champions[id]
	return champion, ok, nil
}

func (s *MemoryStore) ListChampions(_ context.Context) ([]model.Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	out := make([]model.Champion, 0, len(s.champions))
	for _, c := range s.champions {
		out = append(out, c)
	}
	sortChampions(out)
	return out, nil
}

// sortChampions orders newest selection first, then by id.
func sortChampions(champions []model.Champion) {
	sort.Slice(champions, func(i, j int) bool {
		if champions[i].SelectedAtUTC == champions[j].SelectedAtUTC {
			return champions[i].ID < champions[j].ID
		}
		return champions[i].SelectedAtUTC > champions[j].SelectedAtUTC
	})
}
