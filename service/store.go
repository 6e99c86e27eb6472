package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

// GenerationStore is an in-memory store for generation history
// In production, this should be replaced with a database
type GenerationStore struct {
	generations    map[string]*model.Generation
	mu             sync.RWMutex
	maxGenerations int // Maximum entries to keep, 0 = unlimited
}

// NewGenerationStore creates a store keeping at most maxGenerations entries.
func NewGenerationStore(maxGenerations int) *GenerationStore {
	if maxGenerations < 0 {
		maxGenerations = 0
	}
	slog.Info("generation store initialized", "max_generations", maxGenerations)
	return &GenerationStore{
		generations:    make(map[string]*model.Generation),
		maxGenerations: maxGenerations,
	}
}

func (s *GenerationStore) Save(gen *model.Generation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen.UpdatedAt = time.Now()
	s.generations[gen.ID] = gen

	// Cleanup if exceeds max
	s.cleanupIfNeeded()
}

func (s *GenerationStore) Get(id string) *model.Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations[id]
}

// List returns all history entries, newest first.
func (s *GenerationStore) List() []*model.Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Generation, 0, len(s.generations))
	for _, g := range s.generations {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *GenerationStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.generations, id)
}

// cleanupIfNeeded removes oldest entries if the store exceeds maxGenerations
// Must be called with lock held
func (s *GenerationStore) cleanupIfNeeded() {
	if s.maxGenerations <= 0 {
		return // Unlimited
	}

	if len(s.generations) <= s.maxGenerations {
		return
	}

	generations := make([]*model.Generation, 0, len(s.generations))
	for _, g := range s.generations {
		generations = append(generations, g)
	}
	sort.Slice(generations, func(i, j int) bool {
		return generations[i].CreatedAt.Before(generations[j].CreatedAt)
	})

	removeCount := len(generations) - s.maxGenerations
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old generation",
			"generation_id", generations[i].ID,
			"created_at", generations[i].CreatedAt,
		)
		delete(s.generations, generations[i].ID)
	}
}

// Count returns the number of history entries in the store
func (s *GenerationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.generations)
}
