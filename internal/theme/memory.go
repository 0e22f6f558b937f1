package theme

import (
	"context"
	"sort"
	"sync"
)

// MemoryThemeRepository implements ThemeRepository with an in-process keyed
// collection, mirroring the document-store deployment. Safe for concurrent
// use; last upsert wins per id.
type MemoryThemeRepository struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewMemoryThemeRepository creates an empty MemoryThemeRepository.
func NewMemoryThemeRepository() *MemoryThemeRepository {
	return &MemoryThemeRepository{themes: make(map[string]Theme)}
}

func (r *MemoryThemeRepository) Upsert(_ context.Context, themes ...Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range themes {
		r.themes[t.ID] = t
	}
	return nil
}

func (r *MemoryThemeRepository) FindAll(_ context.Context) ([]Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	themes := make([]Theme, 0, len(r.themes))
	for _, t := range r.themes {
		themes = append(themes, t)
	}
	sort.SliceStable(themes, func(i, j int) bool {
		if themes[i].SortOrder != themes[j].SortOrder {
			return themes[i].SortOrder < themes[j].SortOrder
		}
		return themes[i].CreatedAt.Before(themes[j].CreatedAt)
	})
	return themes, nil
}

func (r *MemoryThemeRepository) FindByID(_ context.Context, id string) (*Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *MemoryThemeRepository) Remove(_ context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.themes, id)
	}
	return nil
}

func (r *MemoryThemeRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.themes), nil
}
