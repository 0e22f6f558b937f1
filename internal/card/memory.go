package card

import (
	"context"
	"sort"
	"sync"
)

// MemoryFaceRepository implements FaceRepository with an in-process keyed
// collection. Safe for concurrent use; last upsert wins per id.
type MemoryFaceRepository struct {
	mu    sync.RWMutex
	faces map[string]CardFace
}

// NewMemoryFaceRepository creates an empty MemoryFaceRepository.
func NewMemoryFaceRepository() *MemoryFaceRepository {
	return &MemoryFaceRepository{faces: make(map[string]CardFace)}
}

func (r *MemoryFaceRepository) Upsert(_ context.Context, faces ...CardFace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range faces {
		r.faces[f.ID] = f
	}
	return nil
}

func (r *MemoryFaceRepository) FindAll(_ context.Context) ([]CardFace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	faces := make([]CardFace, 0, len(r.faces))
	for _, f := range r.faces {
		faces = append(faces, f)
	}
	sort.SliceStable(faces, func(i, j int) bool {
		if !faces[i].CreatedAt.Equal(faces[j].CreatedAt) {
			return faces[i].CreatedAt.Before(faces[j].CreatedAt)
		}
		return faces[i].ID < faces[j].ID
	})
	return faces, nil
}

func (r *MemoryFaceRepository) FindByIDs(_ context.Context, ids []string) ([]CardFace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var faces []CardFace
	for _, id := range ids {
		if f, ok := r.faces[id]; ok {
			faces = append(faces, f)
		}
	}
	return faces, nil
}

func (r *MemoryFaceRepository) Remove(_ context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.faces, id)
	}
	return nil
}

// MemoryAssociationRepository implements AssociationRepository with an
// in-process keyed collection.
type MemoryAssociationRepository struct {
	mu           sync.RWMutex
	associations map[string]Association
}

// NewMemoryAssociationRepository creates an empty MemoryAssociationRepository.
func NewMemoryAssociationRepository() *MemoryAssociationRepository {
	return &MemoryAssociationRepository{associations: make(map[string]Association)}
}

func (r *MemoryAssociationRepository) Upsert(_ context.Context, associations ...Association) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range associations {
		r.associations[a.ID] = a
	}
	return nil
}

func (r *MemoryAssociationRepository) FindAll(_ context.Context) ([]Association, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	associations := make([]Association, 0, len(r.associations))
	for _, a := range r.associations {
		associations = append(associations, a)
	}
	sortAssociations(associations)
	return associations, nil
}

func (r *MemoryAssociationRepository) FindByTheme(_ context.Context, themeID string) ([]Association, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var associations []Association
	for _, a := range r.associations {
		if a.ThemeID == themeID {
			associations = append(associations, a)
		}
	}
	sortAssociations(associations)
	return associations, nil
}

func (r *MemoryAssociationRepository) FindByID(_ context.Context, id string) (*Association, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.associations[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemoryAssociationRepository) Remove(_ context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.associations, id)
	}
	return nil
}

func (r *MemoryAssociationRepository) CountByTheme(_ context.Context, themeID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, a := range r.associations {
		if a.ThemeID == themeID {
			count++
		}
	}
	return count, nil
}

func sortAssociations(associations []Association) {
	sort.SliceStable(associations, func(i, j int) bool {
		if associations[i].ThemeID != associations[j].ThemeID {
			return associations[i].ThemeID < associations[j].ThemeID
		}
		if associations[i].SortOrder != associations[j].SortOrder {
			return associations[i].SortOrder < associations[j].SortOrder
		}
		return associations[i].CreatedAt.Before(associations[j].CreatedAt)
	})
}
