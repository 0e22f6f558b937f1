// Package storage provides the file-backed document store used when no
// database is configured. The whole data set lives in memory and is
// snapshotted to a single JSON file.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/theme"
)

type snapshot struct {
	Themes       []theme.Theme      `json:"themes"`
	Faces        []card.CardFace    `json:"faces"`
	Associations []card.Association `json:"associations"`
}

// FileStore composes the three memory repositories with JSON file
// persistence. Callers flush after mutations; there is no cross-process
// coordination, the store assumes a single writer.
type FileStore struct {
	path string

	Themes       *theme.MemoryThemeRepository
	Faces        *card.MemoryFaceRepository
	Associations *card.MemoryAssociationRepository
}

// Open loads the store from path. A missing file yields an empty store.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:         path,
		Themes:       theme.NewMemoryThemeRepository(),
		Faces:        card.NewMemoryFaceRepository(),
		Associations: card.NewMemoryAssociationRepository(),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}

	ctx := context.Background()
	if err := s.Themes.Upsert(ctx, snap.Themes...); err != nil {
		return nil, fmt.Errorf("Themes.Upsert() > %w", err)
	}
	if err := s.Faces.Upsert(ctx, snap.Faces...); err != nil {
		return nil, fmt.Errorf("Faces.Upsert() > %w", err)
	}
	if err := s.Associations.Upsert(ctx, snap.Associations...); err != nil {
		return nil, fmt.Errorf("Associations.Upsert() > %w", err)
	}
	return s, nil
}

// Flush writes the current data set to the store's file. The snapshot is
// written to a temporary file first and renamed into place.
func (s *FileStore) Flush(ctx context.Context) error {
	themes, err := s.Themes.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("Themes.FindAll() > %w", err)
	}
	faces, err := s.Faces.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("Faces.FindAll() > %w", err)
	}
	associations, err := s.Associations.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("Associations.FindAll() > %w", err)
	}

	data, err := json.MarshalIndent(snapshot{
		Themes:       themes,
		Faces:        faces,
		Associations: associations,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent() > %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Write() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("os.Rename() > %w", err)
	}
	return nil
}
