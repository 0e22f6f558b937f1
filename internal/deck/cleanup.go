package deck

import "context"

// CleanupResult reports what an orphan sweep removed.
type CleanupResult struct {
	RemovedAssociations int `json:"removedAssociations"`
	RemovedFaces        int `json:"removedFaces"`
}

// CleanupOrphans removes associations whose theme no longer exists and card
// faces referenced by no remaining association. Multi-store mutations have no
// cross-store transaction, so this sweep is the recovery path for partial
// failures.
func (s *Service) CleanupOrphans(ctx context.Context) (*CleanupResult, error) {
	themes, err := s.themes.FindAll(ctx)
	if err != nil {
		return nil, storeErr("themes.FindAll()", err)
	}
	associations, err := s.associations.FindAll(ctx)
	if err != nil {
		return nil, storeErr("associations.FindAll()", err)
	}
	faces, err := s.faces.FindAll(ctx)
	if err != nil {
		return nil, storeErr("faces.FindAll()", err)
	}

	themeIDs := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		themeIDs[t.ID] = struct{}{}
	}

	var result CleanupResult

	var orphanAssociations []string
	referenced := make(map[string]struct{}, len(associations)*2)
	for _, a := range associations {
		if _, ok := themeIDs[a.ThemeID]; !ok {
			orphanAssociations = append(orphanAssociations, a.ID)
			continue
		}
		referenced[a.FrontFaceID] = struct{}{}
		referenced[a.BackFaceID] = struct{}{}
	}
	if len(orphanAssociations) > 0 {
		if err := s.associations.Remove(ctx, orphanAssociations...); err != nil {
			return nil, storeErr("associations.Remove()", err)
		}
		result.RemovedAssociations = len(orphanAssociations)
	}

	var orphanFaces []string
	for _, f := range faces {
		if _, ok := referenced[f.ID]; !ok {
			orphanFaces = append(orphanFaces, f.ID)
		}
	}
	if len(orphanFaces) > 0 {
		if err := s.faces.Remove(ctx, orphanFaces...); err != nil {
			return nil, storeErr("faces.Remove()", err)
		}
		result.RemovedFaces = len(orphanFaces)
	}

	return &result, nil
}
