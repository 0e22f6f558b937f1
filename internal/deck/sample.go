package deck

import (
	"context"
	"fmt"

	"github.com/lazycat-apps/milka/internal/assets"
	"github.com/lazycat-apps/milka/internal/theme"
)

// SeedSampleData creates the bundled sample decks. It is a no-op when any
// theme already exists, so repeated runs never duplicate data.
func (s *Service) SeedSampleData(ctx context.Context) ([]theme.Theme, error) {
	count, err := s.themes.Count(ctx)
	if err != nil {
		return nil, storeErr("themes.Count()", err)
	}
	if count > 0 {
		return nil, nil
	}

	decks, err := assets.SampleDecks()
	if err != nil {
		return nil, fmt.Errorf("assets.SampleDecks() > %w", err)
	}

	created := make([]theme.Theme, 0, len(decks))
	for _, deck := range decks {
		t, err := s.CreateTheme(ctx, ThemeInput{
			Title:       deck.Title,
			Description: deck.Description,
			Style:       deck.Style,
		})
		if err != nil {
			return created, fmt.Errorf("CreateTheme(%s) > %w", deck.Title, err)
		}
		if deck.Pinned {
			if err := s.TogglePin(ctx, t.ID, true); err != nil {
				return created, fmt.Errorf("TogglePin(%s) > %w", t.ID, err)
			}
			t.IsPinned = true
		}
		for _, c := range deck.Cards {
			_, err := s.AddCard(ctx, t.ID, c.Front, c.Back, CardOptions{
				FrontNotes: c.FrontNotes,
				BackNotes:  c.BackNotes,
			})
			if err != nil {
				return created, fmt.Errorf("AddCard(%s) > %w", c.Front, err)
			}
		}
		created = append(created, *t)
	}
	return created, nil
}
