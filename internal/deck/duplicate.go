package deck

import (
	"context"
	"fmt"

	"github.com/lazycat-apps/milka/internal/theme"
)

// DuplicateTheme creates a copy of a theme and all of its cards. An empty
// newTitle falls back to the source title with a copy suffix. The copy gets
// fresh ids and timestamps and is never pinned. Returns the new theme and
// the number of cards copied.
func (s *Service) DuplicateTheme(ctx context.Context, themeID, newTitle string) (*theme.Theme, int, error) {
	source, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return nil, 0, err
	}

	title := newTitle
	if title == "" {
		title = fmt.Sprintf("%s (副本)", source.Title)
	}

	created, err := s.CreateTheme(ctx, ThemeInput{
		Title:       title,
		Description: source.Description,
		Style:       source.StyleConfig.Theme,
	})
	if err != nil {
		return nil, 0, err
	}

	cards, err := s.GetThemeCards(ctx, themeID)
	if err != nil {
		return nil, 0, err
	}

	copied := 0
	for _, c := range cards {
		_, err := s.AddCard(ctx, created.ID, c.Front.MainText, c.Back.MainText, CardOptions{
			FrontNotes:    c.Front.Notes,
			BackNotes:     c.Back.Notes,
			FrontKeywords: c.Front.Keywords,
			BackKeywords:  c.Back.Keywords,
		})
		if err != nil {
			return nil, 0, err
		}
		copied++
	}
	return created, copied, nil
}
