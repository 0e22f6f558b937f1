package deck

import (
	"context"
	"strings"

	"github.com/lazycat-apps/milka/internal/theme"
)

// SearchCardOptions narrows a card search. A nil HasNotes skips the notes
// filter; true keeps only cards with front notes, false only cards without.
type SearchCardOptions struct {
	ThemeID  string
	HasNotes *bool
}

// SearchThemes returns the themes whose title or description contains the
// query, case-insensitive. An empty query matches every theme.
func (s *Service) SearchThemes(ctx context.Context, query string) ([]theme.Theme, error) {
	themes, err := s.themes.FindAll(ctx)
	if err != nil {
		return nil, storeErr("themes.FindAll()", err)
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return themes, nil
	}

	matched := themes[:0]
	for _, t := range themes {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// SearchCards returns the cards whose front text, back text or front notes
// contain the query, case-insensitive. With opts.ThemeID set only that
// theme's cards are searched, otherwise every theme's.
func (s *Service) SearchCards(ctx context.Context, query string, opts SearchCardOptions) ([]Card, error) {
	var cards []Card
	if opts.ThemeID != "" {
		themeCards, err := s.GetThemeCards(ctx, opts.ThemeID)
		if err != nil {
			return nil, err
		}
		cards = themeCards
	} else {
		themes, err := s.themes.FindAll(ctx)
		if err != nil {
			return nil, storeErr("themes.FindAll()", err)
		}
		for _, t := range themes {
			themeCards, err := s.GetThemeCards(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			cards = append(cards, themeCards...)
		}
	}

	term := strings.ToLower(strings.TrimSpace(query))
	matched := make([]Card, 0, len(cards))
	for _, c := range cards {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Front.MainText), term) &&
			!strings.Contains(strings.ToLower(c.Back.MainText), term) &&
			!strings.Contains(strings.ToLower(c.Front.Notes), term) {
			continue
		}
		if opts.HasNotes != nil && *opts.HasNotes != (c.Front.Notes != "") {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}
