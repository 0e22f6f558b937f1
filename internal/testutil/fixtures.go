// Package testutil holds fixture builders shared by tests.
package testutil

import (
	"time"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/theme"
)

// FixedTime is the timestamp fixtures carry, so assertions can compare
// whole structs.
var FixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func Theme(id, title string, sortOrder int) theme.Theme {
	return theme.Theme{
		ID:          id,
		Title:       title,
		StyleConfig: theme.StyleConfig{Theme: theme.DefaultStyle},
		SortOrder:   sortOrder,
		CreatedAt:   FixedTime,
		UpdatedAt:   FixedTime,
	}
}

func Face(id, mainText string) card.CardFace {
	return card.CardFace{
		ID:        id,
		MainText:  mainText,
		Keywords:  card.Keywords{},
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

func Association(id, themeID, frontFaceID, backFaceID string, sortOrder int) card.Association {
	return card.Association{
		ID:          id,
		ThemeID:     themeID,
		FrontFaceID: frontFaceID,
		BackFaceID:  backFaceID,
		SortOrder:   sortOrder,
		CreatedAt:   FixedTime,
	}
}
