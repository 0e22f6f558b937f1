package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazycat-apps/milka/internal/theme"
)

func TestService_DuplicateTheme(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	source, err := service.CreateTheme(ctx, ThemeInput{
		Title:       "Demo",
		Description: "original deck",
		Style:       theme.StyleNightBlack,
	})
	require.NoError(t, err)
	require.NoError(t, service.TogglePin(ctx, source.ID, true))

	_, err = service.AddCard(ctx, source.ID, "Hello", "你好", CardOptions{
		FrontNotes:    "greeting",
		FrontKeywords: []string{"basic"},
	})
	require.NoError(t, err)
	_, err = service.AddCard(ctx, source.ID, "Apple", "苹果", CardOptions{})
	require.NoError(t, err)

	dup, copied, err := service.DuplicateTheme(ctx, source.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, "Demo (副本)", dup.Title)
	assert.Equal(t, "original deck", dup.Description)
	assert.Equal(t, theme.StyleNightBlack, dup.StyleConfig.Theme)
	assert.False(t, dup.IsPinned)

	sourceCards, err := service.GetThemeCards(ctx, source.ID)
	require.NoError(t, err)
	copyCards, err := service.GetThemeCards(ctx, dup.ID)
	require.NoError(t, err)
	require.Len(t, copyCards, len(sourceCards))
	for i, c := range copyCards {
		assert.NotEqual(t, sourceCards[i].ID, c.ID)
		assert.NotEqual(t, sourceCards[i].Front.ID, c.Front.ID)
		assert.Equal(t, sourceCards[i].Front.MainText, c.Front.MainText)
		assert.Equal(t, sourceCards[i].Back.MainText, c.Back.MainText)
		assert.Equal(t, sourceCards[i].Front.Notes, c.Front.Notes)
		assert.Equal(t, sourceCards[i].Front.Keywords, c.Front.Keywords)
		assert.Equal(t, i, c.SortOrder)
	}
}

func TestService_DuplicateTheme_CustomTitle(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	source, err := service.CreateTheme(ctx, ThemeInput{Title: "Demo"})
	require.NoError(t, err)

	dup, copied, err := service.DuplicateTheme(ctx, source.ID, "Demo 2")
	require.NoError(t, err)
	assert.Equal(t, 0, copied)
	assert.Equal(t, "Demo 2", dup.Title)
}

func TestService_DuplicateTheme_UnknownTheme(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, _, err := service.DuplicateTheme(ctx, "theme_missing", "")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "theme", notFoundErr.Kind)
}
