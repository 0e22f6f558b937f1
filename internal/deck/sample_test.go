package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_SeedSampleData(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.SeedSampleData(ctx)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.True(t, created[0].IsPinned)

	for _, seeded := range created {
		cards, err := service.GetThemeCards(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Len(t, cards, 5)
	}

	// A second run is a no-op because the store is not empty.
	again, err := service.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	themes, err := service.Themes(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, themes, 2)
}
