package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lazycat-apps/milka/internal/config"
	mock_card "github.com/lazycat-apps/milka/internal/mocks/card"
	mock_theme "github.com/lazycat-apps/milka/internal/mocks/theme"
	"github.com/lazycat-apps/milka/internal/theme"
)

var errTransient = errors.New("connection reset")

func testRetryOptions() RetryOptions {
	return RetryOptions{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

func TestRetryOptionsFromConfig(t *testing.T) {
	got := RetryOptionsFromConfig(config.RetryConfig{MaxAttempts: 5, BaseDelayMs: 250})
	assert.Equal(t, RetryOptions{MaxAttempts: 5, BaseDelay: 250 * time.Millisecond}, got)
}

func TestRetryingThemeRepository_RetriesUntilSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_theme.NewMockThemeRepository(ctrl)

	want := theme.Theme{ID: "theme_a", Title: "Demo"}
	gomock.InOrder(
		inner.EXPECT().FindByID(gomock.Any(), "theme_a").Return(nil, errTransient),
		inner.EXPECT().FindByID(gomock.Any(), "theme_a").Return(nil, errTransient),
		inner.EXPECT().FindByID(gomock.Any(), "theme_a").Return(&want, nil),
	)

	repo := NewRetryingThemeRepository(inner, testRetryOptions())
	got, err := repo.FindByID(context.Background(), "theme_a")
	require.NoError(t, err)
	assert.Equal(t, &want, got)
}

func TestRetryingThemeRepository_GivesUpAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_theme.NewMockThemeRepository(ctrl)

	inner.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errTransient).Times(3)

	repo := NewRetryingThemeRepository(inner, testRetryOptions())
	err := repo.Upsert(context.Background(), theme.Theme{ID: "theme_a"})
	assert.ErrorIs(t, err, errTransient)
}

func TestRetryingThemeRepository_ZeroAttemptsMeansOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_theme.NewMockThemeRepository(ctrl)

	inner.EXPECT().Count(gomock.Any()).Return(0, errTransient).Times(1)

	repo := NewRetryingThemeRepository(inner, RetryOptions{})
	_, err := repo.Count(context.Background())
	assert.ErrorIs(t, err, errTransient)
}

func TestRetryingFaceRepository_RetriesReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_card.NewMockFaceRepository(ctrl)

	gomock.InOrder(
		inner.EXPECT().FindByIDs(gomock.Any(), []string{"face_a"}).Return(nil, errTransient),
		inner.EXPECT().FindByIDs(gomock.Any(), []string{"face_a"}).Return(nil, nil),
	)

	repo := NewRetryingFaceRepository(inner, testRetryOptions())
	_, err := repo.FindByIDs(context.Background(), []string{"face_a"})
	assert.NoError(t, err)
}

func TestRetryingAssociationRepository_RetriesCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_card.NewMockAssociationRepository(ctrl)

	gomock.InOrder(
		inner.EXPECT().CountByTheme(gomock.Any(), "theme_a").Return(0, errTransient),
		inner.EXPECT().CountByTheme(gomock.Any(), "theme_a").Return(7, nil),
	)

	repo := NewRetryingAssociationRepository(inner, testRetryOptions())
	got, err := repo.CountByTheme(context.Background(), "theme_a")
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestRetryingThemeRepository_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock_theme.NewMockThemeRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	inner.EXPECT().FindAll(gomock.Any()).DoAndReturn(func(context.Context) ([]theme.Theme, error) {
		cancel()
		return nil, errTransient
	})

	repo := NewRetryingThemeRepository(inner, RetryOptions{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond})
	_, err := repo.FindAll(ctx)
	assert.Error(t, err)
}
