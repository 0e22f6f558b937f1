package database

import (
	"context"
	"time"

	"github.com/avast/retry-go"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/config"
	"github.com/lazycat-apps/milka/internal/theme"
)

// RetryOptions configures the retry decorators wrapped around a repository.
type RetryOptions struct {
	MaxAttempts uint
	BaseDelay   time.Duration
}

// RetryOptionsFromConfig converts the retry section of the config.
func RetryOptionsFromConfig(cfg config.RetryConfig) RetryOptions {
	return RetryOptions{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   time.Duration(cfg.BaseDelayMs) * time.Millisecond,
	}
}

func (o RetryOptions) do(ctx context.Context, operation func() error) error {
	attempts := o.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		operation,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(o.BaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// RetryingThemeRepository decorates a ThemeRepository with retries.
type RetryingThemeRepository struct {
	inner theme.ThemeRepository
	opts  RetryOptions
}

// NewRetryingThemeRepository wraps inner so that every call is retried with
// backoff according to opts.
func NewRetryingThemeRepository(inner theme.ThemeRepository, opts RetryOptions) *RetryingThemeRepository {
	return &RetryingThemeRepository{inner: inner, opts: opts}
}

func (r *RetryingThemeRepository) Upsert(ctx context.Context, themes ...theme.Theme) error {
	return r.opts.do(ctx, func() error { return r.inner.Upsert(ctx, themes...) })
}

func (r *RetryingThemeRepository) FindAll(ctx context.Context) ([]theme.Theme, error) {
	var themes []theme.Theme
	err := r.opts.do(ctx, func() error {
		var innerErr error
		themes, innerErr = r.inner.FindAll(ctx)
		return innerErr
	})
	return themes, err
}

func (r *RetryingThemeRepository) FindByID(ctx context.Context, id string) (*theme.Theme, error) {
	var t *theme.Theme
	err := r.opts.do(ctx, func() error {
		var innerErr error
		t, innerErr = r.inner.FindByID(ctx, id)
		return innerErr
	})
	return t, err
}

func (r *RetryingThemeRepository) Remove(ctx context.Context, ids ...string) error {
	return r.opts.do(ctx, func() error { return r.inner.Remove(ctx, ids...) })
}

func (r *RetryingThemeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.opts.do(ctx, func() error {
		var innerErr error
		count, innerErr = r.inner.Count(ctx)
		return innerErr
	})
	return count, err
}

// RetryingFaceRepository decorates a FaceRepository with retries.
type RetryingFaceRepository struct {
	inner card.FaceRepository
	opts  RetryOptions
}

// NewRetryingFaceRepository wraps inner with retry behavior.
func NewRetryingFaceRepository(inner card.FaceRepository, opts RetryOptions) *RetryingFaceRepository {
	return &RetryingFaceRepository{inner: inner, opts: opts}
}

func (r *RetryingFaceRepository) Upsert(ctx context.Context, faces ...card.CardFace) error {
	return r.opts.do(ctx, func() error { return r.inner.Upsert(ctx, faces...) })
}

func (r *RetryingFaceRepository) FindAll(ctx context.Context) ([]card.CardFace, error) {
	var faces []card.CardFace
	err := r.opts.do(ctx, func() error {
		var innerErr error
		faces, innerErr = r.inner.FindAll(ctx)
		return innerErr
	})
	return faces, err
}

func (r *RetryingFaceRepository) FindByIDs(ctx context.Context, ids []string) ([]card.CardFace, error) {
	var faces []card.CardFace
	err := r.opts.do(ctx, func() error {
		var innerErr error
		faces, innerErr = r.inner.FindByIDs(ctx, ids)
		return innerErr
	})
	return faces, err
}

func (r *RetryingFaceRepository) Remove(ctx context.Context, ids ...string) error {
	return r.opts.do(ctx, func() error { return r.inner.Remove(ctx, ids...) })
}

// RetryingAssociationRepository decorates an AssociationRepository with retries.
type RetryingAssociationRepository struct {
	inner card.AssociationRepository
	opts  RetryOptions
}

// NewRetryingAssociationRepository wraps inner with retry behavior.
func NewRetryingAssociationRepository(inner card.AssociationRepository, opts RetryOptions) *RetryingAssociationRepository {
	return &RetryingAssociationRepository{inner: inner, opts: opts}
}

func (r *RetryingAssociationRepository) Upsert(ctx context.Context, associations ...card.Association) error {
	return r.opts.do(ctx, func() error { return r.inner.Upsert(ctx, associations...) })
}

func (r *RetryingAssociationRepository) FindAll(ctx context.Context) ([]card.Association, error) {
	var associations []card.Association
	err := r.opts.do(ctx, func() error {
		var innerErr error
		associations, innerErr = r.inner.FindAll(ctx)
		return innerErr
	})
	return associations, err
}

func (r *RetryingAssociationRepository) FindByTheme(ctx context.Context, themeID string) ([]card.Association, error) {
	var associations []card.Association
	err := r.opts.do(ctx, func() error {
		var innerErr error
		associations, innerErr = r.inner.FindByTheme(ctx, themeID)
		return innerErr
	})
	return associations, err
}

func (r *RetryingAssociationRepository) FindByID(ctx context.Context, id string) (*card.Association, error) {
	var a *card.Association
	err := r.opts.do(ctx, func() error {
		var innerErr error
		a, innerErr = r.inner.FindByID(ctx, id)
		return innerErr
	})
	return a, err
}

func (r *RetryingAssociationRepository) Remove(ctx context.Context, ids ...string) error {
	return r.opts.do(ctx, func() error { return r.inner.Remove(ctx, ids...) })
}

func (r *RetryingAssociationRepository) CountByTheme(ctx context.Context, themeID string) (int, error) {
	var count int
	err := r.opts.do(ctx, func() error {
		var innerErr error
		count, innerErr = r.inner.CountByTheme(ctx, themeID)
		return innerErr
	})
	return count, err
}
