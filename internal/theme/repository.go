// Package theme provides theme (deck) domain models and repository interfaces.
package theme

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Style names accepted by a theme's style config.
const (
	StyleMinimalistWhite = "minimalist-white"
	StyleNightBlack      = "night-black"
)

// DefaultStyle is applied when a theme does not specify a style.
const DefaultStyle = StyleMinimalistWhite

// ValidStyles returns the enumerated set of style names.
func ValidStyles() []string {
	return []string{StyleMinimalistWhite, StyleNightBlack}
}

// IsValidStyle reports whether name is one of the enumerated styles.
func IsValidStyle(name string) bool {
	for _, s := range ValidStyles() {
		if s == name {
			return true
		}
	}
	return false
}

// StyleConfig holds a named visual style plus free-form custom overrides.
// It is stored as a JSON column in MySQL.
type StyleConfig struct {
	Theme        string            `json:"theme"`
	CustomStyles map[string]string `json:"custom_styles"`
}

// Value implements driver.Valuer.
func (s StyleConfig) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(style_config) > %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (s *StyleConfig) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StyleConfig{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported style_config source type %T", src)
	}
}

// Theme represents a deck of flashcards.
type Theme struct {
	ID            string      `db:"id" json:"id"`
	Title         string      `db:"title" json:"title"`
	Description   string      `db:"description" json:"description"`
	CoverImageURL string      `db:"cover_image_url" json:"cover_image_url"`
	StyleConfig   StyleConfig `db:"style_config" json:"style_config"`
	IsOfficial    bool        `db:"is_official" json:"is_official"`
	SortOrder     int         `db:"sort_order" json:"sort_order"`
	IsPinned      bool        `db:"is_pinned" json:"is_pinned"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

//go:generate mockgen -source=repository.go -destination=../mocks/theme/mock_repository.go -package=mock_theme

// ThemeRepository defines operations for managing themes.
type ThemeRepository interface {
	Upsert(ctx context.Context, themes ...Theme) error
	FindAll(ctx context.Context) ([]Theme, error)
	FindByID(ctx context.Context, id string) (*Theme, error)
	Remove(ctx context.Context, ids ...string) error
	Count(ctx context.Context) (int, error)
}

// DBThemeRepository implements ThemeRepository using MySQL.
type DBThemeRepository struct {
	db *sqlx.DB
}

// NewDBThemeRepository creates a new DBThemeRepository.
func NewDBThemeRepository(db *sqlx.DB) *DBThemeRepository {
	return &DBThemeRepository{db: db}
}

// Upsert inserts or replaces themes by id.
func (r *DBThemeRepository) Upsert(ctx context.Context, themes ...Theme) error {
	const query = `INSERT INTO themes
		(id, title, description, cover_image_url, style_config, is_official, sort_order, is_pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		title = VALUES(title), description = VALUES(description),
		cover_image_url = VALUES(cover_image_url), style_config = VALUES(style_config),
		is_official = VALUES(is_official), sort_order = VALUES(sort_order),
		is_pinned = VALUES(is_pinned), updated_at = VALUES(updated_at)`

	for _, t := range themes {
		if _, err := r.db.ExecContext(ctx, query,
			t.ID, t.Title, t.Description, t.CoverImageURL, t.StyleConfig,
			t.IsOfficial, t.SortOrder, t.IsPinned, t.CreatedAt, t.UpdatedAt,
		); err != nil {
			return fmt.Errorf("db.ExecContext(upsert theme %s) > %w", t.ID, err)
		}
	}
	return nil
}

// FindAll returns all themes ordered by sort_order, then created_at.
func (r *DBThemeRepository) FindAll(ctx context.Context) ([]Theme, error) {
	var themes []Theme
	if err := r.db.SelectContext(ctx, &themes,
		"SELECT * FROM themes ORDER BY sort_order, created_at"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(themes) > %w", err)
	}
	return themes, nil
}

// FindByID returns the theme with the given id, or nil if not found.
func (r *DBThemeRepository) FindByID(ctx context.Context, id string) (*Theme, error) {
	var t Theme
	err := r.db.GetContext(ctx, &t, "SELECT * FROM themes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(theme) > %w", err)
	}
	return &t, nil
}

// Remove deletes the themes with the given ids.
func (r *DBThemeRepository) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM themes WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In(delete themes) > %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(delete themes) > %w", err)
	}
	return nil
}

// Count returns the number of themes.
func (r *DBThemeRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM themes"); err != nil {
		return 0, fmt.Errorf("db.GetContext(count themes) > %w", err)
	}
	return count, nil
}
