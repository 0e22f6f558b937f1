// Package card provides card face and association domain models and
// repository interfaces.
package card

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

// Keywords is a list of tags attached to a card face. It is stored as a JSON
// column in MySQL and must round-trip through export even though core logic
// never reads it.
type Keywords []string

// Value implements driver.Valuer.
func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		k = Keywords{}
	}
	data, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(keywords) > %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (k *Keywords) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = nil
		return nil
	case []byte:
		return json.Unmarshal(v, k)
	case string:
		return json.Unmarshal([]byte(v), k)
	default:
		return fmt.Errorf("unsupported keywords source type %T", src)
	}
}

// CardFace represents one side's content of a flashcard.
type CardFace struct {
	ID        string    `db:"id" json:"id"`
	MainText  string    `db:"main_text" json:"main_text"`
	Notes     string    `db:"notes" json:"notes"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Keywords  Keywords  `db:"keywords" json:"keywords"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Association links a theme to an ordered front/back pair of card faces.
// The theme and face ids are logical references, not enforced foreign keys.
type Association struct {
	ID          string    `db:"id" json:"id"`
	ThemeID     string    `db:"theme_id" json:"theme_id"`
	FrontFaceID string    `db:"front_face_id" json:"front_face_id"`
	BackFaceID  string    `db:"back_face_id" json:"back_face_id"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FaceIDs returns the distinct face ids referenced by the associations.
func FaceIDs(associations []Association) []string {
	seen := make(map[string]struct{}, len(associations)*2)
	var ids []string
	for _, a := range associations {
		for _, id := range []string{a.FrontFaceID, a.BackFaceID} {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_repository.go -package=mock_card

// FaceRepository defines operations for managing card faces.
type FaceRepository interface {
	Upsert(ctx context.Context, faces ...CardFace) error
	FindAll(ctx context.Context) ([]CardFace, error)
	FindByIDs(ctx context.Context, ids []string) ([]CardFace, error)
	Remove(ctx context.Context, ids ...string) error
}

// AssociationRepository defines operations for managing theme-card links.
type AssociationRepository interface {
	Upsert(ctx context.Context, associations ...Association) error
	FindAll(ctx context.Context) ([]Association, error)
	FindByTheme(ctx context.Context, themeID string) ([]Association, error)
	FindByID(ctx context.Context, id string) (*Association, error)
	Remove(ctx context.Context, ids ...string) error
	CountByTheme(ctx context.Context, themeID string) (int, error)
}

// DBFaceRepository implements FaceRepository using MySQL.
type DBFaceRepository struct {
	db *sqlx.DB
}

// NewDBFaceRepository creates a new DBFaceRepository.
func NewDBFaceRepository(db *sqlx.DB) *DBFaceRepository {
	return &DBFaceRepository{db: db}
}

// Upsert inserts or replaces card faces by id.
func (r *DBFaceRepository) Upsert(ctx context.Context, faces ...CardFace) error {
	const query = `INSERT INTO card_faces
		(id, main_text, notes, image_url, keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		main_text = VALUES(main_text), notes = VALUES(notes),
		image_url = VALUES(image_url), keywords = VALUES(keywords),
		updated_at = VALUES(updated_at)`

	for _, f := range faces {
		if _, err := r.db.ExecContext(ctx, query,
			f.ID, f.MainText, f.Notes, f.ImageURL, f.Keywords, f.CreatedAt, f.UpdatedAt,
		); err != nil {
			return fmt.Errorf("db.ExecContext(upsert card_face %s) > %w", f.ID, err)
		}
	}
	return nil
}

// FindAll returns all card faces ordered by created_at.
func (r *DBFaceRepository) FindAll(ctx context.Context) ([]CardFace, error) {
	var faces []CardFace
	if err := r.db.SelectContext(ctx, &faces,
		"SELECT * FROM card_faces ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(card_faces) > %w", err)
	}
	return faces, nil
}

// FindByIDs batch-fetches the card faces with the given ids. Missing ids are
// simply absent from the result.
func (r *DBFaceRepository) FindByIDs(ctx context.Context, ids []string) ([]CardFace, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM card_faces WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(card_faces) > %w", err)
	}
	var faces []CardFace
	if err := r.db.SelectContext(ctx, &faces, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(card_faces by ids) > %w", err)
	}
	return faces, nil
}

// Remove deletes the card faces with the given ids.
func (r *DBFaceRepository) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM card_faces WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In(delete card_faces) > %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(delete card_faces) > %w", err)
	}
	return nil
}

// DBAssociationRepository implements AssociationRepository using MySQL.
type DBAssociationRepository struct {
	db *sqlx.DB
}

// NewDBAssociationRepository creates a new DBAssociationRepository.
func NewDBAssociationRepository(db *sqlx.DB) *DBAssociationRepository {
	return &DBAssociationRepository{db: db}
}

// Upsert inserts or replaces associations by id.
func (r *DBAssociationRepository) Upsert(ctx context.Context, associations ...Association) error {
	const query = `INSERT INTO associations
		(id, theme_id, front_face_id, back_face_id, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		theme_id = VALUES(theme_id), front_face_id = VALUES(front_face_id),
		back_face_id = VALUES(back_face_id), sort_order = VALUES(sort_order)`

	for _, a := range associations {
		if _, err := r.db.ExecContext(ctx, query,
			a.ID, a.ThemeID, a.FrontFaceID, a.BackFaceID, a.SortOrder, a.CreatedAt,
		); err != nil {
			return fmt.Errorf("db.ExecContext(upsert association %s) > %w", a.ID, err)
		}
	}
	return nil
}

// FindAll returns all associations.
func (r *DBAssociationRepository) FindAll(ctx context.Context) ([]Association, error) {
	var associations []Association
	if err := r.db.SelectContext(ctx, &associations,
		"SELECT * FROM associations ORDER BY theme_id, sort_order, created_at"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(associations) > %w", err)
	}
	return associations, nil
}

// FindByTheme returns a theme's associations ordered by sort_order ascending,
// ties broken by created_at.
func (r *DBAssociationRepository) FindByTheme(ctx context.Context, themeID string) ([]Association, error) {
	var associations []Association
	if err := r.db.SelectContext(ctx, &associations,
		"SELECT * FROM associations WHERE theme_id = ? ORDER BY sort_order, created_at", themeID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(associations by theme) > %w", err)
	}
	return associations, nil
}

// FindByID returns the association with the given id, or nil if not found.
func (r *DBAssociationRepository) FindByID(ctx context.Context, id string) (*Association, error) {
	var a Association
	err := r.db.GetContext(ctx, &a, "SELECT * FROM associations WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(association) > %w", err)
	}
	return &a, nil
}

// Remove deletes the associations with the given ids.
func (r *DBAssociationRepository) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM associations WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In(delete associations) > %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(delete associations) > %w", err)
	}
	return nil
}

// CountByTheme returns the number of associations owned by a theme.
func (r *DBAssociationRepository) CountByTheme(ctx context.Context, themeID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM associations WHERE theme_id = ?", themeID); err != nil {
		return 0, fmt.Errorf("db.GetContext(count associations) > %w", err)
	}
	return count, nil
}
