package card

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func faceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "main_text", "notes", "image_url", "keywords", "created_at", "updated_at",
	})
}

func associationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "theme_id", "front_face_id", "back_face_id", "sort_order", "created_at",
	})
}

func TestFaceIDs(t *testing.T) {
	associations := []Association{
		{ID: "assoc_a", FrontFaceID: "face_1", BackFaceID: "face_2"},
		{ID: "assoc_b", FrontFaceID: "face_2", BackFaceID: "face_3"},
	}
	assert.Equal(t, []string{"face_1", "face_2", "face_3"}, FaceIDs(associations))
	assert.Nil(t, FaceIDs(nil))
}

func TestDBFaceRepository_FindByIDs(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("fetches by ids, missing ids are absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBFaceRepository(db)

		rows := faceRows().
			AddRow("face_1", "Hello", "", "", []byte(`["greeting"]`), now, now)
		mock.ExpectQuery("SELECT \\* FROM card_faces WHERE id IN").
			WithArgs("face_1", "face_missing").
			WillReturnRows(rows)

		got, err := repo.FindByIDs(context.Background(), []string{"face_1", "face_missing"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "face_1", got[0].ID)
		assert.Equal(t, Keywords{"greeting"}, got[0].Keywords)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids returns nothing without a query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBFaceRepository(db)

		got, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBFaceRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDBFaceRepository(db)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO card_faces").
		WithArgs("face_1", "Hello", "greeting", "", sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), CardFace{
		ID:        "face_1",
		MainText:  "Hello",
		Notes:     "greeting",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBFaceRepository_Remove(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDBFaceRepository(db)

	mock.ExpectExec("DELETE FROM card_faces WHERE id IN").
		WithArgs("face_1", "face_2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Remove(context.Background(), "face_1", "face_2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAssociationRepository_FindByTheme(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDBAssociationRepository(db)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := associationRows().
		AddRow("assoc_a", "theme_1", "face_1", "face_2", 0, now).
		AddRow("assoc_b", "theme_1", "face_3", "face_4", 1, now)

	mock.ExpectQuery("SELECT \\* FROM associations WHERE theme_id = \\? ORDER BY sort_order, created_at").
		WithArgs("theme_1").
		WillReturnRows(rows)

	got, err := repo.FindByTheme(context.Background(), "theme_1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "assoc_a", got[0].ID)
	assert.Equal(t, 1, got[1].SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAssociationRepository_FindByID(t *testing.T) {
	t.Run("not found returns nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDBAssociationRepository(db)

		mock.ExpectQuery("SELECT \\* FROM associations WHERE id = \\?").
			WithArgs("assoc_missing").
			WillReturnRows(associationRows())

		got, err := repo.FindByID(context.Background(), "assoc_missing")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBAssociationRepository_CountByTheme(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDBAssociationRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM associations WHERE theme_id = \\?").
		WithArgs("theme_1").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(4))

	got, err := repo.CountByTheme(context.Background(), "theme_1")
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
