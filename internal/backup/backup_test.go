package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/deck"
	mock_card "github.com/lazycat-apps/milka/internal/mocks/card"
	mock_theme "github.com/lazycat-apps/milka/internal/mocks/theme"
	"github.com/lazycat-apps/milka/internal/testutil"
	"github.com/lazycat-apps/milka/internal/theme"
)

type memoryStores struct {
	themes       *theme.MemoryThemeRepository
	faces        *card.MemoryFaceRepository
	associations *card.MemoryAssociationRepository
}

func newMemoryStores() memoryStores {
	return memoryStores{
		themes:       theme.NewMemoryThemeRepository(),
		faces:        card.NewMemoryFaceRepository(),
		associations: card.NewMemoryAssociationRepository(),
	}
}

func (m memoryStores) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.themes.Upsert(ctx, testutil.Theme("theme_t1", "Demo", 0)))
	require.NoError(t, m.faces.Upsert(ctx,
		testutil.Face("face_f1", "Hello"),
		testutil.Face("face_f2", "你好"),
	))
	require.NoError(t, m.associations.Upsert(ctx,
		testutil.Association("assoc_a1", "theme_t1", "face_f1", "face_f2", 0),
	))
}

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	stores.seed(t)

	exporter := NewExporter(stores.themes, stores.faces, stores.associations)
	exporter.now = func() time.Time { return testutil.FixedTime }

	doc, err := exporter.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, Format, doc.Metadata.Format)
	assert.Equal(t, FormatVersion, doc.Metadata.Version)
	assert.Equal(t, testutil.FixedTime, doc.Metadata.ExportTime)
	assert.Equal(t, DataCount{Themes: 1, Cards: 1, Faces: 2}, doc.Metadata.DataCount)
	assert.Len(t, doc.Data.Themes, 1)
	assert.Len(t, doc.Data.Cards, 1)
	assert.Len(t, doc.Data.Faces, 2)
}

func TestExporter_Export_EmptyStore(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()

	exporter := NewExporter(stores.themes, stores.faces, stores.associations)
	doc, err := exporter.Export(ctx)
	require.NoError(t, err)

	require.NoError(t, Validate(doc))
	assert.NotNil(t, doc.Data.Themes)
	assert.NotNil(t, doc.Data.Cards)
	assert.NotNil(t, doc.Data.Faces)
}

func TestImporter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newMemoryStores()
	source.seed(t)

	exporter := NewExporter(source.themes, source.faces, source.associations)
	doc, err := exporter.Export(ctx)
	require.NoError(t, err)

	target := newMemoryStores()
	importer := NewImporter(target.themes, target.faces, target.associations, io.Discard)
	stats, err := importer.Import(ctx, doc, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalImported())
	assert.Equal(t, 0, stats.TotalErrors())

	sourceThemes, err := source.themes.FindAll(ctx)
	require.NoError(t, err)
	targetThemes, err := target.themes.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sourceThemes, targetThemes)

	sourceFaces, err := source.faces.FindAll(ctx)
	require.NoError(t, err)
	targetFaces, err := target.faces.FindAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, sourceFaces, targetFaces)

	sourceAssociations, err := source.associations.FindAll(ctx)
	require.NoError(t, err)
	targetAssociations, err := target.associations.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sourceAssociations, targetAssociations)
}

func TestImporter_RoundTrip_ServiceCreatedCards(t *testing.T) {
	ctx := context.Background()
	source := newMemoryStores()

	service, err := deck.NewService(source.themes, source.faces, source.associations)
	require.NoError(t, err)
	created, err := service.CreateTheme(ctx, deck.ThemeInput{Title: "Demo"})
	require.NoError(t, err)
	_, err = service.AddCard(ctx, created.ID, "Hello", "你好", deck.CardOptions{})
	require.NoError(t, err)

	exporter := NewExporter(source.themes, source.faces, source.associations)
	doc, err := exporter.Export(ctx)
	require.NoError(t, err)

	target := newMemoryStores()
	importer := NewImporter(target.themes, target.faces, target.associations, io.Discard)
	stats, err := importer.Import(ctx, doc, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalErrors())

	sourceFaces, err := source.faces.FindAll(ctx)
	require.NoError(t, err)
	targetFaces, err := target.faces.FindAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, sourceFaces, targetFaces)
	for _, f := range targetFaces {
		assert.NotNil(t, f.Keywords)
	}

	sourceAssociations, err := source.associations.FindAll(ctx)
	require.NoError(t, err)
	targetAssociations, err := target.associations.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sourceAssociations, targetAssociations)
}

func TestImporter_MergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	source := newMemoryStores()
	source.seed(t)

	exporter := NewExporter(source.themes, source.faces, source.associations)
	doc, err := exporter.Export(ctx)
	require.NoError(t, err)

	target := newMemoryStores()
	importer := NewImporter(target.themes, target.faces, target.associations, io.Discard)

	first, err := importer.Import(ctx, doc, ModeMerge)
	require.NoError(t, err)
	assert.Equal(t, CategoryStats{Imported: 2}, first.Faces)
	assert.Equal(t, CategoryStats{Imported: 1}, first.Themes)
	assert.Equal(t, CategoryStats{Imported: 1}, first.Cards)

	second, err := importer.Import(ctx, doc, ModeMerge)
	require.NoError(t, err)
	assert.Equal(t, CategoryStats{Skipped: 2}, second.Faces)
	assert.Equal(t, CategoryStats{Skipped: 1}, second.Themes)
	assert.Equal(t, CategoryStats{Skipped: 1}, second.Cards)
	assert.Equal(t, 0, second.TotalImported())
}

func TestImporter_ReplaceWipesExistingData(t *testing.T) {
	ctx := context.Background()
	target := newMemoryStores()
	require.NoError(t, target.themes.Upsert(ctx, testutil.Theme("theme_old", "Old", 0)))
	require.NoError(t, target.faces.Upsert(ctx, testutil.Face("face_old", "old")))
	require.NoError(t, target.associations.Upsert(ctx,
		testutil.Association("assoc_old", "theme_old", "face_old", "face_old", 0),
	))

	doc := &Document{
		Metadata: Metadata{Format: Format, Version: FormatVersion},
		Data: Data{
			Themes: []theme.Theme{testutil.Theme("theme_new", "New", 0)},
			Cards:  []card.Association{},
			Faces:  []card.CardFace{},
		},
	}

	importer := NewImporter(target.themes, target.faces, target.associations, io.Discard)
	stats, err := importer.Import(ctx, doc, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Themes.Imported)

	themes, err := target.themes.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "theme_new", themes[0].ID)

	faces, err := target.faces.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, faces)

	associations, err := target.associations.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, associations)
}

func TestImporter_MalformedRecordsAreTalliedNotFatal(t *testing.T) {
	ctx := context.Background()
	target := newMemoryStores()

	doc := &Document{
		Metadata: Metadata{Format: Format, Version: FormatVersion},
		Data: Data{
			Themes: []theme.Theme{
				testutil.Theme("theme_t1", "Demo", 0),
				{ID: "theme_t2"},
			},
			Cards: []card.Association{
				testutil.Association("assoc_a1", "theme_t1", "face_f1", "face_f2", 0),
				{ID: "assoc_a2", ThemeID: "theme_t1"},
			},
			Faces: []card.CardFace{
				testutil.Face("face_f1", "Hello"),
				{ID: "face_broken"},
				testutil.Face("face_f2", "你好"),
			},
		},
	}

	var progress bytes.Buffer
	importer := NewImporter(target.themes, target.faces, target.associations, &progress)
	stats, err := importer.Import(ctx, doc, ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, CategoryStats{Imported: 2, Errors: 1}, stats.Faces)
	assert.Equal(t, CategoryStats{Imported: 1, Errors: 1}, stats.Themes)
	assert.Equal(t, CategoryStats{Imported: 1, Errors: 1}, stats.Cards)

	faces, err := target.faces.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, faces, 2)

	assert.Contains(t, progress.String(), "[ERROR]")
	assert.Contains(t, progress.String(), "[NEW]")
}

func TestImporter_StoreFailuresAreTalliedNotFatal(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	themes := mock_theme.NewMockThemeRepository(ctrl)
	faces := mock_card.NewMockFaceRepository(ctrl)
	associations := mock_card.NewMockAssociationRepository(ctrl)

	faces.EXPECT().FindByIDs(gomock.Any(), []string{"face_f1"}).Return(nil, nil)
	faces.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	themes.EXPECT().FindByID(gomock.Any(), "theme_t1").Return(nil, nil)
	themes.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	associations.EXPECT().FindByID(gomock.Any(), "assoc_a1").Return(nil, nil)
	associations.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	doc := &Document{
		Metadata: Metadata{Format: Format, Version: FormatVersion},
		Data: Data{
			Themes: []theme.Theme{testutil.Theme("theme_t1", "Demo", 0)},
			Cards:  []card.Association{testutil.Association("assoc_a1", "theme_t1", "face_f1", "face_f2", 0)},
			Faces:  []card.CardFace{testutil.Face("face_f1", "Hello")},
		},
	}

	importer := NewImporter(themes, faces, associations, io.Discard)
	stats, err := importer.Import(ctx, doc, ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, CategoryStats{Errors: 1}, stats.Faces)
	assert.Equal(t, CategoryStats{Imported: 1}, stats.Themes)
	assert.Equal(t, CategoryStats{Imported: 1}, stats.Cards)
}

func TestImporter_NormalizesImportedRecords(t *testing.T) {
	ctx := context.Background()
	target := newMemoryStores()

	doc := &Document{
		Metadata: Metadata{Format: Format, Version: FormatVersion},
		Data: Data{
			Themes: []theme.Theme{{ID: "theme_t1", Title: "Demo"}},
			Cards:  []card.Association{},
			Faces:  []card.CardFace{{ID: "face_f1", MainText: "Hello"}},
		},
	}

	importer := NewImporter(target.themes, target.faces, target.associations, io.Discard)
	importer.now = func() time.Time { return testutil.FixedTime }

	_, err := importer.Import(ctx, doc, ModeMerge)
	require.NoError(t, err)

	themes, err := target.themes.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, theme.DefaultStyle, themes[0].StyleConfig.Theme)
	assert.NotNil(t, themes[0].StyleConfig.CustomStyles)
	assert.Equal(t, testutil.FixedTime, themes[0].CreatedAt)

	faces, err := target.faces.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.NotNil(t, faces[0].Keywords)
	assert.Equal(t, testutil.FixedTime, faces[0].UpdatedAt)
}

func TestValidate(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Metadata: Metadata{Format: Format, Version: FormatVersion},
			Data: Data{
				Themes: []theme.Theme{},
				Cards:  []card.Association{},
				Faces:  []card.CardFace{},
			},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(doc *Document) *Document
		wantErr string
	}{
		{
			name:   "accepts a valid document",
			mutate: func(doc *Document) *Document { return doc },
		},
		{
			name:    "rejects nil",
			mutate:  func(doc *Document) *Document { return nil },
			wantErr: "document is empty",
		},
		{
			name: "rejects an unknown format",
			mutate: func(doc *Document) *Document {
				doc.Metadata.Format = "other-backup"
				return doc
			},
			wantErr: "unsupported format",
		},
		{
			name: "rejects missing themes",
			mutate: func(doc *Document) *Document {
				doc.Data.Themes = nil
				return doc
			},
			wantErr: "data.themes array is missing",
		},
		{
			name: "rejects missing cards",
			mutate: func(doc *Document) *Document {
				doc.Data.Cards = nil
				return doc
			},
			wantErr: "data.cards array is missing",
		},
		{
			name: "rejects missing faces",
			mutate: func(doc *Document) *Document {
				doc.Data.Faces = nil
				return doc
			},
			wantErr: "data.faces array is missing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.mutate(valid()))
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("parses a valid document", func(t *testing.T) {
		input := `{
			"metadata": {"version": "1.0", "format": "milka-backup"},
			"data": {"themes": [], "cards": [], "faces": []}
		}`
		doc, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, Format, doc.Metadata.Format)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := Parse(strings.NewReader("{not json"))
		var formatErr *FormatError
		assert.ErrorAs(t, err, &formatErr)
	})
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("merge")
	require.NoError(t, err)
	assert.Equal(t, ModeMerge, mode)

	mode, err = ParseMode("replace")
	require.NoError(t, err)
	assert.Equal(t, ModeReplace, mode)

	_, err = ParseMode("upsert")
	assert.Error(t, err)
}
