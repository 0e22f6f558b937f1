// Package backup provides export and import reconciliation of the full data
// set as a portable "milka-backup" JSON document.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/theme"
	"github.com/lazycat-apps/milka/internal/version"
)

// Format is the document format marker; documents carrying any other value
// are rejected before processing.
const Format = "milka-backup"

// FormatVersion is the document schema version written on export.
const FormatVersion = "1.0"

// DataCount records per-collection totals in the document metadata.
type DataCount struct {
	Themes int `json:"themes"`
	Cards  int `json:"cards"`
	Faces  int `json:"faces"`
}

// Metadata describes a backup document.
type Metadata struct {
	Version     string    `json:"version"`
	Format      string    `json:"format"`
	ExportTime  time.Time `json:"exportTime"`
	AppVersion  string    `json:"appVersion"`
	Description string    `json:"description,omitempty"`
	DataCount   DataCount `json:"dataCount"`
}

// Data holds the three exported collections. Cards are association records;
// their name follows the interchange format, not the aggregated card view.
type Data struct {
	Themes []theme.Theme      `json:"themes"`
	Cards  []card.Association `json:"cards"`
	Faces  []card.CardFace    `json:"faces"`
}

// Document is the complete portable backup. All ids and timestamps are
// preserved verbatim so that re-import in replace mode is idempotent.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Data     Data     `json:"data"`
}

// FormatError reports that a document failed structural validation. It is
// raised before any write occurs.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Validate checks the document structure. The data section must contain
// themes, cards, and faces arrays, even if empty.
func Validate(doc *Document) error {
	if doc == nil {
		return &FormatError{Message: "document is empty"}
	}
	if doc.Metadata.Format != Format {
		return &FormatError{Message: fmt.Sprintf("unsupported format %q, expected %q", doc.Metadata.Format, Format)}
	}
	if doc.Data.Themes == nil {
		return &FormatError{Message: "data.themes array is missing"}
	}
	if doc.Data.Cards == nil {
		return &FormatError{Message: "data.cards array is missing"}
	}
	if doc.Data.Faces == nil {
		return &FormatError{Message: "data.faces array is missing"}
	}
	return nil
}

// Parse decodes and validates a backup document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &FormatError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Mode selects the import reconciliation policy.
type Mode string

const (
	// ModeMerge imports only records whose id is not already present.
	ModeMerge Mode = "merge"
	// ModeReplace wipes all existing records before inserting the document.
	ModeReplace Mode = "replace"
)

// ParseMode converts a user-provided mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMerge, ModeReplace:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown import mode %q, expected %q or %q", s, ModeMerge, ModeReplace)
	}
}

// CategoryStats tallies per-record outcomes for one collection.
type CategoryStats struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// Stats tallies per-record outcomes per collection.
type Stats struct {
	Faces  CategoryStats `json:"faces"`
	Themes CategoryStats `json:"themes"`
	Cards  CategoryStats `json:"cards"`
}

// TotalImported sums imported records across collections.
func (s Stats) TotalImported() int {
	return s.Faces.Imported + s.Themes.Imported + s.Cards.Imported
}

// TotalSkipped sums skipped records across collections.
func (s Stats) TotalSkipped() int {
	return s.Faces.Skipped + s.Themes.Skipped + s.Cards.Skipped
}

// TotalErrors sums errored records across collections.
func (s Stats) TotalErrors() int {
	return s.Faces.Errors + s.Themes.Errors + s.Cards.Errors
}

// Exporter reads the three stores and produces a backup document.
type Exporter struct {
	themes       theme.ThemeRepository
	faces        card.FaceRepository
	associations card.AssociationRepository
	now          func() time.Time
}

// NewExporter creates a new Exporter.
func NewExporter(themes theme.ThemeRepository, faces card.FaceRepository, associations card.AssociationRepository) *Exporter {
	return &Exporter{
		themes:       themes,
		faces:        faces,
		associations: associations,
		now:          time.Now,
	}
}

// Export reads all data and builds a document with ids and timestamps
// preserved verbatim.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	themes, err := e.themes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("themes.FindAll() > %w", err)
	}
	associations, err := e.associations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("associations.FindAll() > %w", err)
	}
	faces, err := e.faces.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("faces.FindAll() > %w", err)
	}

	if themes == nil {
		themes = []theme.Theme{}
	}
	if associations == nil {
		associations = []card.Association{}
	}
	if faces == nil {
		faces = []card.CardFace{}
	}

	return &Document{
		Metadata: Metadata{
			Version:     FormatVersion,
			Format:      Format,
			ExportTime:  e.now().UTC(),
			AppVersion:  version.Version,
			Description: "Milka full data backup",
			DataCount: DataCount{
				Themes: len(themes),
				Cards:  len(associations),
				Faces:  len(faces),
			},
		},
		Data: Data{
			Themes: themes,
			Cards:  associations,
			Faces:  faces,
		},
	}, nil
}

// Importer reconciles a backup document against the stores.
type Importer struct {
	themes       theme.ThemeRepository
	faces        card.FaceRepository
	associations card.AssociationRepository
	writer       io.Writer
	now          func() time.Time
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(themes theme.ThemeRepository, faces card.FaceRepository, associations card.AssociationRepository, writer io.Writer) *Importer {
	return &Importer{
		themes:       themes,
		faces:        faces,
		associations: associations,
		writer:       writer,
		now:          time.Now,
	}
}

// Import reconciles the document against existing data under the given mode.
// Structural validation happens before any write. Faces are processed first
// because associations reference them, then themes, then associations.
// Individual record failures are tallied and never abort the run; once
// processing starts it runs to completion.
func (imp *Importer) Import(ctx context.Context, doc *Document, mode Mode) (*Stats, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	if mode == ModeReplace {
		if err := imp.wipe(ctx); err != nil {
			return nil, fmt.Errorf("wipe() > %w", err)
		}
	}

	var stats Stats
	imp.importFaces(ctx, doc.Data.Faces, mode, &stats)
	imp.importThemes(ctx, doc.Data.Themes, mode, &stats)
	imp.importAssociations(ctx, doc.Data.Cards, mode, &stats)
	return &stats, nil
}

func (imp *Importer) wipe(ctx context.Context) error {
	associations, err := imp.associations.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("associations.FindAll() > %w", err)
	}
	associationIDs := make([]string, len(associations))
	for i, a := range associations {
		associationIDs[i] = a.ID
	}
	if err := imp.associations.Remove(ctx, associationIDs...); err != nil {
		return fmt.Errorf("associations.Remove() > %w", err)
	}

	faces, err := imp.faces.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("faces.FindAll() > %w", err)
	}
	faceIDs := make([]string, len(faces))
	for i, f := range faces {
		faceIDs[i] = f.ID
	}
	if err := imp.faces.Remove(ctx, faceIDs...); err != nil {
		return fmt.Errorf("faces.Remove() > %w", err)
	}

	themes, err := imp.themes.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("themes.FindAll() > %w", err)
	}
	themeIDs := make([]string, len(themes))
	for i, t := range themes {
		themeIDs[i] = t.ID
	}
	if err := imp.themes.Remove(ctx, themeIDs...); err != nil {
		return fmt.Errorf("themes.Remove() > %w", err)
	}
	return nil
}

func (imp *Importer) importFaces(ctx context.Context, faces []card.CardFace, mode Mode, stats *Stats) {
	for _, f := range faces {
		if f.ID == "" || f.MainText == "" {
			fmt.Fprintf(imp.writer, "  [ERROR]  face %q is missing an id or main_text\n", f.ID)
			stats.Faces.Errors++
			continue
		}

		if mode == ModeMerge {
			existing, err := imp.faces.FindByIDs(ctx, []string{f.ID})
			if err != nil {
				fmt.Fprintf(imp.writer, "  [ERROR]  face %s: %v\n", f.ID, err)
				stats.Faces.Errors++
				continue
			}
			if len(existing) > 0 {
				fmt.Fprintf(imp.writer, "  [SKIP]  face %s\n", f.ID)
				stats.Faces.Skipped++
				continue
			}
		}

		imp.normalizeFace(&f)
		if err := imp.faces.Upsert(ctx, f); err != nil {
			fmt.Fprintf(imp.writer, "  [ERROR]  face %s: %v\n", f.ID, err)
			stats.Faces.Errors++
			continue
		}
		fmt.Fprintf(imp.writer, "  [NEW]  face %s\n", f.ID)
		stats.Faces.Imported++
	}
}

func (imp *Importer) importThemes(ctx context.Context, themes []theme.Theme, mode Mode, stats *Stats) {
	for _, t := range themes {
		if t.ID == "" || t.Title == "" {
			fmt.Fprintf(imp.writer, "  [ERROR]  theme %q is missing an id or title\n", t.ID)
			stats.Themes.Errors++
			continue
		}

		if mode == ModeMerge {
			existing, err := imp.themes.FindByID(ctx, t.ID)
			if err != nil {
				fmt.Fprintf(imp.writer, "  [ERROR]  theme %s: %v\n", t.ID, err)
				stats.Themes.Errors++
				continue
			}
			if existing != nil {
				fmt.Fprintf(imp.writer, "  [SKIP]  theme %s (%s)\n", t.ID, t.Title)
				stats.Themes.Skipped++
				continue
			}
		}

		imp.normalizeTheme(&t)
		if err := imp.themes.Upsert(ctx, t); err != nil {
			fmt.Fprintf(imp.writer, "  [ERROR]  theme %s: %v\n", t.ID, err)
			stats.Themes.Errors++
			continue
		}
		fmt.Fprintf(imp.writer, "  [NEW]  theme %s (%s)\n", t.ID, t.Title)
		stats.Themes.Imported++
	}
}

func (imp *Importer) importAssociations(ctx context.Context, associations []card.Association, mode Mode, stats *Stats) {
	for _, a := range associations {
		if a.ID == "" || a.ThemeID == "" || a.FrontFaceID == "" || a.BackFaceID == "" {
			fmt.Fprintf(imp.writer, "  [ERROR]  card %q is missing an id or reference\n", a.ID)
			stats.Cards.Errors++
			continue
		}

		if mode == ModeMerge {
			existing, err := imp.associations.FindByID(ctx, a.ID)
			if err != nil {
				fmt.Fprintf(imp.writer, "  [ERROR]  card %s: %v\n", a.ID, err)
				stats.Cards.Errors++
				continue
			}
			if existing != nil {
				fmt.Fprintf(imp.writer, "  [SKIP]  card %s\n", a.ID)
				stats.Cards.Skipped++
				continue
			}
		}

		if a.CreatedAt.IsZero() {
			a.CreatedAt = imp.now().UTC()
		}
		if err := imp.associations.Upsert(ctx, a); err != nil {
			fmt.Fprintf(imp.writer, "  [ERROR]  card %s: %v\n", a.ID, err)
			stats.Cards.Errors++
			continue
		}
		fmt.Fprintf(imp.writer, "  [NEW]  card %s\n", a.ID)
		stats.Cards.Imported++
	}
}

func (imp *Importer) normalizeFace(f *card.CardFace) {
	if f.Keywords == nil {
		f.Keywords = card.Keywords{}
	}
	now := imp.now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}
}

func (imp *Importer) normalizeTheme(t *theme.Theme) {
	if t.StyleConfig.Theme == "" {
		t.StyleConfig.Theme = theme.DefaultStyle
	}
	if t.StyleConfig.CustomStyles == nil {
		t.StyleConfig.CustomStyles = map[string]string{}
	}
	now := imp.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
}
