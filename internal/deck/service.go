// Package deck provides the mutation service and read-side aggregation over
// the theme, card face, and association stores.
package deck

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/theme"
)

// Content length limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCardTextLength    = 1000
)

// Card is the denormalized view of an association joined with its two faces.
type Card struct {
	ID        string        `json:"id"`
	ThemeID   string        `json:"themeId"`
	Front     card.CardFace `json:"front"`
	Back      card.CardFace `json:"back"`
	SortOrder int           `json:"sortOrder"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ThemeInput carries user-provided theme fields for create and update.
type ThemeInput struct {
	Title         string            `json:"title" validate:"required,max=100"`
	Description   string            `json:"description" validate:"max=500"`
	CoverImageURL string            `json:"cover_image_url"`
	Style         string            `json:"style" validate:"stylename"`
	CustomStyles  map[string]string `json:"custom_styles"`
}

// CardOptions carries optional fields when adding a card.
type CardOptions struct {
	FrontNotes    string
	BackNotes     string
	FrontKeywords []string
	BackKeywords  []string
}

// CardUpdate carries partial updates for an existing card. Nil fields are
// left unchanged.
type CardUpdate struct {
	FrontText  *string
	BackText   *string
	FrontNotes *string
	BackNotes  *string
}

// ListOptions controls theme listing.
type ListOptions struct {
	PinnedFirst bool
}

// Service implements theme and card mutations and the card aggregation.
//
// Multi-store writes are sequenced, not transactional: when a later write
// fails, earlier writes stay in place and the whole logical operation counts
// as failed. CleanupOrphans sweeps up the leftovers.
type Service struct {
	themes       theme.ThemeRepository
	faces        card.FaceRepository
	associations card.AssociationRepository

	validate *validator.Validate
	trans    ut.Translator
	now      func() time.Time
}

// NewService creates a Service over the three repositories.
func NewService(themes theme.ThemeRepository, faces card.FaceRepository, associations card.AssociationRepository) (*Service, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator() > %w", err)
	}
	return &Service{
		themes:       themes,
		faces:        faces,
		associations: associations,
		validate:     validate,
		trans:        trans,
		now:          time.Now,
	}, nil
}

func newID(prefix string) (string, error) {
	id, err := gonanoid.New(12)
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}
	return prefix + "_" + id, nil
}

// CreateTheme validates the input and creates a theme with sort order equal
// to the current theme count.
func (s *Service) CreateTheme(ctx context.Context, input ThemeInput) (*theme.Theme, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, s.toValidationError(err)
	}

	count, err := s.themes.Count(ctx)
	if err != nil {
		return nil, storeErr("themes.Count()", err)
	}

	id, err := newID("theme")
	if err != nil {
		return nil, err
	}

	style := input.Style
	if style == "" {
		style = theme.DefaultStyle
	}
	customStyles := input.CustomStyles
	if customStyles == nil {
		customStyles = map[string]string{}
	}

	now := s.now().UTC()
	t := theme.Theme{
		ID:            id,
		Title:         input.Title,
		Description:   input.Description,
		CoverImageURL: input.CoverImageURL,
		StyleConfig: theme.StyleConfig{
			Theme:        style,
			CustomStyles: customStyles,
		},
		IsOfficial: false,
		SortOrder:  count,
		IsPinned:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.themes.Upsert(ctx, t); err != nil {
		return nil, storeErr("themes.Upsert()", err)
	}
	return &t, nil
}

// Themes lists all themes. With PinnedFirst, pinned themes come before
// unpinned ones, each group keeping its sort order.
func (s *Service) Themes(ctx context.Context, opts ListOptions) ([]theme.Theme, error) {
	themes, err := s.themes.FindAll(ctx)
	if err != nil {
		return nil, storeErr("themes.FindAll()", err)
	}
	if opts.PinnedFirst {
		sort.SliceStable(themes, func(i, j int) bool {
			return themes[i].IsPinned && !themes[j].IsPinned
		})
	}
	return themes, nil
}

// GetTheme returns a theme by id.
func (s *Service) GetTheme(ctx context.Context, themeID string) (*theme.Theme, error) {
	t, err := s.themes.FindByID(ctx, themeID)
	if err != nil {
		return nil, storeErr("themes.FindByID()", err)
	}
	if t == nil {
		return nil, &NotFoundError{Kind: "theme", ID: themeID}
	}
	return t, nil
}

// UpdateTheme validates the input and updates a theme's editable fields.
func (s *Service) UpdateTheme(ctx context.Context, themeID string, input ThemeInput) (*theme.Theme, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, s.toValidationError(err)
	}

	t, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return nil, err
	}

	t.Title = input.Title
	t.Description = input.Description
	if input.CoverImageURL != "" {
		t.CoverImageURL = input.CoverImageURL
	}
	if input.Style != "" {
		t.StyleConfig.Theme = input.Style
	}
	if input.CustomStyles != nil {
		t.StyleConfig.CustomStyles = input.CustomStyles
	}
	t.UpdatedAt = s.now().UTC()

	if err := s.themes.Upsert(ctx, *t); err != nil {
		return nil, storeErr("themes.Upsert()", err)
	}
	return t, nil
}

// TogglePin updates a theme's pinned flag.
func (s *Service) TogglePin(ctx context.Context, themeID string, pinned bool) error {
	t, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return err
	}
	t.IsPinned = pinned
	t.UpdatedAt = s.now().UTC()
	if err := s.themes.Upsert(ctx, *t); err != nil {
		return storeErr("themes.Upsert()", err)
	}
	return nil
}

// UpdateThemeOrder reassigns sort orders as a full replacement: each theme's
// sort order becomes its index in ids.
func (s *Service) UpdateThemeOrder(ctx context.Context, ids []string) error {
	for index, id := range ids {
		t, err := s.themes.FindByID(ctx, id)
		if err != nil {
			return storeErr("themes.FindByID()", err)
		}
		if t == nil {
			return &NotFoundError{Kind: "theme", ID: id}
		}
		t.SortOrder = index
		t.UpdatedAt = s.now().UTC()
		if err := s.themes.Upsert(ctx, *t); err != nil {
			return storeErr("themes.Upsert()", err)
		}
	}
	return nil
}

// DeleteTheme removes a theme, all its associations, and every face those
// associations reference. The theme record is deleted last so that partial
// failure leaves the theme visible but empty rather than its cards ownerless.
func (s *Service) DeleteTheme(ctx context.Context, themeID string) error {
	if _, err := s.GetTheme(ctx, themeID); err != nil {
		return err
	}

	associations, err := s.associations.FindByTheme(ctx, themeID)
	if err != nil {
		return storeErr("associations.FindByTheme()", err)
	}

	if err := s.faces.Remove(ctx, card.FaceIDs(associations)...); err != nil {
		return storeErr("faces.Remove()", err)
	}

	associationIDs := make([]string, len(associations))
	for i, a := range associations {
		associationIDs[i] = a.ID
	}
	if err := s.associations.Remove(ctx, associationIDs...); err != nil {
		return storeErr("associations.Remove()", err)
	}

	if err := s.themes.Remove(ctx, themeID); err != nil {
		return storeErr("themes.Remove()", err)
	}
	return nil
}

// AddCard validates both texts, creates the two faces and then the
// association linking them to the theme. If the association write fails after
// the faces were written, the faces are left behind; the operation as a whole
// is failed and CleanupOrphans reclaims them.
func (s *Service) AddCard(ctx context.Context, themeID, frontText, backText string, opts CardOptions) (*Card, error) {
	if err := validateCardText("front", frontText); err != nil {
		return nil, err
	}
	if err := validateCardText("back", backText); err != nil {
		return nil, err
	}

	if _, err := s.GetTheme(ctx, themeID); err != nil {
		return nil, err
	}

	frontID, err := newID("face")
	if err != nil {
		return nil, err
	}
	backID, err := newID("face")
	if err != nil {
		return nil, err
	}
	associationID, err := newID("assoc")
	if err != nil {
		return nil, err
	}

	frontKeywords := opts.FrontKeywords
	if frontKeywords == nil {
		frontKeywords = card.Keywords{}
	}
	backKeywords := opts.BackKeywords
	if backKeywords == nil {
		backKeywords = card.Keywords{}
	}

	now := s.now().UTC()
	front := card.CardFace{
		ID:        frontID,
		MainText:  frontText,
		Notes:     opts.FrontNotes,
		Keywords:  frontKeywords,
		CreatedAt: now,
		UpdatedAt: now,
	}
	back := card.CardFace{
		ID:        backID,
		MainText:  backText,
		Notes:     opts.BackNotes,
		Keywords:  backKeywords,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.faces.Upsert(ctx, front, back); err != nil {
		return nil, storeErr("faces.Upsert()", err)
	}

	count, err := s.associations.CountByTheme(ctx, themeID)
	if err != nil {
		return nil, storeErr("associations.CountByTheme()", err)
	}

	association := card.Association{
		ID:          associationID,
		ThemeID:     themeID,
		FrontFaceID: frontID,
		BackFaceID:  backID,
		SortOrder:   count,
		CreatedAt:   now,
	}
	if err := s.associations.Upsert(ctx, association); err != nil {
		return nil, storeErr("associations.Upsert()", err)
	}

	return &Card{
		ID:        association.ID,
		ThemeID:   themeID,
		Front:     front,
		Back:      back,
		SortOrder: association.SortOrder,
		CreatedAt: association.CreatedAt,
	}, nil
}

// GetThemeCards joins a theme's associations with their faces, ordered by
// sort order ascending. A missing face is substituted with a placeholder
// carrying only its id, so rendering can proceed.
func (s *Service) GetThemeCards(ctx context.Context, themeID string) ([]Card, error) {
	associations, err := s.associations.FindByTheme(ctx, themeID)
	if err != nil {
		return nil, storeErr("associations.FindByTheme()", err)
	}
	if len(associations) == 0 {
		return []Card{}, nil
	}

	faces, err := s.faces.FindByIDs(ctx, card.FaceIDs(associations))
	if err != nil {
		return nil, storeErr("faces.FindByIDs()", err)
	}
	faceMap := make(map[string]card.CardFace, len(faces))
	for _, f := range faces {
		faceMap[f.ID] = f
	}

	lookup := func(id string) card.CardFace {
		if f, ok := faceMap[id]; ok {
			return f
		}
		return card.CardFace{ID: id}
	}

	cards := make([]Card, len(associations))
	for i, a := range associations {
		cards[i] = Card{
			ID:        a.ID,
			ThemeID:   a.ThemeID,
			Front:     lookup(a.FrontFaceID),
			Back:      lookup(a.BackFaceID),
			SortOrder: a.SortOrder,
			CreatedAt: a.CreatedAt,
		}
	}
	return cards, nil
}

// UpdateCard applies partial updates to a card's faces.
func (s *Service) UpdateCard(ctx context.Context, associationID string, update CardUpdate) (*Card, error) {
	association, err := s.associations.FindByID(ctx, associationID)
	if err != nil {
		return nil, storeErr("associations.FindByID()", err)
	}
	if association == nil {
		return nil, &NotFoundError{Kind: "card", ID: associationID}
	}

	faces, err := s.faces.FindByIDs(ctx, []string{association.FrontFaceID, association.BackFaceID})
	if err != nil {
		return nil, storeErr("faces.FindByIDs()", err)
	}
	faceMap := make(map[string]card.CardFace, len(faces))
	for _, f := range faces {
		faceMap[f.ID] = f
	}

	apply := func(faceID, side string, text, notes *string) error {
		if text == nil && notes == nil {
			return nil
		}
		f, ok := faceMap[faceID]
		if !ok {
			return &NotFoundError{Kind: "card face", ID: faceID}
		}
		if text != nil {
			if err := validateCardText(side, *text); err != nil {
				return err
			}
			f.MainText = *text
		}
		if notes != nil {
			f.Notes = *notes
		}
		f.UpdatedAt = s.now().UTC()
		if err := s.faces.Upsert(ctx, f); err != nil {
			return storeErr("faces.Upsert()", err)
		}
		faceMap[faceID] = f
		return nil
	}

	if err := apply(association.FrontFaceID, "front", update.FrontText, update.FrontNotes); err != nil {
		return nil, err
	}
	if err := apply(association.BackFaceID, "back", update.BackText, update.BackNotes); err != nil {
		return nil, err
	}

	return &Card{
		ID:        association.ID,
		ThemeID:   association.ThemeID,
		Front:     faceMap[association.FrontFaceID],
		Back:      faceMap[association.BackFaceID],
		SortOrder: association.SortOrder,
		CreatedAt: association.CreatedAt,
	}, nil
}

// DeleteCard removes a card's association and both of its faces. Faces are
// owned one-to-one by their association, so deleting the card always deletes
// them, symmetric with DeleteTheme.
func (s *Service) DeleteCard(ctx context.Context, associationID string) error {
	association, err := s.associations.FindByID(ctx, associationID)
	if err != nil {
		return storeErr("associations.FindByID()", err)
	}
	if association == nil {
		return &NotFoundError{Kind: "card", ID: associationID}
	}

	if err := s.associations.Remove(ctx, associationID); err != nil {
		return storeErr("associations.Remove()", err)
	}
	if err := s.faces.Remove(ctx, association.FrontFaceID, association.BackFaceID); err != nil {
		return storeErr("faces.Remove()", err)
	}
	return nil
}

// UpdateCardOrder reassigns a theme's card sort orders as a full replacement:
// each association's sort order becomes its index in ids.
func (s *Service) UpdateCardOrder(ctx context.Context, themeID string, ids []string) error {
	for index, id := range ids {
		association, err := s.associations.FindByID(ctx, id)
		if err != nil {
			return storeErr("associations.FindByID()", err)
		}
		if association == nil || association.ThemeID != themeID {
			return &NotFoundError{Kind: "card", ID: id}
		}
		association.SortOrder = index
		if err := s.associations.Upsert(ctx, *association); err != nil {
			return storeErr("associations.Upsert()", err)
		}
	}
	return nil
}

// StoreStatistics summarizes the three collections.
type StoreStatistics struct {
	Themes struct {
		Total    int `json:"total"`
		Pinned   int `json:"pinned"`
		Official int `json:"official"`
	} `json:"themes"`
	CardFaces struct {
		Total int `json:"total"`
	} `json:"cardFaces"`
	Associations struct {
		Total int `json:"total"`
	} `json:"associations"`
}

// Statistics fetches counts from the three stores. The three reads are
// independent and read-only, so they run concurrently.
func (s *Service) Statistics(ctx context.Context) (*StoreStatistics, error) {
	var (
		wg           sync.WaitGroup
		themes       []theme.Theme
		faces        []card.CardFace
		associations []card.Association
		themesErr    error
		facesErr     error
		assocErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		themes, themesErr = s.themes.FindAll(ctx)
	}()
	go func() {
		defer wg.Done()
		faces, facesErr = s.faces.FindAll(ctx)
	}()
	go func() {
		defer wg.Done()
		associations, assocErr = s.associations.FindAll(ctx)
	}()
	wg.Wait()

	if themesErr != nil {
		return nil, storeErr("themes.FindAll()", themesErr)
	}
	if facesErr != nil {
		return nil, storeErr("faces.FindAll()", facesErr)
	}
	if assocErr != nil {
		return nil, storeErr("associations.FindAll()", assocErr)
	}

	var stats StoreStatistics
	stats.Themes.Total = len(themes)
	for _, t := range themes {
		if t.IsPinned {
			stats.Themes.Pinned++
		}
		if t.IsOfficial {
			stats.Themes.Official++
		}
	}
	stats.CardFaces.Total = len(faces)
	stats.Associations.Total = len(associations)
	return &stats, nil
}

func validateCardText(side, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: side, Message: "card text must not be empty"}
	}
	if len([]rune(text)) > MaxCardTextLength {
		return &ValidationError{
			Field:   side,
			Message: fmt.Sprintf("card text must not exceed %d characters", MaxCardTextLength),
		}
	}
	return nil
}
