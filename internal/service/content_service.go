package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/ids"
	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

// ErrForbidden marks an ownership violation: the item exists but belongs to
// a different user. Distinct from not-found by design.
var ErrForbidden = errors.New("not the owner of this resource")

type ContentStore interface {
	Create(ctx context.Context, item models.ContentItem) error
	GetByID(ctx context.Context, id string) (models.ContentItem, error)
	ListByUser(ctx context.Context, userID string) ([]models.ContentItem, error)
	Delete(ctx context.Context, id string) error
	CountByType(ctx context.Context, contentType models.ContentType) (int64, error)
}

type ContentService struct {
	items ContentStore
	log   zerolog.Logger
}

func NewContentService(items ContentStore, log zerolog.Logger) *ContentService {
	return &ContentService{items: items, log: log}
}

// List returns the caller's items, newest first.
func (s *ContentService) List(ctx context.Context, userID string) ([]models.ContentItem, error) {
	return s.items.ListByUser(ctx, userID)
}

type CreateContentInput struct {
	Type             string
	Prompt           string
	GeneratedContent string
}

func (s *ContentService) Create(ctx context.Context, userID string, input CreateContentInput) (models.ContentItem, error) {
	var verrs validate.Errors
	if !models.ContentType(input.Type).Valid() {
		verrs = append(verrs, validate.FieldError{Field: "type", Message: "type is required"})
	}
	if input.Prompt == "" {
		verrs = append(verrs, validate.FieldError{Field: "prompt", Message: "prompt is required"})
	}
	if input.GeneratedContent == "" {
		verrs = append(verrs, validate.FieldError{Field: "generatedContent", Message: "generated content is required"})
	}
	if err := verrs.OrNil(); err != nil {
		return models.ContentItem{}, err
	}

	item := models.ContentItem{
		ID:               ids.New(),
		UserID:           userID,
		Type:             models.ContentType(input.Type),
		Prompt:           input.Prompt,
		GeneratedContent: input.GeneratedContent,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.items.Create(ctx, item); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// Delete removes an item after the ownership check. Absent items (including
// structurally invalid ids) surface as not found; foreign items as
// ErrForbidden with the item left intact.
func (s *ContentService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrForbidden
	}
	return s.items.Delete(ctx, itemID)
}
