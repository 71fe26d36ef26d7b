package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/ids"
	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

var ErrAlreadyReviewed = errors.New("review already submitted")

type ReviewStore interface {
	Create(ctx context.Context, review models.Review) error
	FindByUser(ctx context.Context, userID string) (models.Review, error)
	ListApproved(ctx context.Context) ([]models.Review, error)
}

type ReviewService struct {
	reviews ReviewStore
	log     zerolog.Logger
}

func NewReviewService(reviews ReviewStore, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, log: log}
}

// ListApproved returns publicly visible reviews, newest first.
func (s *ReviewService) ListApproved(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListApproved(ctx)
}

type SubmitReviewInput struct {
	Rating  int
	Comment string
}

// Submit records one review per user. New reviews start unapproved.
func (s *ReviewService) Submit(ctx context.Context, userID, name string, input SubmitReviewInput) (models.Review, error) {
	var verrs validate.Errors
	if input.Rating < 1 || input.Rating > 5 {
		verrs = append(verrs, validate.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if input.Comment == "" {
		verrs = append(verrs, validate.FieldError{Field: "comment", Message: "comment is required"})
	}
	if err := verrs.OrNil(); err != nil {
		return models.Review{}, err
	}

	if _, err := s.reviews.FindByUser(ctx, userID); err == nil {
		return models.Review{}, ErrAlreadyReviewed
	} else if !errors.Is(err, repository.ErrReviewNotFound) {
		return models.Review{}, err
	}

	review := models.Review{
		ID:        ids.New(),
		UserID:    userID,
		Name:      name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}
