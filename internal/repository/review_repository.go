package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanisinghay/Epsilon/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, review models.Review) error {
	const query = `
		INSERT INTO reviews (id, user_id, name, rating, comment, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.Name,
		review.Rating,
		review.Comment,
		review.IsApproved,
		review.CreatedAt,
	)
	return err
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID string) (models.Review, error) {
	const query = `
		SELECT id, user_id, name, rating, comment, is_approved, created_at
		FROM reviews WHERE user_id = $1
	`
	row := r.pool.QueryRow(ctx, query, userID)
	var review models.Review
	if err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.Name,
		&review.Rating,
		&review.Comment,
		&review.IsApproved,
		&review.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return review, nil
}

func (r *ReviewRepository) ListApproved(ctx context.Context) ([]models.Review, error) {
	const query = `
		SELECT id, user_id, name, rating, comment, is_approved, created_at
		FROM reviews
		WHERE is_approved
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Name,
			&review.Rating,
			&review.Comment,
			&review.IsApproved,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
