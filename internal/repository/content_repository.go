package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanisinghay/Epsilon/internal/models"
)

var ErrContentNotFound = errors.New("content not found")

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) Create(ctx context.Context, item models.ContentItem) error {
	const query = `
		INSERT INTO content_items (id, user_id, type, prompt, generated_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.Type,
		item.Prompt,
		item.GeneratedContent,
		item.CreatedAt,
	)
	return err
}

func (r *ContentRepository) GetByID(ctx context.Context, id string) (models.ContentItem, error) {
	const query = `
		SELECT id, user_id, type, prompt, generated_content, created_at
		FROM content_items WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var item models.ContentItem
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Type,
		&item.Prompt,
		&item.GeneratedContent,
		&item.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContentItem{}, ErrContentNotFound
		}
		return models.ContentItem{}, err
	}
	return item, nil
}

func (r *ContentRepository) ListByUser(ctx context.Context, userID string) ([]models.ContentItem, error) {
	const query = `
		SELECT id, user_id, type, prompt, generated_content, created_at
		FROM content_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Prompt,
			&item.GeneratedContent,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) CountByType(ctx context.Context, contentType models.ContentType) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM content_items WHERE type = $1`, contentType,
	).Scan(&count)
	return count, err
}
