package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanisinghay/Epsilon/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUsernameTaken  = errors.New("username already taken")
)

const userColumns = `
	id, name, username, email, phone, avatar_data, avatar_mime,
	dob, gender, bio, password_hash, created_at, updated_at
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, name, username, email, phone, avatar_data, avatar_mime,
			dob, gender, bio, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.Phone,
		user.AvatarData,
		user.AvatarMIME,
		user.DOB,
		user.Gender,
		user.Bio,
		user.PasswordHash,
	)
	return mapUniqueViolation(err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.AvatarData,
		&user.AvatarMIME,
		&user.DOB,
		&user.Gender,
		&user.Bio,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile replaces the mutable profile attributes; the password hash
// and avatar are updated through their own methods.
func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users
		SET name = $2, username = $3, email = $4, phone = $5,
		    dob = $6, gender = $7, bio = $8, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.Phone,
		user.DOB,
		user.Gender,
		user.Bio,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, data []byte, mime string) error {
	const query = `
		UPDATE users SET avatar_data = $2, avatar_mime = $3, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, data, mime)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_idx":
			return ErrUsernameTaken
		default:
			return ErrDuplicateEmail
		}
	}
	return err
}
