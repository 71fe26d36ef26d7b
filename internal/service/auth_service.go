package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/config"
	"github.com/Shivanisinghay/Epsilon/internal/ids"
	"github.com/Shivanisinghay/Epsilon/internal/models"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
	"github.com/Shivanisinghay/Epsilon/internal/security"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password so login failures do not reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the persistence surface AuthService needs; satisfied by
// repository.UserRepository and by in-memory fakes in tests.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	UpdateAvatar(ctx context.Context, id string, data []byte, mime string) error
}

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Email = validate.NormalizeEmail(input.Email)

	var verrs validate.Errors
	if input.Name == "" {
		verrs = append(verrs, validate.FieldError{Field: "name", Message: "name is required"})
	}
	if !validate.Email(input.Email) {
		verrs = append(verrs, validate.FieldError{Field: "email", Message: "please provide a valid email"})
	}
	if err := validate.Password(input.Password); err != nil {
		var fe validate.FieldError
		if errors.As(err, &fe) {
			verrs = append(verrs, fe)
		}
	}
	if err := verrs.OrNil(); err != nil {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

type LoginResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = validate.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := security.GenerateToken(s.cfg.Security.JWTSecret, user.ID, user.Email, s.cfg.Security.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

type ProfileInput struct {
	Name     string
	Email    string
	Username string
	Phone    string
	DOB      *time.Time
	Gender   string
	Bio      string
	Password string
}

// UpdateProfile mutates the caller's own profile. Omitted optional fields
// keep their stored values; a non-empty Password re-hashes under the same
// strength policy as registration.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (models.User, error) {
	input.Email = validate.NormalizeEmail(input.Email)

	var verrs validate.Errors
	if input.Name == "" {
		verrs = append(verrs, validate.FieldError{Field: "name", Message: "name is required"})
	}
	if !validate.Email(input.Email) {
		verrs = append(verrs, validate.FieldError{Field: "email", Message: "please provide a valid email"})
	}
	if input.Gender != "" && !validate.Gender(input.Gender) {
		verrs = append(verrs, validate.FieldError{Field: "gender", Message: "invalid gender"})
	}
	if err := validate.Bio(input.Bio); err != nil {
		var fe validate.FieldError
		if errors.As(err, &fe) {
			verrs = append(verrs, fe)
		}
	}
	if input.Password != "" {
		if err := validate.Password(input.Password); err != nil {
			var fe validate.FieldError
			if errors.As(err, &fe) {
				verrs = append(verrs, fe)
			}
		}
	}
	if err := verrs.OrNil(); err != nil {
		return models.User{}, err
	}

	if input.Username != "" {
		existing, err := s.users.FindByUsername(ctx, input.Username)
		if err == nil && existing.ID != userID {
			return models.User{}, repository.ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, err
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Username != "" {
		user.Username = &input.Username
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}
	if input.DOB != nil {
		user.DOB = input.DOB
	}
	if input.Gender != "" {
		user.Gender = &input.Gender
	}
	if input.Bio != "" {
		user.Bio = &input.Bio
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return models.User{}, err
	}

	if input.Password != "" {
		hash, err := security.HashPassword(input.Password)
		if err != nil {
			return models.User{}, err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			return models.User{}, err
		}
	}

	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) SaveAvatar(ctx context.Context, userID string, data []byte, mime string) (models.User, error) {
	if err := s.users.UpdateAvatar(ctx, userID, data, mime); err != nil {
		return models.User{}, err
	}
	return s.users.GetByID(ctx, userID)
}

// GetAvatar returns the stored picture bytes and MIME type; callers get
// repository.ErrUserNotFound when either the user or the picture is absent.
func (s *AuthService) GetAvatar(ctx context.Context, userID string) ([]byte, string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if len(user.AvatarData) == 0 || user.AvatarMIME == nil {
		return nil, "", repository.ErrUserNotFound
	}
	return user.AvatarData, *user.AvatarMIME, nil
}
