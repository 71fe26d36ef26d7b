package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/config"
	"github.com/Shivanisinghay/Epsilon/internal/repository"
	"github.com/Shivanisinghay/Epsilon/internal/security"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
			TokenTTL:  24 * time.Hour,
		},
	}
}

func newAuthService(users UserStore) *AuthService {
	return NewAuthService(users, testConfig(), zerolog.Nop())
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	svc := newAuthService(users)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "A",
		Email:    "A@X.com",
		Password: "Abcd1234!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "a@x.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.ID == "" {
		t.Error("expected a generated id")
	}

	stored, err := users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	ok, err := security.VerifyPassword("Abcd1234!", stored.PasswordHash)
	if err != nil || !ok {
		t.Error("stored hash should verify against the original password")
	}
	if string(stored.PasswordHash) == "Abcd1234!" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	input := RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	input.Name = "B"
	_, err := svc.Register(ctx, input)
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("second Register error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty name", RegisterInput{Email: "a@x.com", Password: "Abcd1234!"}},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "Abcd1234!"}},
		{"weak password", RegisterInput{Name: "A", Email: "a@x.com", Password: "password"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.input)
			var verrs validate.Errors
			if !errors.As(err, &verrs) {
				t.Errorf("error = %v, want validate.Errors", err)
			}
		})
	}
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "a@x.com", "Wrong5678!")
	_, noSuchUser := svc.Login(ctx, "ghost@x.com", "Abcd1234!")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(noSuchUser, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", noSuchUser)
	}
	if wrongPassword.Error() != noSuchUser.Error() {
		t.Error("failure messages must be indistinguishable")
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(ctx, "a@x.com", "Abcd1234!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := security.ParseToken(result.Token, testConfig().Security.JWTSecret)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != registered.ID || claims.Email != "a@x.com" {
		t.Errorf("claims = %+v, want id %s and email a@x.com", claims, registered.ID)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	b, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "b@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, a.ID, ProfileInput{
		Name:     "A2",
		Email:    "a@x.com",
		Username: "alpha",
		Bio:      "hello",
		Gender:   "Other",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "A2" || updated.Username == nil || *updated.Username != "alpha" {
		t.Errorf("profile not applied: %+v", updated)
	}

	_, err = svc.UpdateProfile(ctx, b.ID, ProfileInput{Name: "B", Email: "b@x.com", Username: "alpha"})
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("error = %v, want ErrUsernameTaken", err)
	}

	// Re-claiming your own username is not a conflict.
	if _, err := svc.UpdateProfile(ctx, a.ID, ProfileInput{Name: "A2", Email: "a@x.com", Username: "alpha"}); err != nil {
		t.Errorf("own username rejected: %v", err)
	}
}

func TestUpdateProfile_OmittedFieldsPreserved(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	if _, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{
		Name:     "A",
		Email:    "a@x.com",
		Username: "alpha",
		Phone:    "+15550100",
		DOB:      &dob,
		Gender:   "Other",
		Bio:      "hello",
	}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	// A later update carrying only name+email must not wipe the rest.
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Name: "A2", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.Name != "A2" {
		t.Errorf("Name = %q, want A2", updated.Name)
	}
	if updated.Username == nil || *updated.Username != "alpha" {
		t.Errorf("Username = %v, want alpha", updated.Username)
	}
	if updated.Phone == nil || *updated.Phone != "+15550100" {
		t.Errorf("Phone = %v, want +15550100", updated.Phone)
	}
	if updated.DOB == nil || !updated.DOB.Equal(dob) {
		t.Errorf("DOB = %v, want %v", updated.DOB, dob)
	}
	if updated.Gender == nil || *updated.Gender != "Other" {
		t.Errorf("Gender = %v, want Other", updated.Gender)
	}
	if updated.Bio == nil || *updated.Bio != "hello" {
		t.Errorf("Bio = %v, want hello", updated.Bio)
	}
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Name: "A", Email: "a@x.com", Password: "weak"}); err == nil {
		t.Error("weak replacement password should be rejected")
	}

	if _, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Name: "A", Email: "a@x.com", Password: "Efgh5678?"}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if _, err := svc.Login(ctx, "a@x.com", "Abcd1234!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
	if _, err := svc.Login(ctx, "a@x.com", "Efgh5678?"); err != nil {
		t.Errorf("new password should log in: %v", err)
	}
}

func TestAvatar_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMemUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "Abcd1234!"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.GetAvatar(ctx, user.ID); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("avatar before upload: error = %v, want ErrUserNotFound", err)
	}

	if _, err := svc.SaveAvatar(ctx, user.ID, []byte{0x89, 0x50, 0x4e, 0x47}, "image/png"); err != nil {
		t.Fatalf("SaveAvatar failed: %v", err)
	}

	data, mime, err := svc.GetAvatar(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetAvatar failed: %v", err)
	}
	if mime != "image/png" || len(data) != 4 {
		t.Errorf("avatar = %d bytes %q", len(data), mime)
	}
}
