package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	newRepo := func() *mockUserRepo {
		return &mockUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrUserNotFound
			},
			createFn: func(ctx context.Context, u *domain.User) error {
				u.ID = 9
				return nil
			},
		}
	}

	t.Run("success sends welcome email", func(t *testing.T) {
		emails := &mockEmailService{}
		svc := NewUserService(newRepo(), &mockHasher{}, &mockIssuer{}, time.Hour, emails, testLogger(), time.Second)

		user, err := svc.SignUp(ctx, domain.SignUpRequest{
			Email:     "Ada@Campus.EDU",
			Password:  "Secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		require.NoError(t, err)
		require.Equal(t, int64(9), user.ID)
		require.Equal(t, "ada@campus.edu", user.Email)
		require.Equal(t, "hash(salt+Secret123)", user.PasswordHash)
		require.Len(t, emails.welcomes, 1)
	})

	t.Run("welcome email failure does not fail signup", func(t *testing.T) {
		emails := &mockEmailService{err: context.DeadlineExceeded}
		svc := NewUserService(newRepo(), &mockHasher{}, &mockIssuer{}, time.Hour, emails, testLogger(), time.Second)

		_, err := svc.SignUp(ctx, domain.SignUpRequest{
			Email:     "ada@campus.edu",
			Password:  "Secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newRepo()
		repo.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		}
		svc := NewUserService(repo, &mockHasher{}, &mockIssuer{}, time.Hour, nil, testLogger(), time.Second)

		_, err := svc.SignUp(ctx, domain.SignUpRequest{
			Email:     "taken@campus.edu",
			Password:  "Secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name      string
			req       domain.SignUpRequest
			wantField string
		}{
			{"bad email", domain.SignUpRequest{Email: "not-an-email", Password: "Secret123", FirstName: "Ada", LastName: "Lovelace"}, "email"},
			{"short password", domain.SignUpRequest{Email: "a@b.co", Password: "Ab1", FirstName: "Ada", LastName: "Lovelace"}, "password"},
			{"no uppercase", domain.SignUpRequest{Email: "a@b.co", Password: "secret123", FirstName: "Ada", LastName: "Lovelace"}, "password"},
			{"no digit", domain.SignUpRequest{Email: "a@b.co", Password: "SecretPass", FirstName: "Ada", LastName: "Lovelace"}, "password"},
			{"short first name", domain.SignUpRequest{Email: "a@b.co", Password: "Secret123", FirstName: "A", LastName: "Lovelace"}, "first_name"},
			{"short last name", domain.SignUpRequest{Email: "a@b.co", Password: "Secret123", FirstName: "Ada", LastName: "L"}, "last_name"},
		}

		svc := NewUserService(newRepo(), &mockHasher{}, &mockIssuer{}, time.Hour, nil, testLogger(), time.Second)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.SignUp(ctx, tt.req)
				verrs, ok := domain.AsValidationErrors(err)
				require.True(t, ok)
				require.Contains(t, verrs, tt.wantField)
			})
		}
	})
}

func TestUserService_LogIn(t *testing.T) {
	ctx := context.Background()

	repoWith := func(user *domain.User) *mockUserRepo {
		return &mockUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				if user != nil && email == user.Email {
					return user, nil
				}
				return nil, domain.ErrUserNotFound
			},
		}
	}

	t.Run("success returns token and updates last login", func(t *testing.T) {
		user := &domain.User{ID: 9, Email: "ada@campus.edu", PasswordHash: "h", Salt: "s"}
		repo := repoWith(user)
		var updated bool
		repo.updateLastLoginFn = func(ctx context.Context, id int64, at time.Time) error {
			require.Equal(t, int64(9), id)
			updated = true
			return nil
		}
		svc := NewUserService(repo, &mockHasher{}, &mockIssuer{token: "jwt-token"}, time.Hour, nil, testLogger(), time.Second)

		token, got, err := svc.LogIn(ctx, " Ada@Campus.edu ", "Secret123")
		require.NoError(t, err)
		require.Equal(t, "jwt-token", token)
		require.Equal(t, int64(9), got.ID)
		require.NotNil(t, got.LastLogin)
		require.True(t, updated)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc := NewUserService(repoWith(nil), &mockHasher{}, &mockIssuer{}, time.Hour, nil, testLogger(), time.Second)
		_, _, err := svc.LogIn(ctx, "ghost@campus.edu", "Secret123")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		user := &domain.User{ID: 9, Email: "ada@campus.edu"}
		svc := NewUserService(repoWith(user), &mockHasher{compareErr: domain.ErrInvalidCredentials}, &mockIssuer{}, time.Hour, nil, testLogger(), time.Second)
		_, _, err := svc.LogIn(ctx, "ada@campus.edu", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
