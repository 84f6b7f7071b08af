package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopProfileRepo(), noopPostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty name", RegisterInput{Email: "a@b.com", Password: "secret1"}},
		{"bad email", RegisterInput{Name: "Alice", Email: "not-an-email", Password: "secret1"}},
		{"short password", RegisterInput{Name: "Alice", Email: "a@b.com", Password: "abc"}},
		{"long password", RegisterInput{Name: "Alice", Email: "a@b.com", Password: strings.Repeat("x", 200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 7}, nil
	}
	svc := NewUserService(userRepo, noopProfileRepo(), noopPostRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "taken@example.com", Password: "secret1",
	})

	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestUserService_Register_Success(t *testing.T) {
	t.Parallel()

	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}
	svc := NewUserService(userRepo, noopProfileRepo(), noopPostRepo())

	user, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "Alice@Example.com ", Password: "secret1",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
	assert.Contains(t, user.Avatar, "s=200")
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "alice@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(userRepo, noopProfileRepo(), noopPostRepo())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(ctx, LoginInput{Email: "alice@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
		assertUnauthorizedError(t, err)
		assert.Contains(t, err.Error(), "Invalid Credentials")
	})

	t.Run("unknown email reports the same message", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
		assertUnauthorizedError(t, err)
		assert.Contains(t, err.Error(), "Invalid Credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, LoginInput{})
		assertValidationError(t, err)
	})
}

func TestUserService_DeleteAccount_Cascades(t *testing.T) {
	t.Parallel()

	var calls []string
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, id uint) error {
		calls = append(calls, "user")
		assert.Equal(t, uint(1), id)
		return nil
	}
	profileRepo := noopProfileRepo()
	profileRepo.deleteByUserIDFn = func(_ context.Context, userID uint) error {
		calls = append(calls, "profile")
		assert.Equal(t, uint(1), userID)
		return nil
	}
	postRepo := noopPostRepo()
	postRepo.deleteByUserIDFn = func(_ context.Context, userID uint) error {
		calls = append(calls, "posts")
		assert.Equal(t, uint(1), userID)
		return nil
	}

	svc := NewUserService(userRepo, profileRepo, postRepo)
	require.NoError(t, svc.DeleteAccount(context.Background(), 1))
	assert.Equal(t, []string{"profile", "posts", "user"}, calls)
}

func TestGravatarURL_NormalizesEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GravatarURL("alice@example.com"), GravatarURL("  ALICE@Example.COM "))
}
