package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authService "github.com/allisson/cardvault/internal/auth/service"
	"github.com/allisson/cardvault/internal/auth/usecase"
	apperrors "github.com/allisson/cardvault/internal/errors"
	userDomain "github.com/allisson/cardvault/internal/user/domain"
	userMocks "github.com/allisson/cardvault/internal/user/usecase/mocks"
)

var signingKey = []byte("0123456789abcdef0123456789abcdef")

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Compare(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type authFixture struct {
	userRepo     *userMocks.MockUserRepository
	passwords    *mockPasswordService
	tokenService authService.TokenService
	uc           usecase.AuthUseCase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokenService, err := authService.NewTokenService(signingKey, time.Hour)
	require.NoError(t, err)

	f := &authFixture{
		userRepo:     &userMocks.MockUserRepository{},
		passwords:    &mockPasswordService{},
		tokenService: tokenService,
	}
	f.uc = usecase.NewAuthUseCase(f.userRepo, f.passwords, f.tokenService)
	return f
}

func newAdmin() *userDomain.User {
	return &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "root",
		PasswordHash: "hashed",
		Roles:        []string{authDomain.RoleAdmin, authDomain.RoleUser},
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture(t)
		user := newAdmin()
		f.userRepo.On("GetByUsername", ctx, "root").Return(user, nil)
		f.passwords.On("Compare", "S3cret!pass", "hashed").Return(true)

		output, err := f.uc.Login(ctx, "root", "S3cret!pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, output.Identity.UserID)
		assert.True(t, f.tokenService.Verify(output.AccessToken))

		subject, err := f.tokenService.Subject(output.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "root", subject)

		roles, err := f.tokenService.Roles(output.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADMIN", "USER"}, roles)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("GetByUsername", ctx, "root").Return(newAdmin(), nil)
		f.passwords.On("Compare", "wrong", "hashed").Return(false)

		output, err := f.uc.Login(ctx, "root", "wrong")
		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("GetByUsername", ctx, "ghost").Return(nil, userDomain.ErrUserNotFound)

		_, err := f.uc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_EmptyCredentials", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Login(ctx, "", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		f.userRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Error_Repository", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.On("GetByUsername", ctx, "root").Return(nil, errors.New("connection refused"))

		_, err := f.uc.Login(ctx, "root", "pass")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture(t)
		user := newAdmin()
		token, err := f.tokenService.Issue("root", []string{"USER"})
		require.NoError(t, err)
		f.userRepo.On("GetByUsername", ctx, "root").Return(user, nil)

		identity, err := f.uc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, "root", identity.Username)
		assert.Equal(t, []string{"USER"}, identity.Roles)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		f := newAuthFixture(t)

		identity, err := f.uc.Authenticate(ctx, "not-a-token")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		f.userRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Error_SignedWithOtherKey", func(t *testing.T) {
		f := newAuthFixture(t)
		other, err := authService.NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		require.NoError(t, err)
		token, err := other.Issue("root", []string{"ADMIN"})
		require.NoError(t, err)

		_, err = f.uc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		f := newAuthFixture(t)
		past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
		issuer, err := authService.NewTokenServiceWithClock(signingKey, time.Hour, past)
		require.NoError(t, err)
		token, err := issuer.Issue("root", []string{"ADMIN"})
		require.NoError(t, err)

		_, err = f.uc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_UserDeleted", func(t *testing.T) {
		f := newAuthFixture(t)
		token, err := f.tokenService.Issue("gone", []string{"USER"})
		require.NoError(t, err)
		f.userRepo.On("GetByUsername", ctx, "gone").Return(nil, userDomain.ErrUserNotFound)

		_, err = f.uc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})
}
