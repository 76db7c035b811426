package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/pkg/jwt"
	"github.com/xxxsen/bookies/internal/service"
	"github.com/xxxsen/bookies/internal/testutil"
)

var testSecret = []byte("test-secret")

func newAuth(users *testutil.MemUserStore) *service.AuthService {
	return service.NewAuthService(users, testSecret, time.Hour, service.WithHashCost(bcrypt.MinCost))
}

func TestSignupStoresHashedUser(t *testing.T) {
	users := testutil.NewMemUserStore()
	auth := newAuth(users)

	user, err := auth.Signup(context.Background(), " a@x.com ", "p")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEmpty(t, user.ID)

	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "p", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := testutil.NewMemUserStore()
	auth := newAuth(users)

	_, err := auth.Signup(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	_, err = auth.Signup(context.Background(), "a@x.com", "other")
	require.ErrorIs(t, err, appErr.ErrConflict)
	require.Equal(t, 1, users.Count())
}

func TestSignupRejectsEmptyCredentials(t *testing.T) {
	auth := newAuth(testutil.NewMemUserStore())
	_, err := auth.Signup(context.Background(), "", "p")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = auth.Signup(context.Background(), "a@x.com", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestLogin(t *testing.T) {
	users := testutil.NewMemUserStore()
	auth := newAuth(users)
	_, err := auth.Signup(context.Background(), "a@x.com", "p")
	require.NoError(t, err)

	_, _, err = auth.Login(context.Background(), "b@x.com", "p")
	require.ErrorIs(t, err, appErr.ErrNoAccount)

	_, _, err = auth.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, appErr.ErrPasswordMismatch)

	token, user, err := auth.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)

	claims, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)

	verified, err := auth.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.UserID)
}

func TestVerifyTokenRejectsForeignToken(t *testing.T) {
	auth := newAuth(testutil.NewMemUserStore())
	token, err := jwt.GenerateToken("u", "a@x.com", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	_, err = auth.VerifyToken(token)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}
