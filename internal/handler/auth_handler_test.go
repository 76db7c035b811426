package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bookies/internal/pkg/errcode"
)

func TestSignupTwiceFails(t *testing.T) {
	env := setupRouter(t)
	body := map[string]string{"email": "a@x.com", "password": "p"}

	resp, _ := env.do(t, http.MethodPost, "/auth/signup", "", body)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotContains(t, resp.Body.String(), "password")

	resp, out := env.do(t, http.MethodPost, "/auth/signup", "", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, errcode.ErrConflict, out.Code)
	require.Contains(t, out.Msg, "already exists")
	require.Equal(t, 1, env.users.Count())
}

func TestLoginFailures(t *testing.T) {
	env := setupRouter(t)
	resp, out := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@x.com", "password": "p"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, errcode.ErrNoAccount, out.Code)

	env.signupAndLogin(t, "a@x.com")
	resp, out = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "nope"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, errcode.ErrPasswordMismatch, out.Code)
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	env := setupRouter(t)
	resp, out := env.do(t, http.MethodPost, "/auth/signup", "", "not an object")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, errcode.ErrInvalid, out.Code)
}

func TestBanner(t *testing.T) {
	env := setupRouter(t)
	resp, _ := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Bookies App", resp.Body.String())
}
