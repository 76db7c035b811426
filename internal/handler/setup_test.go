package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xxxsen/bookies/internal/handler"
	"github.com/xxxsen/bookies/internal/middleware"
	"github.com/xxxsen/bookies/internal/service"
	"github.com/xxxsen/bookies/internal/testutil"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"message"`
	Data json.RawMessage `json:"data"`
}

type testEnv struct {
	router http.Handler
	users  *testutil.MemUserStore
	books  *testutil.MemBookStore
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	books := testutil.NewMemBookStore()
	env := setupRouterWithBooks(t, books)
	env.books = books
	return env
}

func setupRouterWithBooks(t *testing.T, books service.BookStore) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := testutil.NewMemUserStore()
	authService := service.NewAuthService(users, []byte("test-secret"), time.Hour, service.WithHashCost(bcrypt.MinCost))
	bookService := service.NewBookService(books)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.CORS(nil))
	handler.RegisterRoutes(engine, handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService),
		Books:    handler.NewBookHandler(bookService),
		Home:     handler.NewHomeHandler(),
		Verifier: authService,
	})
	return &testEnv{router: engine, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	var env envelope
	if resp.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(resp.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	}
	return resp, env
}

func (e *testEnv) signupAndLogin(t *testing.T, email string) string {
	t.Helper()
	resp, _ := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": "p"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp, env := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "p"})
	require.Equal(t, http.StatusOK, resp.Code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
