package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pocket-auth/internal/domain"
	apihttp "pocket-auth/internal/http"
	"pocket-auth/internal/service"
)

type memUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *memUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func newTestServer(t *testing.T) (*httptest.Server, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	repo := newMemUserRepo()
	userSvc := service.NewUserService(logger, repo)
	jwtSvc := service.NewJWTService("test-secret", 30*24*time.Hour)
	authH := apihttp.NewAuthHandler(logger, userSvc, jwtSvc)
	cors := apihttp.NewCORSGate(nil)
	router := apihttp.NewRouter(logger, cors, authH, jwtSvc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repo
}

func registerUser(t *testing.T, api *APIClient) domain.PublicUser {
	t.Helper()
	user, err := api.Register(context.Background(), "a@b.com", "longenough1", "A")
	require.NoError(t, err)
	return user
}

func TestAPIClient_EndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	ctx := context.Background()

	user := registerUser(t, api)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "A", user.Name)
	require.NotEmpty(t, user.ID)

	token, loggedIn, err := api.Login(ctx, "a@b.com", "longenough1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, loggedIn.ID)

	me, err := api.Me(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)

	// Token truncado en un carácter: 401 invalid_token.
	_, err = api.Me(ctx, token[:len(token)-1])
	apiErr, ok := IsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "invalid_token", apiErr.Code)
}

func TestAPIClient_RegisterDuplicate(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)

	registerUser(t, api)
	_, err := api.Register(context.Background(), "A@B.com", "longenough1", "")
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "email_taken", apiErr.Code)
}

func TestSession_BootWithAcceptedToken(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	ctx := context.Background()

	user := registerUser(t, api)
	token, _, err := api.Login(ctx, "a@b.com", "longenough1")
	require.NoError(t, err)

	storage := NewMemoryTokenStorage()
	require.NoError(t, storage.Save(token))

	session := NewSession(api, storage, zap.NewNop())
	require.True(t, session.Loading())

	session.Boot(ctx)

	require.False(t, session.Loading())
	got, ok := session.User()
	require.True(t, ok)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, token, session.Token())
}

func TestSession_BootWithRejectedToken(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)

	storage := NewMemoryTokenStorage()
	require.NoError(t, storage.Save("garbage-token"))

	session := NewSession(api, storage, zap.NewNop())
	session.Boot(context.Background())

	require.False(t, session.Loading())
	_, ok := session.User()
	require.False(t, ok)
	require.Empty(t, session.Token())

	stored, err := storage.Load()
	require.NoError(t, err)
	require.Empty(t, stored, "rejected token must be cleared from storage")
}

func TestSession_BootWithoutToken(t *testing.T) {
	srv, _ := newTestServer(t)
	session := NewSession(NewAPIClient(srv.URL), NewMemoryTokenStorage(), zap.NewNop())

	session.Boot(context.Background())

	require.False(t, session.Loading())
	_, ok := session.User()
	require.False(t, ok)
}

func TestSession_BootWithUnreachableServer(t *testing.T) {
	srv, _ := newTestServer(t)
	url := srv.URL
	srv.Close()

	storage := NewMemoryTokenStorage()
	require.NoError(t, storage.Save("some-token"))

	session := NewSession(NewAPIClient(url), storage, zap.NewNop())
	session.Boot(context.Background())

	// Fallo de red: estado deslogueado definido, sin pánico ni error.
	require.False(t, session.Loading())
	_, ok := session.User()
	require.False(t, ok)
}

func TestSession_SignInPersistsToken(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	registerUser(t, api)

	storage := NewMemoryTokenStorage()
	session := NewSession(api, storage, zap.NewNop())

	require.NoError(t, session.SignIn(context.Background(), "a@b.com", "longenough1"))

	user, ok := session.User()
	require.True(t, ok)
	require.Equal(t, "a@b.com", user.Email)

	stored, err := storage.Load()
	require.NoError(t, err)
	require.Equal(t, session.Token(), stored)
}

func TestSession_SignInBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	registerUser(t, api)

	session := NewSession(api, NewMemoryTokenStorage(), zap.NewNop())

	err := session.SignIn(context.Background(), "a@b.com", "wrongpassword")
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.NotEmpty(t, apiErr.Message)

	_, logged := session.User()
	require.False(t, logged)
}

func TestSession_SignOutIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	registerUser(t, api)

	session := NewSession(api, NewMemoryTokenStorage(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, session.SignIn(ctx, "a@b.com", "longenough1"))
	require.NoError(t, session.SignOut(ctx))
	require.Empty(t, session.Token())

	// Repetir el sign-out no debe fallar ni cambiar el estado.
	require.NoError(t, session.SignOut(ctx))
	_, ok := session.User()
	require.False(t, ok)
}

func TestSession_DoInjectsBearer(t *testing.T) {
	srv, _ := newTestServer(t)
	api := NewAPIClient(srv.URL)
	registerUser(t, api)

	session := NewSession(api, NewMemoryTokenStorage(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, session.SignIn(ctx, "a@b.com", "longenough1"))

	res, err := session.Do(ctx, http.MethodGet, "/api/auth/me", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Sin sesión el mismo request responde 401.
	require.NoError(t, session.SignOut(ctx))
	res2, err := session.Do(ctx, http.MethodGet, "/api/auth/me", nil)
	require.NoError(t, err)
	defer res2.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res2.StatusCode)
}
