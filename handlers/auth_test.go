package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/sessions"
	"github.com/jatinbuilds/trio/backend/go-services/internal/users"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/middleware"
)

// fakeToken / fakeVerifier stand in for the OIDC provider.
type fakeToken struct {
	claims map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

type fakeVerifier struct {
	claims map[string]interface{}
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeToken{claims: f.claims}, nil
}

type fakeSessionRepo struct {
	store map[string]*sessions.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *sessions.Session) error {
	if f.store == nil {
		f.store = map[string]*sessions.Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}
func (f *fakeSessionRepo) GetByRefresh(ctx context.Context, refresh string) (*sessions.Session, error) {
	s, ok := f.store[refresh]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (f *fakeSessionRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}
func (f *fakeSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	for k, s := range f.store {
		if s.UserID == userID {
			delete(f.store, k)
		}
	}
	return nil
}

func authRouter(ver middleware.Verifier) (*gin.Engine, *users.MemoryRepository) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxx"

	userRepo := users.NewMemoryRepository()
	usersSvc := users.NewService(userRepo)
	sessionsSvc := sessions.NewService(&fakeSessionRepo{})

	r := gin.New()
	api := r.Group("/api/v1")
	NewAuthHandler(cfg, ver, usersSvc, sessionsSvc).Register(api)
	return r, userRepo
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_ProvisionsUserAndReturnsTokens(t *testing.T) {
	ver := &fakeVerifier{claims: map[string]interface{}{
		"sub":                "oidc-user-1",
		"preferred_username": "jatin",
		"email":              "jatin@example.com",
	}}
	r, userRepo := authRouter(ver)

	w := postJSON(r, "/api/v1/auth/login", gin.H{"idToken": "fake.id.token"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    int    `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, 900, resp.ExpiresIn)

	u, err := userRepo.GetByID(context.Background(), "oidc-user-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "jatin", u.Username)
}

func TestLogin_InvalidToken401(t *testing.T) {
	r, _ := authRouter(&fakeVerifier{err: errors.New("bad signature")})
	w := postJSON(r, "/api/v1/auth/login", gin.H{"idToken": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingBody400(t *testing.T) {
	r, _ := authRouter(&fakeVerifier{claims: map[string]interface{}{"sub": "x"}})
	w := postJSON(r, "/api/v1/auth/login", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshAndLogoutFlow(t *testing.T) {
	ver := &fakeVerifier{claims: map[string]interface{}{
		"sub":   "oidc-user-2",
		"email": "u2@example.com",
	}}
	r, _ := authRouter(ver)

	w := postJSON(r, "/api/v1/auth/login", gin.H{"idToken": "fake"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// refresh issues a new access token
	w2 := postJSON(r, "/api/v1/auth/refresh", gin.H{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, w2.Code)
	require.Contains(t, w2.Body.String(), "accessToken")

	// logout invalidates the refresh token
	w3 := postJSON(r, "/api/v1/auth/logout", gin.H{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, w3.Code)

	w4 := postJSON(r, "/api/v1/auth/refresh", gin.H{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, w4.Code)
}

func TestRefresh_UnknownToken401(t *testing.T) {
	r, _ := authRouter(&fakeVerifier{claims: map[string]interface{}{"sub": "x"}})
	w := postJSON(r, "/api/v1/auth/refresh", gin.H{"refreshToken": "deadbeef"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
