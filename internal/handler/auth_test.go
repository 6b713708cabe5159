package handler

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/utils"
)

type fakeUsers map[string]model.User

func (f fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f[repository.NormalizeEmail(email)]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]uint64 // hash -> user
}

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[hash] = userID
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[hash]
	if !ok {
		return 0, repository.ErrTokenInvalid
	}
	return id, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[hash]; !ok {
		return repository.ErrTokenInvalid
	}
	delete(f.tokens, hash)
	return nil
}

// staleTokens answers ValidateRefresh from a snapshot taken before any
// revocation, the view two concurrent refreshes of one token both get.
type staleTokens struct {
	*fakeTokens
	seen map[string]uint64
}

func (s *staleTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	if id, ok := s.seen[hash]; ok {
		return id, nil
	}
	return 0, repository.ErrTokenInvalid
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, id := range f.tokens {
		if id == userID {
			delete(f.tokens, h)
		}
	}
	return nil
}

func newAuthFixture(t *testing.T) (*echo.Echo, *fakeTokens) {
	t.Helper()
	hash, err := utils.HashPassword("correct horse", 4)
	require.NoError(t, err)
	users := fakeUsers{
		"ops@example.com":  {ID: 7, Email: "ops@example.com", PasswordHash: hash, Role: model.RoleOperator, IsActive: true, CreatedAt: testTime},
		"gone@example.com": {ID: 9, Email: "gone@example.com", PasswordHash: hash, Role: model.RoleOperator},
	}
	tokens := &fakeTokens{tokens: map[string]uint64{}}
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7}
	h := NewAuthHandler(cfg, users, tokens, zap.NewNop())

	e := newEcho()
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/refresh", h.Refresh)
	e.POST("/v1/auth/logout", h.Logout)
	e.GET("/v1/me", h.Me, authMW())
	return e, tokens
}

func TestAuth_Login(t *testing.T) {
	e, tokens := newAuthFixture(t)

	rec := call(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "OPS@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[authResp](t, rec)
	assert.Equal(t, uint64(7), resp.User.ID)
	assert.Equal(t, model.RoleOperator, resp.User.Role)
	assert.Len(t, tokens.tokens, 1)

	claims, err := utils.ParseAccessToken(testSecret, resp.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOperator, claims.Role)

	rec = call(t, e, http.MethodGet, "/v1/me", resp.Access.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"email":"ops@example.com","role":"OPERATOR"}`, rec.Body.String())
}

func TestAuth_LoginFailures(t *testing.T) {
	e, _ := newAuthFixture(t)

	cases := []struct {
		name string
		body map[string]string
		want int
	}{
		{"wrong password", map[string]string{"email": "ops@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"email": "who@example.com", "password": "correct horse"}, http.StatusUnauthorized},
		{"inactive", map[string]string{"email": "gone@example.com", "password": "correct horse"}, http.StatusForbidden},
		{"bad email", map[string]string{"email": "ops", "password": "x"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": "ops@example.com"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(t, e, http.MethodPost, "/v1/auth/login", "", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAuth_RefreshRotates(t *testing.T) {
	e, tokens := newAuthFixture(t)
	rec := call(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "ops@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[authResp](t, rec)

	rec = call(t, e, http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": first.Refresh.Token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeBody[authResp](t, rec)
	assert.NotEqual(t, first.Refresh.Token, second.Refresh.Token)
	assert.Len(t, tokens.tokens, 1)

	// the old token was revoked
	rec = call(t, e, http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": first.Refresh.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RefreshTokenExchangedOnce(t *testing.T) {
	e, tokens := newAuthFixture(t)
	rec := call(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "ops@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[authResp](t, rec)

	seen := map[string]uint64{}
	for h, id := range tokens.tokens {
		seen[h] = id
	}
	hash, err := utils.HashPassword("correct horse", 4)
	require.NoError(t, err)
	users := fakeUsers{"ops@example.com": {ID: 7, Email: "ops@example.com", PasswordHash: hash, Role: model.RoleOperator, IsActive: true}}
	h := NewAuthHandler(config.Config{JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7},
		users, &staleTokens{fakeTokens: tokens, seen: seen}, zap.NewNop())
	e2 := newEcho()
	e2.POST("/v1/auth/refresh", h.Refresh)

	body := map[string]string{"refresh_token": first.Refresh.Token}
	rec = call(t, e2, http.MethodPost, "/v1/auth/refresh", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = call(t, e2, http.MethodPost, "/v1/auth/refresh", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Len(t, tokens.tokens, 1)
}

func TestAuth_Logout(t *testing.T) {
	e, tokens := newAuthFixture(t)
	login := func() authResp {
		rec := call(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "ops@example.com", "password": "correct horse"})
		require.Equal(t, http.StatusOK, rec.Code)
		return decodeBody[authResp](t, rec)
	}

	a := login()
	rec := call(t, e, http.MethodPost, "/v1/auth/logout", "", map[string]string{"refresh_token": a.Refresh.Token})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, tokens.tokens)

	rec = call(t, e, http.MethodPost, "/v1/auth/logout", "", map[string]string{"refresh_token": a.Refresh.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	b := login()
	login()
	require.Len(t, tokens.tokens, 2)
	rec = call(t, e, http.MethodPost, "/v1/auth/logout", b.Access.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, tokens.tokens)

	rec = call(t, e, http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = call(t, e, http.MethodPost, "/v1/auth/logout", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
