package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charitableio/charitable-api/internal/config"
	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/service/auth"
	"github.com/charitableio/charitable-api/internal/store"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "integration-test-secret-thirty-two!!",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthRegister(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)

	t.Run("created with token pair", func(t *testing.T) {
		t.Parallel()

		accounts := &mockAccountService{
			registerFn: func(_ context.Context, input service.RegisterAccountInput) (*domain.Account, error) {
				account, err := domain.NewAccount(input.Username, input.Password)
				require.NoError(t, err)
				return account, nil
			},
		}
		handler := NewAuthHandler(accounts, jwtService)

		req := httptest.NewRequest(http.MethodPost, "/accounts",
			strings.NewReader(`{"username":"newvolunteer","password":"averylongpassword","email":"v@example.com"}`))
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.AccessToken)
		assert.NotEmpty(t, body.RefreshToken)

		// The issued access token round-trips through validation.
		claims, err := jwtService.ValidateToken(context.Background(), body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, body.AccountID, claims.AccountID)
	})

	t.Run("duplicate username gets 409", func(t *testing.T) {
		t.Parallel()

		accounts := &mockAccountService{
			registerFn: func(_ context.Context, _ service.RegisterAccountInput) (*domain.Account, error) {
				return nil, store.ErrUsernameExists
			},
		}
		handler := NewAuthHandler(accounts, jwtService)

		req := httptest.NewRequest(http.MethodPost, "/accounts",
			strings.NewReader(`{"username":"taken","password":"averylongpassword"}`))
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password gets 400", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mockAccountService{}, jwtService)

		req := httptest.NewRequest(http.MethodPost, "/accounts",
			strings.NewReader(`{"username":"newvolunteer","password":"short"}`))
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthLogin(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		stored := testPlainAccount(t)
		accounts := &mockAccountService{
			authenticateFn: func(_ context.Context, username, password string) (*domain.Account, error) {
				assert.Equal(t, stored.Username, username)
				return stored, nil
			},
		}
		handler := NewAuthHandler(accounts, jwtService)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"justbrowsing","password":"strongpassword1"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, stored.ID, body.AccountID)
		assert.NotEmpty(t, body.AccessToken)
	})

	t.Run("wrong password and unknown username look identical", func(t *testing.T) {
		t.Parallel()

		for name, err := range map[string]error{
			"wrong password":   service.ErrPermissionDenied,
			"unknown username": store.ErrAccountNotFound,
		} {
			accounts := &mockAccountService{
				authenticateFn: func(_ context.Context, _, _ string) (*domain.Account, error) {
					return nil, err
				},
			}
			handler := NewAuthHandler(accounts, jwtService)

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"whoever","password":"whatever1"}`))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, name)
			assert.Equal(t, "Invalid credentials", decodeDetail(t, w), name)
		}
	})
}

func TestAuthRefresh(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)
	handler := NewAuthHandler(&mockAccountService{}, jwtService)

	t.Run("valid refresh token", func(t *testing.T) {
		t.Parallel()

		stored := testPlainAccount(t)
		refresh, err := jwtService.GenerateRefreshToken(context.Background(), stored.ID)
		require.NoError(t, err)

		body, err := json.Marshal(RefreshRequest{RefreshToken: refresh})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(string(body)))
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, stored.ID, resp.AccountID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()

		stored := testPlainAccount(t)
		access, err := jwtService.GenerateToken(context.Background(), stored.ID)
		require.NoError(t, err)

		body, err := json.Marshal(RefreshRequest{RefreshToken: access})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(string(body)))
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
			strings.NewReader(`{"refresh_token":"not.a.token"}`))
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
