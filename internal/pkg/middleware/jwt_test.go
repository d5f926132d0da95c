package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/apperror"
	pkgjwt "github.com/piresc/accounts/internal/pkg/jwt"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := models.JWTConfig{Secret: "test-secret", Expiration: 60}
	manager := pkgjwt.NewManager(cfg)

	valid, _, err := manager.Issue(42)
	require.NoError(t, err)

	foreign, _, err := pkgjwt.NewManager(models.JWTConfig{Secret: "other"}).Issue(42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
		wantID     int64
	}{
		{name: "Valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantID: 42},
		{name: "Missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Missing or malformed token"},
		{name: "Wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized, wantError: "Missing or malformed token"},
		{name: "Foreign signature", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "Garbage", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			h := JWTAuthMiddleware(manager)(func(c echo.Context) error {
				called = true
				id, ok := AccountIDFromContext(c)
				assert.True(t, ok)
				assert.Equal(t, tt.wantID, id)
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, h(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)

			if tt.wantError != "" {
				var response utils.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
				assert.Equal(t, tt.wantError, response.Error)
			}
		})
	}
}

type stubVerifier struct {
	id  int64
	err error
}

func (s stubVerifier) Verify(string) (int64, error) {
	return s.id, s.err
}

func TestJWTAuthMiddleware_Expired(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer whatever")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuthMiddleware(stubVerifier{err: apperror.ErrExpiredToken})(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAccountIDFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := AccountIDFromContext(c)
	assert.False(t, ok)

	c.Set("user_id", "42")
	_, ok = AccountIDFromContext(c)
	assert.False(t, ok)

	c.Set("user_id", int64(42))
	id, ok := AccountIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
