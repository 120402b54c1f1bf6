// InstaBids | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

func managerClaims() *AccessTokenClaims {
	return &AccessTokenClaims{
		UserID:         "u-1",
		UserType:       "property_manager",
		OrganizationID: "org-1",
		TokenVersion:   1,
	}
}

func captureContext(captured *context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = r.Context()
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"BEARER abc123", "abc123"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"Bearer  spaced ", "spaced"},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, ExtractToken(r), "header %q", tc.header)
	}
}

func TestAuthenticatorPopulatesContext(t *testing.T) {
	var captured context.Context
	handler := Authenticator(&stubVerifier{claims: managerClaims()})(
		captureContext(&captured),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", GetUserID(captured))
	assert.Equal(t, "property_manager", GetUserType(captured))
	assert.Equal(t, "org-1", GetOrganizationID(captured))
	require.NotNil(t, GetClaims(captured))
	assert.True(t, IsAuthenticated(captured))
	assert.False(t, IsAdmin(captured))
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler := Authenticator(&stubVerifier{claims: managerClaims()})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not run")
		}),
	)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
}

func TestAuthenticatorTokenErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"expired", core.ErrTokenExpired, "TOKEN_EXPIRED"},
		{"revoked", core.ErrTokenRevoked, "TOKEN_REVOKED"},
		{"invalid", core.ErrTokenInvalid, "TOKEN_INVALID"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticator(&stubVerifier{err: tc.err})(
				http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
					t.Fatal("handler should not run")
				}),
			)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, rec))
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("valid token populates context", func(t *testing.T) {
		var captured context.Context
		handler := OptionalAuth(&stubVerifier{claims: managerClaims()})(
			captureContext(&captured),
		)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", GetUserID(captured))
	})

	t.Run("invalid token passes through anonymous", func(t *testing.T) {
		var captured context.Context
		handler := OptionalAuth(&stubVerifier{err: core.ErrTokenInvalid})(
			captureContext(&captured),
		)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, GetUserID(captured))
		assert.False(t, IsAuthenticated(captured))
	})
}

func TestRequireUserType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withUserType := func(r *http.Request, userType string) *http.Request {
		ctx := context.WithValue(r.Context(), UserTypeKey, userType)
		return r.WithContext(ctx)
	}

	t.Run("allowed type passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withUserType(
			httptest.NewRequest(http.MethodGet, "/", nil),
			"contractor",
		)
		RequireUserType("contractor")(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong type forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withUserType(
			httptest.NewRequest(http.MethodGet, "/", nil),
			"tenant",
		)
		RequireUserType("contractor")(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		RequireUserType("contractor")(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin gate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withUserType(
			httptest.NewRequest(http.MethodGet, "/", nil),
			"property_manager",
		)
		RequireAdmin(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager gate admits admins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withUserType(httptest.NewRequest(http.MethodGet, "/", nil), "admin")
		RequireManager(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
