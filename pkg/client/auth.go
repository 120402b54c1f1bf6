// InstaBids | 2026
// auth.go

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// User mirrors the backend's user payload.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	UserType       string    `json:"user_type"`
	OrganizationID *string   `json:"organization_id"`
	EmailVerified  bool      `json:"email_verified"`
	PhoneVerified  bool      `json:"phone_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthError carries the backend-provided message for login and
// registration failures.
type AuthError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (%d)", e.StatusCode)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	FullName         string  `json:"full_name"`
	UserType         string  `json:"user_type"`
	Phone            *string `json:"phone,omitempty"`
	OrganizationName string  `json:"organization_name,omitempty"`
}

// RegisterResult carries no tokens: new accounts verify their email
// before their first login.
type RegisterResult struct {
	UserID               string `json:"user_id"`
	Email                string `json:"email"`
	RequiresVerification bool   `json:"requires_verification"`
	Message              string `json:"message"`
}

type authPayload struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Login authenticates against the backend. On any non-2xx response it
// returns an *AuthError and leaves the client unauthenticated.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	var payload authPayload
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, creds, &payload)
	if err != nil {
		return nil, asAuthError(err)
	}

	session := &Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    payload.ExpiresAt,
	}
	user := payload.User
	c.setAuthState(session, &user)

	return &user, nil
}

// Register creates an account. It never mutates the client's session:
// the new account goes through email verification before logging in.
func (c *Client) Register(
	ctx context.Context,
	reg Registration,
) (*RegisterResult, error) {
	var result RegisterResult
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/register", nil, reg, &result)
	if err != nil {
		return nil, asAuthError(err)
	}

	return &result, nil
}

// VerifyEmail redeems an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/verify-email", nil, body, nil)
	return err
}

// Logout revokes the session server-side on a best-effort basis and
// always clears local auth state, regardless of the revocation outcome.
func (c *Client) Logout(ctx context.Context) error {
	session := c.CurrentSession()

	var revokeErr error
	if session != nil && session.RefreshToken != "" {
		body := map[string]string{"refresh_token": session.RefreshToken}
		_, revokeErr = c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, body, nil)
	}

	c.setAuthState(nil, nil)
	return revokeErr
}

// RefreshSession rotates the token pair using the stored refresh token
// and re-fetches the user profile. Without a refresh token it returns
// an *AuthError.
func (c *Client) RefreshSession(ctx context.Context) (*User, error) {
	session := c.CurrentSession()
	if session == nil || session.RefreshToken == "" {
		return nil, &AuthError{
			StatusCode: http.StatusUnauthorized,
			Message:    "no session to refresh",
		}
	}

	body := map[string]string{"refresh_token": session.RefreshToken}

	var payload authPayload
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", nil, body, &payload)
	if err != nil {
		return nil, asAuthError(err)
	}

	next := &Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    payload.ExpiresAt,
	}
	user := payload.User
	c.setAuthState(next, &user)

	return &user, nil
}

// RestoreSession performs the one implicit startup session check. If a
// live session exists it populates the user from the profile endpoint;
// any failure is swallowed and the client stays unauthenticated.
func (c *Client) RestoreSession(ctx context.Context) {
	session := c.CurrentSession()
	if !session.Live() {
		if session != nil && session.RefreshToken != "" {
			if _, err := c.RefreshSession(ctx); err == nil {
				return
			}
		}
		c.setAuthState(nil, nil)
		return
	}

	var user User
	if _, err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, nil, &user); err != nil {
		c.setAuthState(nil, nil)
		return
	}

	c.setAuthState(session, &user)
}

// Me re-fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	return &user, nil
}

func asAuthError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &AuthError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}
	return err
}
