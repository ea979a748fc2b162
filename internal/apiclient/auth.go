package apiclient

import (
	"context"
	"net/http"
)

// User is the identity snapshot the backend returns on login and whoami.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// loginResponse is the data payload of POST /api/auth/login.
type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token. Input validation (email
// shape, non-empty password) is the caller's job; this method goes straight
// to the wire.
func (c *Client) Login(ctx context.Context, email, password string) (string, User, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.Do(ctx, http.MethodPost, c.publicURL("auth/login", nil), body)
	if err != nil {
		return "", User{}, err
	}
	var lr loginResponse
	if err := decodeData(env, &lr); err != nil {
		return "", User{}, err
	}
	return lr.Token, lr.User, nil
}

// Me validates the bound token against the backend and returns the current
// identity. Any failure means the token is not (or no longer) valid; the
// caller decides whether that forces a re-login.
func (c *Client) Me(ctx context.Context) (User, error) {
	env, err := c.Do(ctx, http.MethodGet, c.adminURL("auth/me", nil), nil)
	if err != nil {
		return User{}, err
	}
	var u User
	if err := decodeData(env, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
