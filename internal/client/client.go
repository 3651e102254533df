// Package client is a small Go client for the campuscliq HTTP API. It
// keeps the refresh cookie in a jar, so a login followed by refreshes
// works the way a browser session does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// ErrUnauthorized is returned for 401 responses: the session is dead and
// the caller has to log in again.
var ErrUnauthorized = errors.New("unauthorized")

// User is the API's user representation.
type User struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Major      *string `json:"major,omitempty"`
	Year       *string `json:"year,omitempty"`
	Residence  *string `json:"residence,omitempty"`
	IsVerified bool    `json:"isVerified"`
}

// Session is the result of a login, registration or refresh.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Client talks to one campuscliq server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client for the given base URL, e.g. "https://api.campus.example".
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Login opens a session. The refresh cookie lands in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.postJSON(ctx, "/api/auth/login", body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	Major     *string `json:"major,omitempty"`
	Year      *string `json:"year,omitempty"`
	Residence *string `json:"residence,omitempty"`
}

// Register creates an account and opens a session.
func (c *Client) Register(ctx context.Context, params RegisterParams) (Session, error) {
	var session Session
	if err := c.postJSON(ctx, "/api/auth/register", params, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Refresh exchanges the refresh cookie for a new session.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	var session Session
	if err := c.postJSON(ctx, "/api/auth/refresh", nil, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Logout revokes the refresh token. The server clears the cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/api/auth/logout", nil, nil)
}

// Me returns the user behind the access token.
func (c *Client) Me(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return User{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user User
	if err := c.do(req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// TokenSource adapts the client to the session manager's exchange
// interface. The access TTL is not carried in the refresh response, so the
// caller supplies the value the server is configured with.
func (c *Client) TokenSource(accessTTL time.Duration) *RefreshTokenSource {
	return &RefreshTokenSource{client: c, accessTTL: accessTTL}
}

// RefreshTokenSource exchanges the refresh cookie for a new access token.
type RefreshTokenSource struct {
	client    *Client
	accessTTL time.Duration
}

// ExchangeToken performs one refresh round trip.
func (s *RefreshTokenSource) ExchangeToken(ctx context.Context) (string, time.Duration, error) {
	session, err := s.client.Refresh(ctx)
	if err != nil {
		return "", 0, err
	}
	return session.AccessToken, s.accessTTL, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
