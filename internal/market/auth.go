package market

import (
	"context"
	"fmt"

	domain "github.com/junseo/marketctl/pkg/types"
)

type signupRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, nickname, password string) error {
	body := signupRequest{Email: email, Nickname: nickname, Password: password}
	return c.post(ctx, "/auth/signup", body, nil, false)
}

// Login authenticates with email and password and persists the issued
// token pair in the client's store.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair TokenPair
	body := loginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", body, &pair, false); err != nil {
		return err
	}
	if err := c.tokens.SetPair(pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("persisting tokens: %w", err)
	}
	return nil
}

// Logout discards the stored credential pair. Purely client-side; the
// server invalidates tokens by expiry.
func (c *Client) Logout() error {
	return c.tokens.ClearPair()
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/me", &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}
