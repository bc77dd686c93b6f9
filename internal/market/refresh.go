package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/junseo/marketctl/internal/metrics"
)

const refreshPath = "/auth/refresh"

// ErrNoRefreshToken is returned when a refresh cycle starts without a
// stored refresh token.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// TokenPair is the credential pair issued by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshTokens exchanges the stored refresh token for a new pair.
// staleAccess is the access token the failing request was sent with; a
// caller that enters after another refresh already replaced it skips the
// exchange and reuses the fresh pair. Any failure clears both
// credentials.
func (c *Client) refreshTokens(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if cur := c.tokens.Access(); cur != "" && cur != staleAccess {
		metrics.TokenRefreshTotal.WithLabelValues("coalesced").Inc()
		return nil
	}

	refresh := c.tokens.Refresh()
	if refresh == "" {
		return c.refreshFailed(ErrNoRefreshToken)
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: refresh})
	if err != nil {
		return c.refreshFailed(fmt.Errorf("marshaling refresh request: %w", err))
	}

	// The refresh endpoint is unauthenticated by definition: no bearer
	// header, and never routed through send so it cannot re-enter the
	// 401 retry path.
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+refreshPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return c.refreshFailed(fmt.Errorf("creating refresh request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.refreshFailed(fmt.Errorf("executing refresh request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.refreshFailed(fmt.Errorf("reading refresh response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.refreshFailed(fmt.Errorf("refresh failed (status %d)", resp.StatusCode))
	}

	var pair TokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return c.refreshFailed(fmt.Errorf("parsing refresh response: %w", err))
	}

	if err := c.tokens.SetPair(pair.AccessToken, pair.RefreshToken); err != nil {
		return c.refreshFailed(fmt.Errorf("persisting refreshed tokens: %w", err))
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	c.log.Debug("access token refreshed")
	return nil
}

// refreshFailed clears both credentials and reports the failure. An
// irrecoverable refresh always ends the authenticated session.
func (c *Client) refreshFailed(cause error) error {
	if err := c.tokens.ClearPair(); err != nil {
		c.log.Warn("clearing tokens after failed refresh", "err", err)
	}
	metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
	return cause
}
