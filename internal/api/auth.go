package api

import (
	"context"
	"net/url"
	"strings"
)

// TokenResponse is the token endpoint's answer to an authorization or refresh grant.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Init stores the OAuth application settings used by the login and token calls.
func (c *Client) Init(clientID, redirectURI, scope string) {
	c.oauthMu.Lock()
	defer c.oauthMu.Unlock()
	c.clientID = clientID
	c.redirectURI = redirectURI
	c.scope = scope
}

func (c *Client) oauthSettings() (clientID, redirectURI, scope string) {
	c.oauthMu.RLock()
	defer c.oauthMu.RUnlock()
	return c.clientID, c.redirectURI, c.scope
}

// LoginURI returns the authorization URL a user visits to grant access.
//
// The query is always response_type, client_id, redirect_uri, scope in that
// order, with every reserved character percent-encoded.
func (c *Client) LoginURI() string {
	clientID, redirectURI, scope := c.oauthSettings()
	pairs := [][2]string{
		{"response_type", "code"},
		{"client_id", clientID},
		{"redirect_uri", redirectURI},
		{"scope", scope},
	}

	var b strings.Builder
	b.WriteString(c.AuthorizeURL)
	b.WriteByte('?')
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(strictEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(strictEscape(p[1]))
	}
	return b.String()
}

func strictEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// RequestAccessToken exchanges an authorization code for tokens and stores them.
func (c *Client) RequestAccessToken(ctx context.Context, code string) (*TokenResponse, error) {
	clientID, redirectURI, scope := c.oauthSettings()
	form := NewForm().
		Set("code", code).
		Set("grant_type", "authorization_code").
		Set("client_id", clientID).
		Set("redirect_uri", redirectURI).
		Set("scope", scope)

	var tokens TokenResponse
	if err := c.post(ctx, c.TokenURL, form, nil, &tokens); err != nil {
		return nil, &AuthExchangeError{Err: err}
	}
	c.setTokens(tokens.AccessToken, tokens.RefreshToken)
	return &tokens, nil
}

// RequestAccessTokenRefresh trades the stored refresh token for fresh tokens and stores them.
func (c *Client) RequestAccessTokenRefresh(ctx context.Context) (*TokenResponse, error) {
	_, _, scope := c.oauthSettings()
	form := NewForm().
		Set("refresh_token", c.RefreshToken()).
		Set("grant_type", "refresh_token").
		Set("scope", scope)

	var tokens TokenResponse
	if err := c.post(ctx, c.TokenURL, form, nil, &tokens); err != nil {
		return nil, &AuthExchangeError{Refresh: true, Err: err}
	}
	c.setTokens(tokens.AccessToken, tokens.RefreshToken)
	return &tokens, nil
}

// Tokens returns a snapshot of the stored tokens.
func (c *Client) Tokens() TokenResponse {
	return TokenResponse{
		AccessToken:  c.AccessToken(),
		RefreshToken: c.RefreshToken(),
	}
}
