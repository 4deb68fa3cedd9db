package config

import (
	"errors"
	"os"
	"strings"
)

const (
	envProfile      = "SP_PROFILE"
	envBaseURL      = "SP_BASE_URL"
	envAuthURL      = "SP_AUTH_URL"
	envAccessToken  = "SP_ACCESS_TOKEN"
	envRefreshToken = "SP_REFRESH_TOKEN"

	authorizePath = "/oauth2/authorization/new"
	tokenPath     = "/oauth2/authorization/token"
)

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	Profile      string
	BaseURL      string // empty means the API default
	AuthorizeURL string // empty means the OAuth default
	TokenURL     string // empty means the OAuth default
	ClientID     string
	RedirectURI  string
	Scope        string
	AccessToken  string
	RefreshToken string
	// TokensFromEnv is set when SP_ACCESS_TOKEN supplied the tokens.
	TokensFromEnv bool
	// Credentials are the stored tokens, when any were found.
	Credentials *Credentials
}

// Resolve merges the settings file, the keyring and the environment.
//
// Precedence: profileOverride, then SP_PROFILE, then the settings file's current
// profile. SP_BASE_URL and SP_AUTH_URL override endpoints; SP_ACCESS_TOKEN (with
// optional SP_REFRESH_TOKEN) replaces stored credentials. A profile without
// settings or tokens is not an error: callers decide what they need.
func Resolve(profileOverride string) (ClientConfig, error) {
	settings, err := LoadSettings()
	if err != nil {
		return ClientConfig{}, err
	}

	name := strings.TrimSpace(profileOverride)
	if name == "" {
		name = strings.TrimSpace(os.Getenv(envProfile))
	}
	if name == "" {
		name = settings.Current()
	}

	cfg := ClientConfig{Profile: name}
	if p, err := settings.Profile(name); err == nil {
		cfg.ClientID = p.ClientID
		cfg.RedirectURI = p.RedirectURI
		cfg.Scope = p.Scope
		cfg.BaseURL = strings.TrimSuffix(p.BaseURL, "/")
	}

	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = strings.TrimSuffix(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(envAuthURL)); v != "" {
		base := strings.TrimSuffix(v, "/")
		cfg.AuthorizeURL = base + authorizePath
		cfg.TokenURL = base + tokenPath
	}

	if token := strings.TrimSpace(os.Getenv(envAccessToken)); token != "" {
		cfg.AccessToken = token
		cfg.RefreshToken = strings.TrimSpace(os.Getenv(envRefreshToken))
		cfg.TokensFromEnv = true
		return cfg, nil
	}

	creds, err := LoadCredentials(name)
	switch {
	case err == nil:
		cfg.AccessToken = creds.AccessToken
		cfg.RefreshToken = creds.RefreshToken
		cfg.Credentials = &creds
	case errors.Is(err, ErrNotLoggedIn):
	default:
		return ClientConfig{}, err
	}
	return cfg, nil
}

// HasOAuthApp reports whether the profile carries the settings needed for login.
func (c ClientConfig) HasOAuthApp() bool {
	return c.ClientID != "" && c.RedirectURI != ""
}
