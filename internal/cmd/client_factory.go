package cmd

import (
	"time"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/config"
)

type clientFactory struct {
	profile   string
	timeout   time.Duration
	userAgent string
	wrapper   string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		profile:   flags.Profile,
		timeout:   flags.Timeout,
		userAgent: userAgent(),
		wrapper:   wrapperVersion(),
	}
}

// session returns a client for the resolved profile whether or not it holds tokens.
func (f *clientFactory) session() (*api.Client, config.ClientConfig, error) {
	cfg, err := config.Resolve(f.profile)
	if err != nil {
		return nil, config.ClientConfig{}, err
	}
	return f.newClient(cfg), cfg, nil
}

// authenticated returns a client that carries an access token.
func (f *clientFactory) authenticated() (*api.Client, error) {
	client, cfg, err := f.session()
	if err != nil {
		return nil, err
	}
	if cfg.AccessToken == "" {
		return nil, config.ErrNotLoggedIn
	}
	return client, nil
}

func (f *clientFactory) newClient(cfg config.ClientConfig) *api.Client {
	client := api.New(cfg.BaseURL, cfg.AccessToken)
	client.SetRefreshToken(cfg.RefreshToken)
	if cfg.AuthorizeURL != "" {
		client.AuthorizeURL = cfg.AuthorizeURL
	}
	if cfg.TokenURL != "" {
		client.TokenURL = cfg.TokenURL
	}
	client.Init(cfg.ClientID, cfg.RedirectURI, cfg.Scope)
	if f.timeout > 0 {
		client.HTTP.Timeout = f.timeout
	}
	if f.userAgent != "" {
		client.UserAgent = f.userAgent
	}
	if f.wrapper != "" {
		client.Wrapper = f.wrapper
	}
	return client
}
