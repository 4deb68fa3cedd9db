package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/auth"
	"github.com/shootproof/shootproof-cli/internal/config"
	"github.com/shootproof/shootproof-cli/internal/iocontext"
	"github.com/shootproof/shootproof-cli/internal/validation"
)

// newAuthCmd returns the auth command with subcommands
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		Aliases: []string{"au"},
		Short:   "Manage OAuth application settings and tokens",
		Long: strings.TrimSpace(`
Configure the OAuth application of a ShootProof account and manage its tokens.

Application settings live in the config file (see 'sp auth status'); tokens are
stored in the OS keychain, or come from SP_ACCESS_TOKEN when it is set.
`),
	}

	cmd.AddCommand(newAuthInitCmd())
	cmd.AddCommand(newAuthLoginURLCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRefreshCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

// writableProfile picks the profile a settings change applies to.
func writableProfile(settings *config.Settings) string {
	if flags.Profile != "" {
		return flags.Profile
	}
	if env := strings.TrimSpace(os.Getenv("SP_PROFILE")); env != "" {
		return env
	}
	return settings.Current()
}

func newAuthInitCmd() *cobra.Command {
	var p config.Profile

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Save OAuth application settings to a profile",
		Example: strings.TrimSpace(`
  # Configure the default profile
  sp auth init --client-id 123 --redirect-uri http://127.0.0.1:8765/callback --scope sp2.studio.info

  # Configure a second studio
  sp auth init --profile other --client-id 456 --redirect-uri http://127.0.0.1:8765/callback --scope sp2.studio.info
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			p.ClientID = strings.TrimSpace(p.ClientID)
			p.RedirectURI = strings.TrimSpace(p.RedirectURI)
			p.Scope = strings.TrimSpace(p.Scope)
			if p.ClientID == "" || p.RedirectURI == "" || p.Scope == "" {
				return fmt.Errorf("--client-id, --redirect-uri and --scope are required")
			}
			if err := validation.RedirectURI(p.RedirectURI); err != nil {
				return fmt.Errorf("invalid --redirect-uri: %w", err)
			}
			p.BaseURL = strings.TrimSpace(p.BaseURL)
			if p.BaseURL != "" {
				if err := validation.APIBaseURL(p.BaseURL); err != nil {
					return fmt.Errorf("invalid --base-url: %w", err)
				}
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			name := writableProfile(settings)
			settings.SetProfile(name, p)
			if err := settings.Save(); err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"profile": name, "config": config.Path()})
			}
			printAction(cmd, "Saved profile %q to %s", name, config.Path())
			return nil
		}),
	}

	cmd.Flags().StringVar(&p.ClientID, "client-id", "", "OAuth client ID")
	cmd.Flags().StringVar(&p.RedirectURI, "redirect-uri", "", "Registered redirect URI")
	cmd.Flags().StringVar(&p.Scope, "scope", "", "Space-separated OAuth scopes")
	cmd.Flags().StringVar(&p.BaseURL, "base-url", "", "API base URL (default "+api.DefaultBaseURL+")")

	return cmd
}

func requireOAuthApp(cfg config.ClientConfig) error {
	if !cfg.HasOAuthApp() {
		return fmt.Errorf("%w (profile %q)", config.ErrProfileNotFound, cfg.Profile)
	}
	return nil
}

func newAuthLoginURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login-url",
		Short: "Print the authorization URL",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newClientFactory().session()
			if err != nil {
				return err
			}
			if err := requireOAuthApp(cfg); err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"url": client.LoginURI()})
			}
			printAction(cmd, "%s", client.LoginURI())
			return nil
		}),
	}
}

func newAuthLoginCmd() *cobra.Command {
	var (
		code      string
		noBrowser bool
		wait      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize in the browser and store tokens",
		Long: strings.TrimSpace(`
Open the authorization page, receive the code on the profile's redirect URI and
exchange it for tokens.

The redirect URI must be an http loopback address (127.0.0.1, ::1 or localhost)
for the code to be received automatically. Otherwise copy the code from the
redirect and pass it with --code.
`),
		Example: strings.TrimSpace(`
  # Browser flow
  sp auth login

  # Exchange a code obtained elsewhere
  sp auth login --code 5f2b...
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			client, cfg, err := newClientFactory().session()
			if err != nil {
				return err
			}
			if err := requireOAuthApp(cfg); err != nil {
				return err
			}

			code = strings.TrimSpace(code)
			if code == "" {
				code, err = receiveCode(ctx, client, cfg.RedirectURI, noBrowser, wait)
				if err != nil {
					return err
				}
			}

			tokens, err := client.RequestAccessToken(ctx, code)
			if err != nil {
				return err
			}
			if err := storeTokens(cfg.Profile, tokens); err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"profile": cfg.Profile, "logged_in": true, "expires_in": tokens.ExpiresIn})
			}
			printAction(cmd, "Logged in (profile %q)", cfg.Profile)
			return nil
		}),
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code to exchange instead of running the browser flow")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Minute, "How long to wait for the browser callback")

	return cmd
}

func receiveCode(ctx context.Context, client *api.Client, redirectURI string, noBrowser bool, wait time.Duration) (string, error) {
	server, err := auth.NewCallbackServer(redirectURI)
	if err != nil {
		return "", fmt.Errorf("%w; pass the code with --code", err)
	}

	errOut := iocontext.GetIO(ctx).ErrOut
	loginURL := client.LoginURI()
	if noBrowser {
		_, _ = fmt.Fprintf(errOut, "Open this URL to authorize:\n\n  %s\n\n", loginURL)
	} else if err := auth.OpenBrowser(loginURL); err != nil {
		_, _ = fmt.Fprintf(errOut, "Could not open a browser (%v). Open this URL to authorize:\n\n  %s\n\n", err, loginURL)
	} else {
		_, _ = fmt.Fprintf(errOut, "Opened the authorization page in your browser.\n")
	}
	_, _ = fmt.Fprintf(errOut, "Waiting for the redirect on %s ...\n", server.URL())

	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}
	return server.Wait(ctx)
}

func storeTokens(profile string, tokens *api.TokenResponse) error {
	creds := config.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SavedAt:      time.Now().UTC(),
	}
	if tokens.ExpiresIn > 0 {
		creds.ExpiresAt = creds.SavedAt.Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}
	return config.SaveCredentials(profile, creds)
}

func newAuthRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Trade the refresh token for new tokens",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newClientFactory().session()
			if err != nil {
				return err
			}
			if cfg.RefreshToken == "" {
				return config.ErrNotLoggedIn
			}

			tokens, err := client.RequestAccessTokenRefresh(cmdContext(cmd))
			if err != nil {
				return err
			}
			stored := !cfg.TokensFromEnv
			if stored {
				if err := storeTokens(cfg.Profile, tokens); err != nil {
					return err
				}
			}

			if isJSON(cmd) {
				out := map[string]any{"profile": cfg.Profile, "stored": stored, "expires_in": tokens.ExpiresIn}
				if !stored {
					out["access_token"] = tokens.AccessToken
					out["refresh_token"] = tokens.RefreshToken
				}
				return printJSON(cmd, out)
			}
			if !stored {
				printAction(cmd, "SP_ACCESS_TOKEN=%s", tokens.AccessToken)
				printAction(cmd, "SP_REFRESH_TOKEN=%s", tokens.RefreshToken)
				return nil
			}
			printAction(cmd, "Refreshed tokens (profile %q)", cfg.Profile)
			return nil
		}),
	}
}

type authStatus struct {
	Profile      string    `json:"profile"`
	ConfigPath   string    `json:"config_path"`
	ClientID     string    `json:"client_id,omitempty"`
	RedirectURI  string    `json:"redirect_uri,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	BaseURL      string    `json:"base_url"`
	LoggedIn     bool      `json:"logged_in"`
	TokenSource  string    `json:"token_source,omitempty"`
	SavedAt      time.Time `json:"saved_at,omitzero"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
	Expired      bool      `json:"expired,omitempty"`
	HasRefresh   bool      `json:"has_refresh_token"`
	ProfileNames []string  `json:"profiles"`
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active profile and token state",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := newClientFactory().session()
			if err != nil {
				return err
			}
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}

			st := authStatus{
				Profile:      cfg.Profile,
				ConfigPath:   config.Path(),
				ClientID:     cfg.ClientID,
				RedirectURI:  cfg.RedirectURI,
				Scope:        cfg.Scope,
				BaseURL:      client.BaseURL,
				LoggedIn:     cfg.AccessToken != "",
				HasRefresh:   cfg.RefreshToken != "",
				ProfileNames: settings.ProfileNames(),
			}
			switch {
			case cfg.TokensFromEnv:
				st.TokenSource = "env"
			case cfg.Credentials != nil:
				st.TokenSource = "keyring"
				st.SavedAt = cfg.Credentials.SavedAt
				st.ExpiresAt = cfg.Credentials.ExpiresAt
				st.Expired = cfg.Credentials.Expired(time.Now())
			}

			if isJSON(cmd) {
				return printJSON(cmd, st)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Profile:      %s\n", st.Profile)
			_, _ = fmt.Fprintf(out, "Config:       %s\n", st.ConfigPath)
			_, _ = fmt.Fprintf(out, "API:          %s\n", st.BaseURL)
			if st.ClientID != "" {
				_, _ = fmt.Fprintf(out, "Client ID:    %s\n", st.ClientID)
				_, _ = fmt.Fprintf(out, "Redirect URI: %s\n", st.RedirectURI)
				_, _ = fmt.Fprintf(out, "Scope:        %s\n", st.Scope)
			} else {
				_, _ = fmt.Fprintln(out, "Application:  not configured (run 'sp auth init')")
			}
			if !st.LoggedIn {
				_, _ = fmt.Fprintln(out, "Logged in:    no")
				return nil
			}
			_, _ = fmt.Fprintf(out, "Logged in:    yes (%s)\n", st.TokenSource)
			if !st.ExpiresAt.IsZero() {
				state := "valid"
				if st.Expired {
					state = "expired, run 'sp auth refresh'"
				}
				_, _ = fmt.Fprintf(out, "Expires:      %s (%s)\n", st.ExpiresAt.Local().Format(time.RFC3339), state)
			}
			return nil
		}),
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens of the active profile",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			name := writableProfile(settings)
			if err := config.DeleteCredentials(name); err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"profile": name, "logged_in": false})
			}
			printAction(cmd, "Logged out (profile %q)", name)
			return nil
		}),
	}
}
