// Package auth receives the OAuth authorization redirect on a loopback address.
package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrAuthorizationDenied is returned when the user or server rejects the grant.
var ErrAuthorizationDenied = errors.New("authorization denied")

// CallbackServer listens on the redirect URI of the OAuth application and
// captures the authorization code sent back by the ShootProof login page.
type CallbackServer struct {
	listener net.Listener
	path     string
	server   *http.Server

	once   sync.Once
	result chan callbackResult
}

type callbackResult struct {
	code string
	err  error
}

// NewCallbackServer binds the host and port of redirectURI, which must be an
// http URL on a loopback host. Port 0 picks a free port (see URL).
func NewCallbackServer(redirectURI string) (*CallbackServer, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("redirect URI %q must use http on a loopback address to receive the code locally", redirectURI)
	}
	if !isLoopback(u.Hostname()) {
		return nil, fmt.Errorf("redirect URI host %q is not a loopback address", u.Hostname())
	}
	port := u.Port()
	if port == "" {
		port = "80"
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(u.Hostname(), port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	s := &CallbackServer{
		listener: listener,
		path:     path,
		result:   make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleCallback)
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// URL returns the callback URL the server actually listens on.
func (s *CallbackServer) URL() string {
	return "http://" + s.listener.Addr().String() + s.path
}

// Wait serves until a callback arrives or ctx ends, then shuts the server down.
// It returns the authorization code.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var res callbackResult
	g.Go(func() error {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("callback server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var waitErr error
		select {
		case res = <-s.result:
		case <-gctx.Done():
			waitErr = gctx.Err()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			_ = s.server.Close()
		}
		return waitErr
	})

	if err := g.Wait(); err != nil {
		return "", err
	}
	if res.err != nil {
		return "", res.err
	}
	return res.code, nil
}

// Close releases the listener when Wait is never called.
func (s *CallbackServer) Close() error {
	return s.server.Close()
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.path {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	if oauthErr := q.Get("error"); oauthErr != "" {
		desc := q.Get("error_description")
		render(w, http.StatusBadRequest, pageData{Title: "Authorization failed", Message: firstNonEmpty(desc, oauthErr)})
		err := fmt.Errorf("%w: %s", ErrAuthorizationDenied, oauthErr)
		if desc != "" {
			err = fmt.Errorf("%w: %s (%s)", ErrAuthorizationDenied, oauthErr, desc)
		}
		s.deliver(callbackResult{err: err})
		return
	}

	code := strings.TrimSpace(q.Get("code"))
	if code == "" {
		render(w, http.StatusBadRequest, pageData{Title: "Missing code", Message: "The redirect did not include an authorization code."})
		return
	}

	render(w, http.StatusOK, pageData{Title: "Signed in to ShootProof", Message: "You can close this window and return to the terminal.", Success: true})
	s.deliver(callbackResult{code: code})
}

// deliver hands over the first callback only; repeated redirects are ignored.
func (s *CallbackServer) deliver(res callbackResult) {
	s.once.Do(func() { s.result <- res })
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type pageData struct {
	Title   string
	Message string
	Success bool
}

var pageTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #f5f5f4; color: #1c1917; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; }
.card { background: #fff; border-radius: 12px; padding: 40px 48px; box-shadow: 0 4px 24px rgba(0,0,0,.08); max-width: 420px; text-align: center; }
.ok { color: #15803d; }
.fail { color: #b91c1c; }
</style>
</head>
<body>
<div class="card">
<h1 class="{{if .Success}}ok{{else}}fail{{end}}">{{.Title}}</h1>
<p>{{.Message}}</p>
</div>
</body>
</html>
`))

func render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTemplate.Execute(w, data)
}

// OpenBrowser opens the URL in the default browser
func OpenBrowser(url string) error {
	if shouldSkipAutoBrowserOpen() {
		return nil
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

func shouldSkipAutoBrowserOpen() bool {
	// Always skip browser launch when running under `go test`.
	if flag.Lookup("test.v") != nil {
		return true
	}

	noBrowser := strings.TrimSpace(strings.ToLower(os.Getenv("SP_NO_BROWSER")))
	return noBrowser == "1" || noBrowser == "true" || noBrowser == "yes"
}
