package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *CallbackServer {
	t.Helper()
	s, err := NewCallbackServer("http://127.0.0.1:0/callback")
	if err != nil {
		t.Fatalf("NewCallbackServer failed: %v", err)
	}
	return s
}

type waitResult struct {
	code string
	err  error
}

func startWait(ctx context.Context, s *CallbackServer) <-chan waitResult {
	done := make(chan waitResult, 1)
	go func() {
		code, err := s.Wait(ctx)
		done <- waitResult{code, err}
	}()
	return done
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func awaitResult(t *testing.T, done <-chan waitResult) waitResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
		return waitResult{}
	}
}

func TestCallbackServerReceivesCode(t *testing.T) {
	s := newTestServer(t)
	if !strings.HasPrefix(s.URL(), "http://127.0.0.1:") || !strings.HasSuffix(s.URL(), "/callback") {
		t.Fatalf("unexpected URL %s", s.URL())
	}
	done := startWait(context.Background(), s)

	status, body := get(t, s.URL()+"?code=abc123")
	if status != http.StatusOK {
		t.Errorf("Expected 200, got %d", status)
	}
	if !strings.Contains(body, "Signed in to ShootProof") {
		t.Errorf("Expected success page, got %s", body)
	}

	res := awaitResult(t, done)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.code != "abc123" {
		t.Errorf("Expected code abc123, got %s", res.code)
	}
}

func TestCallbackServerOAuthError(t *testing.T) {
	s := newTestServer(t)
	done := startWait(context.Background(), s)

	status, body := get(t, s.URL()+"?error=access_denied&error_description=User+said+no")
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", status)
	}
	if !strings.Contains(body, "User said no") {
		t.Errorf("Expected description on page, got %s", body)
	}

	res := awaitResult(t, done)
	if !errors.Is(res.err, ErrAuthorizationDenied) {
		t.Errorf("Expected ErrAuthorizationDenied, got %v", res.err)
	}
	if !strings.Contains(res.err.Error(), "access_denied") {
		t.Errorf("Expected error code in message, got %v", res.err)
	}
}

func TestCallbackServerMissingCodeKeepsWaiting(t *testing.T) {
	s := newTestServer(t)
	done := startWait(context.Background(), s)

	status, _ := get(t, s.URL())
	if status != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", status)
	}

	select {
	case res := <-done:
		t.Fatalf("Wait returned early: %+v", res)
	case <-time.After(50 * time.Millisecond):
	}

	get(t, s.URL()+"?code=later")
	if res := awaitResult(t, done); res.code != "later" {
		t.Errorf("Expected code later, got %+v", res)
	}
}

func TestCallbackServerWrongPath(t *testing.T) {
	s := newTestServer(t)
	done := startWait(context.Background(), s)

	base := strings.TrimSuffix(s.URL(), "/callback")
	if status, _ := get(t, base+"/other?code=x"); status != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", status)
	}

	get(t, s.URL()+"?code=ok")
	awaitResult(t, done)
}

func TestCallbackServerContextCanceled(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := startWait(ctx, s)
	cancel()

	res := awaitResult(t, done)
	if !errors.Is(res.err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", res.err)
	}
}

func TestNewCallbackServerRejectsRemoteRedirect(t *testing.T) {
	tests := []string{
		"https://127.0.0.1:0/callback",
		"http://example.com/callback",
		"::not a url",
	}
	for _, uri := range tests {
		if _, err := NewCallbackServer(uri); err == nil {
			t.Errorf("Expected error for %q", uri)
		}
	}
}

func TestIsLoopback(t *testing.T) {
	for host, want := range map[string]bool{
		"127.0.0.1":   true,
		"localhost":   true,
		"::1":         true,
		"10.0.0.1":    false,
		"example.com": false,
	} {
		if got := isLoopback(host); got != want {
			t.Errorf("isLoopback(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestOpenBrowserSkippedInTests(t *testing.T) {
	if !shouldSkipAutoBrowserOpen() {
		t.Error("Expected browser launch to be skipped under go test")
	}
	if err := OpenBrowser("http://127.0.0.1/"); err != nil {
		t.Errorf("OpenBrowser should be a no-op in tests, got %v", err)
	}
}
