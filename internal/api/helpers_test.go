package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// capturedRequest is what the fake API server saw for one call.
type capturedRequest struct {
	Path        string
	ContentType string
	Header      http.Header
	RawBody     string
	Form        url.Values
	Files       map[string][]byte
}

type captureServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func (s *captureServer) last(t *testing.T) capturedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("expected a request to reach the server")
	}
	return s.requests[len(s.requests)-1]
}

func (s *captureServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// newCaptureServer answers every POST with status and body and records the decoded form.
func newCaptureServer(t *testing.T, status int, body string) *captureServer {
	t.Helper()
	cs := &captureServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		req := capturedRequest{
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Header:      r.Header.Clone(),
			RawBody:     string(raw),
			Files:       map[string][]byte{},
		}
		r.Body = io.NopCloser(strings.NewReader(string(raw)))
		if strings.HasPrefix(req.ContentType, "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("failed to parse multipart body: %v", err)
			}
			req.Form = url.Values(r.MultipartForm.Value)
			for name, headers := range r.MultipartForm.File {
				f, err := headers[0].Open()
				if err != nil {
					t.Errorf("failed to open file part %s: %v", name, err)
					continue
				}
				content, _ := io.ReadAll(f)
				_ = f.Close()
				req.Files[name] = content
			}
		} else {
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse form body: %v", err)
			}
			req.Form = r.PostForm
		}

		cs.mu.Lock()
		cs.requests = append(cs.requests, req)
		cs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(cs.Close)
	return cs
}

func newTestClient(baseURL, token string) *Client {
	c := New(baseURL, token)
	c.TokenURL = baseURL + "/oauth2/authorization/token"
	c.AuthorizeURL = baseURL + "/oauth2/authorization/new"
	return c
}

// failingRequester fails the test if any request is attempted.
type failingRequester struct {
	t *testing.T
}

func (f failingRequester) MakeAPIRequest(_ context.Context, params, _ *Form) (Result, error) {
	f.t.Helper()
	method, _ := params.Get("method")
	f.t.Errorf("unexpected request for %v", method)
	return nil, nil
}
