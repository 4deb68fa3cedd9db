// Test utilities for the sp CLI commands.
//
// apiMock stands in for both the RPC endpoint and the OAuth token endpoint.
// ShootProof routes every API call through one URL, so responses are keyed
// by the "method" form field; token requests are keyed by URL path.
//
//	mock := newAPIMock().
//	    On("sp.event.get_list", 200, `{"events": [{"id": 1, "name": "Smith"}]}`)
//	setupTestEnv(t, mock)
//
//	output := captureStdout(t, func() {
//	    if err := Execute(context.Background(), []string{"events", "list"}); err != nil {
//	        t.Fatalf("command failed: %v", err)
//	    }
//	})
//
// Unregistered methods answer 404 so a test notices unexpected calls.
package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"

	"github.com/shootproof/shootproof-cli/internal/config"
)

const tokenPath = "/oauth2/authorization/token"

type mockResponse struct {
	status int
	body   string
}

// recordedCall is one request received by apiMock.
type recordedCall struct {
	Path   string
	Method string // the API method discriminator, empty for token requests
	Form   url.Values
	Files  map[string][]byte
	Header http.Header
}

type apiMock struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []recordedCall
}

func newAPIMock() *apiMock {
	return &apiMock{responses: map[string]mockResponse{}}
}

// On registers the response for an API method, or for a URL path when key starts with "/".
func (m *apiMock) On(key string, status int, body string) *apiMock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = mockResponse{status: status, body: body}
	return m
}

func (m *apiMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := recordedCall{Path: r.URL.Path, Header: r.Header.Clone(), Files: map[string][]byte{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(10 << 20); err == nil {
			for name, headers := range r.MultipartForm.File {
				f, err := headers[0].Open()
				if err != nil {
					continue
				}
				data, _ := io.ReadAll(f)
				_ = f.Close()
				call.Files[name] = data
			}
		}
	} else {
		_ = r.ParseForm()
	}
	call.Form = r.PostForm
	call.Method = r.PostForm.Get("method")

	key := call.Method
	if r.URL.Path != "/" && r.URL.Path != "" {
		key = r.URL.Path
	}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	resp, ok := m.responses[key]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"stat":"fail","msg":"no mock for ` + key + `"}`))
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (m *apiMock) Calls() []recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedCall(nil), m.calls...)
}

// Methods returns the API method discriminators received, in order.
func (m *apiMock) Methods() []string {
	var methods []string
	for _, c := range m.Calls() {
		methods = append(methods, c.Method)
	}
	return methods
}

func (m *apiMock) last(t *testing.T) recordedCall {
	t.Helper()
	calls := m.Calls()
	if len(calls) == 0 {
		t.Fatal("expected at least one request")
	}
	return calls[len(calls)-1]
}

type testEnv struct {
	server *httptest.Server
	ring   keyring.Keyring
	dir    string
}

// setupTestEnv points the CLI at a test server with an env access token,
// an empty settings file and an in-memory keyring.
func setupTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	ring := keyring.NewArrayKeyring(nil)
	restore := config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
	t.Cleanup(restore)

	t.Setenv("SP_BASE_URL", server.URL)
	t.Setenv("SP_AUTH_URL", server.URL)
	t.Setenv("SP_ACCESS_TOKEN", "test-token")
	t.Setenv("SP_REFRESH_TOKEN", "")
	t.Setenv("SP_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("SP_PROFILE", "")
	t.Setenv("SP_OUTPUT", "text")
	t.Setenv("SP_DEBUG", "")
	t.Setenv("SP_NO_BROWSER", "1")

	return &testEnv{server: server, ring: ring, dir: dir}
}

// withoutEnvToken makes the CLI read tokens from the keyring.
func withoutEnvToken(t *testing.T) {
	t.Helper()
	t.Setenv("SP_ACCESS_TOKEN", "")
}

// writeProfile stores OAuth application settings for name and makes it current.
func writeProfile(t *testing.T, name string, p config.Profile) {
	t.Helper()
	settings, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	settings.SetProfile(name, p)
	if err := settings.Save(); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

// captureStdout executes a function and captures its stdout output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// captureStderr executes a function and captures its stderr output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// withStdin feeds data to the command's stdin for the rest of the test.
func withStdin(t *testing.T, data string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	go func() {
		_, _ = io.WriteString(w, data)
		_ = w.Close()
	}()
	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		_ = r.Close()
	})
}

// decodeJSON parses command output into a map.
func decodeJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(output), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v, output: %s", err, output)
	}
	return m
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
}
