package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shootproof/shootproof-cli/internal/debug"
)

const (
	DefaultBaseURL      = "https://api.shootproof.com/v2"
	DefaultAuthorizeURL = "https://auth.shootproof.com/oauth2/authorization/new"
	DefaultTokenURL     = "https://auth.shootproof.com/oauth2/authorization/token"
	DefaultTimeout      = 30 * time.Second
	DefaultWrapper      = "go-1.0.0"

	// WrapperHeader identifies the SDK flavour and version to the API.
	WrapperHeader = "X-WRAPPER"
)

// Result is a decoded API response. Its schema is not checked.
type Result map[string]any

// Client is the ShootProof API client.
//
// A Client owns its session: the OAuth application settings passed to Init and
// the tokens in the embedded TokenStore. Several clients can run side by side.
type Client struct {
	BaseURL      string
	AuthorizeURL string
	TokenURL     string
	HTTP         *http.Client
	UserAgent    string
	Wrapper      string

	TokenStore

	oauthMu     sync.RWMutex
	clientID    string
	redirectURI string
	scope       string
}

// Compile-time interface implementation check
var _ Requester = (*Client)(nil)

// New creates a client for baseURL (DefaultBaseURL when empty) using accessToken.
func New(baseURL, accessToken string) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
		AuthorizeURL: DefaultAuthorizeURL,
		TokenURL:     DefaultTokenURL,
		Wrapper:      DefaultWrapper,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
	}
	c.SetAccessToken(accessToken)
	return c
}

// MakeAPIRequest sends params to the API endpoint.
//
// The access token is read from the token store when the call is made and added
// as access_token. When photos is non-empty its fields are merged last, so photo
// keys override params keys. A status of 300 or above yields an *APIError;
// anything below is decoded as JSON and must be an object. Arrays, scalars
// and null are reported as an unexpected response format.
func (c *Client) MakeAPIRequest(ctx context.Context, params, photos *Form) (Result, error) {
	fields := params.Clone()
	fields.Set("access_token", c.AccessToken())

	var payload any
	if err := c.post(ctx, c.BaseURL, fields, photos, &payload); err != nil {
		return nil, err
	}
	result, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected API response format: got %s, want a JSON object", jsonKind(payload))
	}
	return result, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// post performs a form POST to url and decodes the JSON response into result.
func (c *Client) post(ctx context.Context, url string, params, photos *Form, result any) error {
	fields := params.Clone()
	if photos.Len() > 0 {
		fields.Merge(photos)
	}

	body, contentType, err := EncodeForm(fields)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if c.Wrapper != "" {
		req.Header.Set(WrapperHeader, c.Wrapper)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	apiMethod, _ := fields.Get("method")
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if debug.IsEnabled(ctx) {
			slog.Debug("request failed", "url", url, "api_method", apiMethod, "error", err)
		}
		return fmt.Errorf("request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if debug.IsEnabled(ctx) {
		slog.Debug("request complete", "url", url, "api_method", apiMethod, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if err := checkStatus(resp, respBody); err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return nil
}

// checkStatus classifies a response purely by status code.
func checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode < 300 {
		return nil
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Body:       body,
		Header:     resp.Header,
	}
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
