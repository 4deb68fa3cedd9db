package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/config"
	"github.com/shootproof/shootproof-cli/internal/resolve"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want []string
	}{
		{"not logged in", config.ErrNotLoggedIn, []string{"Not logged in", "sp auth init", "SP_ACCESS_TOKEN"}},
		{"refresh failed", &api.AuthExchangeError{Refresh: true, Err: errors.New("400")}, []string{"problem refreshing authorization tokens", "sp auth login"}},
		{"code exchange failed", &api.AuthExchangeError{Err: errors.New("400")}, []string{"problem fetching authorization tokens", "single use"}},
		{"validation", &api.ValidationError{Argument: "albumID", Action: "move an album"}, []string{"albumID is required to move an album"}},
		{"unauthorized", &api.APIError{StatusCode: 401, Status: "Unauthorized"}, []string{"status 401", "sp auth refresh"}},
		{"forbidden", &api.APIError{StatusCode: 403, Status: "Forbidden"}, []string{"permission", "scope"}},
		{"server", &api.APIError{StatusCode: 503, Status: "Service Unavailable", Body: []byte("down")}, []string{"Service Unavailable", "down", "not your fault"}},
		{"ambiguous", &resolve.AmbiguousError{Query: "sm", Matches: []resolve.Match{{ID: 1, Name: "Smith"}, {ID: 2, Name: "Smyth"}}}, []string{"ambiguous match", "1: Smith", "numeric ID"}},
		{"refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), []string{"Connection refused", "SP_BASE_URL"}},
		{"dns", errors.New("dial tcp: lookup api.example: no such host"), []string{"DNS resolution failed"}},
		{"generic", errors.New("boom"), []string{"Error: boom"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := HandleError(tc.err)
			for _, w := range tc.want {
				if !strings.Contains(msg, w) {
					t.Errorf("HandleError(%v) = %q, missing %q", tc.err, msg, w)
				}
			}
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	if got := HandleError(nil); got != "" {
		t.Errorf("HandleError(nil) = %q", got)
	}
}

func TestHandleErrorTruncatesLongBody(t *testing.T) {
	body := strings.Repeat("x", maxBodyPreview+100)
	msg := HandleError(&api.APIError{StatusCode: 500, Status: "Internal Server Error", Body: []byte(body)})
	if strings.Contains(msg, body) {
		t.Error("expected body to be truncated")
	}
	if !strings.Contains(msg, strings.Repeat("x", maxBodyPreview)+"...") {
		t.Error("expected truncated body with ellipsis")
	}
}
