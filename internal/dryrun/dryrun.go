// Package dryrun previews mutating API calls without sending them.
package dryrun

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/shootproof/shootproof-cli/internal/api"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes one API call that would have been sent.
type Preview struct {
	Method string            `json:"method"`
	Params map[string]string `json:"params"`
	Files  []string          `json:"files,omitempty"`
}

// Recorder is an api.Requester that records calls instead of sending them.
// Argument validation in the resource services still runs before a call is recorded.
type Recorder struct {
	mu       sync.Mutex
	previews []Preview
}

var _ api.Requester = (*Recorder)(nil)

// MakeAPIRequest records params and photos and returns an empty result.
// The access token is left out of the preview.
func (r *Recorder) MakeAPIRequest(_ context.Context, params, photos *api.Form) (api.Result, error) {
	fields := params.Clone()
	files := photos.Keys()
	fields.Merge(photos)
	fields.Del("access_token")

	values := fields.Strings()
	method := values["method"]
	delete(values, "method")

	r.mu.Lock()
	r.previews = append(r.previews, Preview{Method: method, Params: values, Files: files})
	r.mu.Unlock()
	return api.Result{}, nil
}

// Previews returns the recorded calls in order.
func (r *Recorder) Previews() []Preview {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Preview(nil), r.previews...)
}

// Write outputs the preview to the writer
func (p Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would call %s\n", p.Method)
	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")

	if len(p.Params) > 0 {
		keys := make([]string, 0, len(p.Params))
		for k := range p.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", k, p.Params[k])
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")
	_, _ = fmt.Fprintln(w, "No changes made (dry-run mode)")
}
