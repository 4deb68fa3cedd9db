package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shootproof/shootproof-cli/internal/api"
)

// Name fields tried, in order, when reading list entries.
var nameKeys = []string{"name", "brand_name", "event_name"}

// NamedFromResult extracts id/name pairs from the list field listKey of an API response.
// Entries without a usable id or name are skipped.
func NamedFromResult(result api.Result, listKey string) []Named {
	list, _ := result[listKey].([]any)
	items := make([]Named, 0, len(list))
	for _, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id, ok := toID(entry["id"])
		if !ok {
			continue
		}
		for _, key := range nameKeys {
			if name, ok := entry[key].(string); ok && name != "" {
				items = append(items, Named{ID: id, Name: name})
				break
			}
		}
	}
	return items
}

func toID(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), t > 0
	case int:
		return t, t > 0
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil && n > 0
	default:
		return 0, false
	}
}

// Resolver turns user input (an ID or a name) into resource IDs.
type Resolver struct {
	Services api.Services
}

// Brand resolves a brand ID or name. Numeric input is returned without a lookup.
func (r Resolver) Brand(ctx context.Context, input string) (int, error) {
	if id, ok := numericID(input); ok {
		return id, nil
	}
	result, err := r.Services.Brands.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list brands: %w", err)
	}
	id, err := FuzzyMatch(input, NamedFromResult(result, "brands"))
	if err != nil {
		return 0, fmt.Errorf("brand %q: %w", input, err)
	}
	return id, nil
}

// Event resolves an event ID or name, searching only brandID's events when set.
func (r Resolver) Event(ctx context.Context, input string, brandID int) (int, error) {
	if id, ok := numericID(input); ok {
		return id, nil
	}
	result, err := r.Services.Events.List(ctx, brandID)
	if err != nil {
		return 0, fmt.Errorf("failed to list events: %w", err)
	}
	id, err := FuzzyMatch(input, NamedFromResult(result, "events"))
	if err != nil {
		return 0, fmt.Errorf("event %q: %w", input, err)
	}
	return id, nil
}

func numericID(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	return n, err == nil && n > 0
}
