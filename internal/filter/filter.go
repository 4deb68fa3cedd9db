// Package filter applies jq expressions (via gojq) to decoded API responses.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// NormalizeExpression fixes shell-escaped operators in jq expressions.
// Zsh escapes ! to \! even in single quotes, breaking operators like !=.
func NormalizeExpression(expr string) string {
	return strings.ReplaceAll(expr, `\!`, `!`)
}

// Apply runs expression against data. An empty expression returns data unchanged.
// A single result is returned as-is; several results are returned as a slice.
//
// ShootProof wraps lists in an envelope ({"stat": "ok", "events": [...]}). When
// a root-array query such as ".[]" fails on such an envelope, it is retried on
// the envelope's only list field.
func Apply(data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}

	expression = NormalizeExpression(expression)
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	results, err := runQuery(query, normalize(data))
	if err != nil {
		if items, ok := envelopeListFallback(data, expression); ok {
			if fallback, fallbackErr := runQuery(query, items); fallbackErr == nil {
				results, err = fallback, nil
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// ApplyToJSON applies expression to JSON bytes and returns pretty-printed JSON.
func ApplyToJSON(jsonData []byte, expression string) ([]byte, error) {
	if expression == "" {
		return jsonData, nil
	}
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	result, err := Apply(data, expression)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result, "", "  ")
}

func runQuery(query *gojq.Query, data any) ([]any, error) {
	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

// normalize converts typed Go values into the plain maps and slices gojq accepts.
func normalize(data any) any {
	switch data.(type) {
	case nil, map[string]any, []any, string, bool, float64, int:
		return data
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return data
	}
	return out
}

func envelopeListFallback(data any, expression string) (any, bool) {
	if !looksLikeRootArrayQuery(expression) {
		return nil, false
	}
	envelope := normalize(data)
	key, ok := ListKey(envelope)
	if !ok {
		return nil, false
	}
	return envelope.(map[string]any)[key], true
}

// ListKey returns the name of the single list-valued field of an envelope.
func ListKey(data any) (string, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return "", false
	}
	var keys []string
	for k, v := range m {
		if _, isList := v.([]any); isList {
			keys = append(keys, k)
		}
	}
	if len(keys) != 1 {
		return "", false
	}
	return keys[0], true
}

func looksLikeRootArrayQuery(expression string) bool {
	expr := strings.TrimSpace(expression)
	return strings.HasPrefix(expr, ".[]") || strings.HasPrefix(expr, "[.[]") || strings.HasPrefix(expr, "(.[]")
}
