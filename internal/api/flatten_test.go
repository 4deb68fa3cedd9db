package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenTopLevel(t *testing.T) {
	f := Flatten("", map[string]any{"a": 1, "b": map[string]any{"c": 2}})

	assert.Equal(t, map[string]string{"a": "1", "b[c]": "2"}, f.Strings())
}

func TestFlattenWithPrefix(t *testing.T) {
	f := Flatten("contact", map[string]any{"first_name": "Ann", "address": Record{"city": "Austin"}})

	assert.Equal(t, []string{"contact[address][city]", "contact[first_name]"}, f.Keys())
}

func TestFlattenDeepNesting(t *testing.T) {
	f := Flatten("", map[string]any{"a": map[string]any{"b": map[string]any{"c": "deep"}}})

	assert.Equal(t, map[string]string{"a[b][c]": "deep"}, f.Strings())
}

func TestFlattenSlices(t *testing.T) {
	f := Flatten("", map[string]any{
		"tags":   []string{"vip", "2024"},
		"ids":    []int{4, 5},
		"mixed":  []any{"x", map[string]any{"k": "v"}},
		"people": []Record{{"name": "A"}},
	})

	assert.Equal(t, map[string]string{
		"ids[0]":          "4",
		"ids[1]":          "5",
		"mixed[0]":        "x",
		"mixed[1][k]":     "v",
		"people[0][name]": "A",
		"tags[0]":         "vip",
		"tags[1]":         "2024",
	}, f.Strings())
}

func TestFlattenKeepsNullLeaves(t *testing.T) {
	f := Flatten("", map[string]any{"a": nil, "b": "x", "c": map[string]any{"d": nil}, "e": []any{nil}})

	assert.Equal(t, []string{"a", "b", "c[d]", "e[0]"}, f.Keys())
	assert.Equal(t, map[string]string{"a": "null", "b": "x", "c[d]": "null", "e[0]": "null"}, f.Strings())
}

func TestFlattenSortedKeys(t *testing.T) {
	f := Flatten("", map[string]any{"z": 1, "m": 2, "a": 3})

	assert.Equal(t, []string{"a", "m", "z"}, f.Keys())
}

func TestFlattenEmpty(t *testing.T) {
	assert.Equal(t, 0, Flatten("", nil).Len())
	assert.Equal(t, 0, Flatten("p", map[string]any{}).Len())
}
