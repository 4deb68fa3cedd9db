package api

import (
	"fmt"
	"sort"
)

// Record is a structured value (possibly nested) that is sent as bracketed form keys.
type Record map[string]any

// Flatten expands a nested record into bracketed form keys.
//
// With an empty prefix top-level keys are kept as is; otherwise every key becomes
// prefix[key]. Nested records recurse with the composed key as the new prefix, so
// {"address": {"city": "Austin"}} yields address[city]=Austin. Slices use numeric
// indexes (tags[0], tags[1]). Keys of each record are emitted in sorted order.
// A nil leaf is kept as Null, so {"address": nil} sends address=null.
func Flatten(prefix string, record map[string]any) *Form {
	form := NewForm()
	flattenInto(form, prefix, record)
	return form
}

func flattenInto(form *Form, prefix string, record map[string]any) {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "[" + k + "]"
		}
		flattenValue(form, key, record[k])
	}
}

func flattenValue(form *Form, key string, value any) {
	switch v := value.(type) {
	case nil:
		form.Set(key, Null)
	case map[string]any:
		flattenInto(form, key, v)
	case Record:
		flattenInto(form, key, v)
	case []map[string]any:
		for i, item := range v {
			flattenInto(form, indexKey(key, i), item)
		}
	case []Record:
		for i, item := range v {
			flattenInto(form, indexKey(key, i), item)
		}
	case []any:
		for i, item := range v {
			flattenValue(form, indexKey(key, i), item)
		}
	case []string:
		for i, item := range v {
			form.Set(indexKey(key, i), item)
		}
	case []int:
		for i, item := range v {
			form.Set(indexKey(key, i), item)
		}
	default:
		form.Set(key, v)
	}
}

func indexKey(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}
