package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// ContentTypeForm is the content type of bodies without file fields.
const ContentTypeForm = "application/x-www-form-urlencoded"

// File is a binary form field. Forms holding a File are sent as multipart/form-data.
type File struct {
	Name    string
	Content []byte
}

// Null is an explicit null field, sent as the literal "null". Contact updates
// use it to clear a value such as address; a plain nil is never sent.
var Null = nullValue{}

type nullValue struct{}

func (nullValue) String() string { return "null" }

// Form is an ordered set of request fields.
//
// Keys keep their insertion order. Setting a key that already exists replaces
// the value in place, so the last write wins without reordering the body.
// The zero value and a nil *Form are both empty forms.
type Form struct {
	keys   []string
	values map[string]any
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{values: make(map[string]any)}
}

// Set stores value under key. A nil value means "absent" and is ignored.
func (f *Form) Set(key string, value any) *Form {
	if value == nil {
		return f
	}
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
	return f
}

// Get returns the value stored under key.
func (f *Form) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Del removes key from the form.
func (f *Form) Del(key string) {
	if f == nil {
		return
	}
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (f *Form) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the field names in order.
func (f *Form) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Clone returns a shallow copy. Cloning a nil form yields an empty form.
func (f *Form) Clone() *Form {
	out := NewForm()
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out.Set(k, f.values[k])
	}
	return out
}

// Merge copies every field of other into f. Fields of other override fields of f.
func (f *Form) Merge(other *Form) *Form {
	if other == nil {
		return f
	}
	for _, k := range other.keys {
		f.Set(k, other.values[k])
	}
	return f
}

// HasFiles reports whether any field holds a File.
func (f *Form) HasFiles() bool {
	if f == nil {
		return false
	}
	for _, k := range f.keys {
		switch f.values[k].(type) {
		case File, *File:
			return true
		}
	}
	return false
}

// Strings renders every field as text; files are shown by name.
func (f *Form) Strings() map[string]string {
	out := make(map[string]string, f.Len())
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		switch v := f.values[k].(type) {
		case File:
			out[k] = "@" + v.Name
		case *File:
			out[k] = "@" + v.Name
		default:
			s, err := formatValue(v)
			if err != nil {
				s = fmt.Sprintf("%v", v)
			}
			out[k] = s
		}
	}
	return out
}

// EncodeForm serializes f in field order and returns the body with its content type.
// Forms without files are URL-encoded; forms with files become multipart/form-data.
func EncodeForm(f *Form) ([]byte, string, error) {
	if f.HasFiles() {
		return encodeMultipart(f)
	}

	var b strings.Builder
	for i, k := range f.Keys() {
		s, err := formatValue(f.values[k])
		if err != nil {
			return nil, "", fmt.Errorf("field %s: %w", k, err)
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
	}
	return []byte(b.String()), ContentTypeForm, nil
}

func encodeMultipart(f *Form) ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, k := range f.Keys() {
		var file *File
		switch v := f.values[k].(type) {
		case File:
			file = &v
		case *File:
			file = v
		}
		if file != nil {
			part, err := writer.CreateFormFile(k, file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create form file %s: %w", k, err)
			}
			if _, err := part.Write(file.Content); err != nil {
				return nil, "", fmt.Errorf("failed to write file content %s: %w", k, err)
			}
			continue
		}

		s, err := formatValue(f.values[k])
		if err != nil {
			return nil, "", fmt.Errorf("field %s: %w", k, err)
		}
		if err := writer.WriteField(k, s); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

func formatValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return t.String(), nil
	case nullValue:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	case map[string]any, Record, []any, []map[string]any:
		return "", fmt.Errorf("nested value of type %T must be flattened first", v)
	default:
		return "", fmt.Errorf("unsupported form value of type %T", v)
	}
}
