package api

import "context"

// Requester sends one API method call.
//
// *Client is the network implementation. Resource services only depend on this
// interface, so a recorder can stand in for the network (dry runs, tests) while
// argument validation still runs.
type Requester interface {
	MakeAPIRequest(ctx context.Context, params, photos *Form) (Result, error)
}

// call builds the form for an API method and sends it without attachments.
func call(ctx context.Context, r Requester, method string, fields ...field) (Result, error) {
	return r.MakeAPIRequest(ctx, newMethodForm(method, fields...), nil)
}

type field struct {
	key   string
	value any
}

func newMethodForm(method string, fields ...field) *Form {
	form := NewForm().Set("method", method)
	for _, f := range fields {
		form.Set(f.key, f.value)
	}
	return form
}

// optionalID returns id, or nil when it is not a positive value.
func optionalID(id int) any {
	if id <= 0 {
		return nil
	}
	return id
}

// optionalString returns s, or nil when it is empty.
func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// defaultPage maps unset pages to the first one.
func defaultPage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
