package api

import (
	"context"
	"fmt"
)

// Get returns one contact.
func (s ContactsService) Get(ctx context.Context, contactID int) (Result, error) {
	const method = "sp.contact.info"
	if contactID <= 0 {
		return nil, required(method, "contactID", "get a contact")
	}
	return call(ctx, s, method, field{"contact_id", contactID})
}

// Create adds a contact. Nested values such as address are sent as
// bracketed keys (address[city]=...). A method key in the record is ignored.
//
// Known fields: brand_id, first_name, last_name, email, phone, business_name,
// notes, tags (comma separated) and address{address_1, address_2, city, state,
// state_other, country, zip_postal}.
func (s ContactsService) Create(ctx context.Context, contact Record) (Result, error) {
	const method = "sp.contact.create"
	return s.MakeAPIRequest(ctx, contactForm(method, contact), nil)
}

// Update changes an existing contact.
//
// The API expects the create discriminator with a contact_id for updates.
// A nil field is sent as null and clears it: Record{"address": nil}.
func (s ContactsService) Update(ctx context.Context, contactID int, contact Record) (Result, error) {
	const method = "sp.contact.create"
	if contactID <= 0 {
		return nil, required(method, "contactID", "update a contact")
	}
	params := contactForm(method, contact).Set("contact_id", contactID)
	return s.MakeAPIRequest(ctx, params, nil)
}

// BulkCreate adds several contacts in one call, sent as contacts[i][field].
func (s ContactsService) BulkCreate(ctx context.Context, contacts []Record) (Result, error) {
	const method = "sp.contact.bulk_create"
	if len(contacts) == 0 {
		return nil, required(method, "contacts", "bulk create contacts")
	}
	for i, c := range contacts {
		if len(c) == 0 {
			return nil, required(method, fmt.Sprintf("contacts[%d]", i), "bulk create contacts")
		}
	}
	params := NewForm().Set("method", method)
	for i, c := range contacts {
		params.Merge(Flatten(indexKey("contacts", i), c))
	}
	return s.MakeAPIRequest(ctx, params, nil)
}

// Delete removes a contact.
func (s ContactsService) Delete(ctx context.Context, contactID int) (Result, error) {
	const method = "sp.contact.delete"
	if contactID <= 0 {
		return nil, required(method, "contactID", "delete a contact")
	}
	return call(ctx, s, method, field{"contact_id", contactID})
}

// contactForm flattens contact behind method. The discriminator is written
// again after the merge so a record key cannot replace it.
func contactForm(method string, contact Record) *Form {
	return NewForm().Set("method", method).Merge(Flatten("", contact)).Set("method", method)
}
