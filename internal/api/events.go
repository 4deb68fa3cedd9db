package api

import "context"

// Event access levels accepted by SetAccessLevel.
const (
	AccessPublic          = "public"
	AccessPublicPassword  = "public_password"
	AccessPrivatePassword = "private_password"
)

// List returns the studio's events, limited to one brand when brandID is set.
func (s EventsService) List(ctx context.Context, brandID int) (Result, error) {
	// The event list endpoint takes brandId, unlike every other method.
	return call(ctx, s, "sp.event.get_list", field{"brandId", optionalID(brandID)})
}

// Create adds an event. brandID and date (YYYY-MM-DD) are optional.
func (s EventsService) Create(ctx context.Context, name string, brandID int, date string) (Result, error) {
	const method = "sp.event.create"
	if name == "" {
		return nil, required(method, "name", "create an event")
	}
	return call(ctx, s, method,
		field{"event_name", name},
		field{"brand_id", optionalID(brandID)},
		field{"event_date", optionalString(date)},
	)
}

// Delete removes an event.
func (s EventsService) Delete(ctx context.Context, eventID int) (Result, error) {
	const method = "sp.event.delete"
	if eventID <= 0 {
		return nil, required(method, "eventID", "delete an event")
	}
	return call(ctx, s, method, field{"event_id", eventID})
}

// PhotoExists checks whether a file name was already uploaded to an event.
func (s EventsService) PhotoExists(ctx context.Context, eventID int, photoName string) (Result, error) {
	const method = "sp.event.photo_exists"
	if eventID <= 0 {
		return nil, required(method, "eventID", "check if a photo exists")
	}
	if photoName == "" {
		return nil, required(method, "photoName", "check if a photo exists")
	}
	return call(ctx, s, method,
		field{"event_id", eventID},
		field{"photo_name", photoName},
	)
}

// SetAccessLevel changes who can view an event. The password is only sent when non-empty.
func (s EventsService) SetAccessLevel(ctx context.Context, eventID int, level, password string) (Result, error) {
	const method = "sp.event.set_access_level"
	if eventID <= 0 {
		return nil, required(method, "eventID", "set an access level")
	}
	if level == "" {
		return nil, required(method, "accessLevel", "set an access level")
	}
	return call(ctx, s, method,
		field{"event_id", eventID},
		field{"access_level", level},
		field{"password", optionalString(password)},
	)
}

// Photos returns one page of an event's photos. Pages start at 1.
func (s EventsService) Photos(ctx context.Context, eventID, page int) (Result, error) {
	const method = "sp.event.get_photos"
	if eventID <= 0 {
		return nil, required(method, "eventID", "list event photos")
	}
	return call(ctx, s, method,
		field{"event_id", eventID},
		field{"page", defaultPage(page)},
	)
}
