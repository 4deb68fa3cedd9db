package api

import "context"

// List returns the albums of an event.
func (s AlbumsService) List(ctx context.Context, eventID int) (Result, error) {
	const method = "sp.album.get_list"
	if eventID <= 0 {
		return nil, required(method, "eventID", "list albums")
	}
	return call(ctx, s, method, field{"event_id", eventID})
}

// Photos returns one page of an album's photos.
func (s AlbumsService) Photos(ctx context.Context, albumID, page int) (Result, error) {
	const method = "sp.album.get_photos"
	if albumID <= 0 {
		return nil, required(method, "albumID", "list album photos")
	}
	return call(ctx, s, method,
		field{"album_id", albumID},
		field{"page", defaultPage(page)},
	)
}

// Create adds an album to an event, optionally nested under parentID.
func (s AlbumsService) Create(ctx context.Context, eventID int, name, password string, parentID int) (Result, error) {
	const method = "sp.album.create"
	if eventID <= 0 {
		return nil, required(method, "eventID", "create an album")
	}
	if name == "" {
		return nil, required(method, "albumName", "create an album")
	}
	return call(ctx, s, method,
		field{"event_id", eventID},
		field{"album_name", name},
		field{"password", optionalString(password)},
		field{"parent_id", optionalID(parentID)},
	)
}

// Move re-parents an album. A zero parentID moves it to the top level.
func (s AlbumsService) Move(ctx context.Context, albumID, parentID int) (Result, error) {
	const method = "sp.album.move"
	if albumID <= 0 {
		return nil, required(method, "albumID", "move an album")
	}
	return call(ctx, s, method,
		field{"album_id", albumID},
		field{"parent_id", optionalID(parentID)},
	)
}

// Rename changes an album's name.
func (s AlbumsService) Rename(ctx context.Context, albumID int, name string) (Result, error) {
	const method = "sp.album.rename"
	if albumID <= 0 {
		return nil, required(method, "albumID", "rename an album")
	}
	if name == "" {
		return nil, required(method, "albumName", "rename an album")
	}
	return call(ctx, s, method,
		field{"album_id", albumID},
		field{"album_name", name},
	)
}

// Delete removes an album.
func (s AlbumsService) Delete(ctx context.Context, albumID int) (Result, error) {
	const method = "sp.album.delete"
	if albumID <= 0 {
		return nil, required(method, "albumID", "delete an album")
	}
	return call(ctx, s, method, field{"album_id", albumID})
}
