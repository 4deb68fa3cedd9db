package api

import "context"

// Delete removes a photo.
func (s PhotosService) Delete(ctx context.Context, photoID int) (Result, error) {
	const method = "sp.photo.delete"
	if photoID <= 0 {
		return nil, required(method, "photoID", "delete a photo")
	}
	return call(ctx, s, method, field{"photo_id", photoID})
}

// Upload sends a photo file to an event, into albumID when it is set.
// The file travels in the photo attachment set, so the body is multipart.
func (s PhotosService) Upload(ctx context.Context, eventID, albumID int, photo File) (Result, error) {
	const method = "sp.photo.upload"
	if eventID <= 0 {
		return nil, required(method, "eventID", "upload a photo")
	}
	if photo.Name == "" || len(photo.Content) == 0 {
		return nil, required(method, "photo", "upload a photo")
	}
	params := newMethodForm(method,
		field{"event_id", eventID},
		field{"album_id", optionalID(albumID)},
	)
	photos := NewForm().Set("photo", photo)
	return s.MakeAPIRequest(ctx, params, photos)
}
