package api

import "context"

// List returns one page of active mobile apps, limited to a brand when brandID is set.
func (s MobileAppsService) List(ctx context.Context, brandID, page int) (Result, error) {
	return call(ctx, s, "sp.mobile_app.get_list",
		field{"page", defaultPage(page)},
		field{"brand_id", optionalID(brandID)},
	)
}

// Photos returns the photos of a mobile app.
func (s MobileAppsService) Photos(ctx context.Context, appID int) (Result, error) {
	const method = "sp.mobile_app.get_photos"
	if appID <= 0 {
		return nil, required(method, "mobileAppID", "list mobile app photos")
	}
	return call(ctx, s, method, field{"mobile_app_id", appID})
}
