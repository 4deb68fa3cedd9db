package api

import "context"

// List returns every brand of the studio.
func (s BrandsService) List(ctx context.Context) (Result, error) {
	return call(ctx, s, "sp.brand.get_list")
}

// Get returns one brand.
func (s BrandsService) Get(ctx context.Context, brandID int) (Result, error) {
	const method = "sp.brand.info"
	if brandID <= 0 {
		return nil, required(method, "brandID", "retrieve brand info")
	}
	return call(ctx, s, method, field{"brand_id", brandID})
}
