package api

import "context"

// List returns one page of the studio's orders.
func (s OrdersService) List(ctx context.Context, page int) (Result, error) {
	return call(ctx, s, "sp.order.get_list", field{"page", defaultPage(page)})
}

// Get returns the details of one order.
func (s OrdersService) Get(ctx context.Context, orderID int) (Result, error) {
	const method = "sp.order.get_details"
	if orderID <= 0 {
		return nil, required(method, "orderID", "get the details of an order")
	}
	return call(ctx, s, method, field{"order_id", orderID})
}
