package market

import (
	"context"
	"fmt"

	domain "github.com/junseo/marketctl/pkg/types"
)

// BuyNow purchases a single product immediately, bypassing the cart.
func (c *Client) BuyNow(ctx context.Context, productID int64) error {
	return c.post(ctx, fmt.Sprintf("/purchases/buy-now/%d", productID), nil, nil, true)
}

// CheckoutSelected purchases every cart item currently marked selected.
func (c *Client) CheckoutSelected(ctx context.Context) error {
	return c.post(ctx, "/purchases/checkout-selected", nil, nil, true)
}

// MyPurchases returns the caller's purchase history.
func (c *Client) MyPurchases(ctx context.Context) (*domain.PurchaseList, error) {
	var list domain.PurchaseList
	if err := c.get(ctx, "/purchases/me", &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}

// MySales returns the sale history for products the caller listed.
func (c *Client) MySales(ctx context.Context) (*domain.PurchaseList, error) {
	var list domain.PurchaseList
	if err := c.get(ctx, "/purchases/sales/me", &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}
