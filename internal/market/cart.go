package market

import (
	"context"
	"fmt"

	domain "github.com/junseo/marketctl/pkg/types"
)

type addCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// GetCart returns the caller's cart.
func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.get(ctx, "/cart", &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart puts a product into the caller's cart.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	body := addCartRequest{ProductID: productID, Quantity: quantity}
	return c.post(ctx, "/cart", body, nil, true)
}

// UpdateCartItem changes the quantity or selection of one cart item.
func (c *Client) UpdateCartItem(
	ctx context.Context,
	itemID int64,
	patch *domain.CartItemPatch,
) error {
	return c.patch(ctx, fmt.Sprintf("/cart/%d", itemID), patch, nil, true)
}

// RemoveCartItem deletes one item from the caller's cart.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.del(ctx, fmt.Sprintf("/cart/%d", itemID), true)
}
