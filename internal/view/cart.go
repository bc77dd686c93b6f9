// Package view holds the page controllers of the marketplace frontend:
// transient per-page state driven by the CLI commands and web handlers.
// Every user action clears the page's error slot on entry and fills it on
// failure, so a fault never escapes the page.
package view

import (
	"context"

	"github.com/junseo/marketctl/internal/metrics"
	domain "github.com/junseo/marketctl/pkg/types"
)

// CartAPI is the slice of the marketplace client the cart page uses.
type CartAPI interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	UpdateCartItem(ctx context.Context, itemID int64, patch *domain.CartItemPatch) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	CheckoutSelected(ctx context.Context) error
}

// Cart is the cart page controller. It keeps a locally mirrored copy of
// the server-side cart and mutates it optimistically: each action applies
// its change to the mirror before the network call, then restores the
// exact pre-action snapshot if the call fails.
type Cart struct {
	api CartAPI

	cart     *domain.Cart
	loading  bool
	mutating bool
	errMsg   string
	message  string
}

// NewCart creates a cart page controller.
func NewCart(api CartAPI) *Cart {
	return &Cart{api: api}
}

// Cart returns the visible (possibly optimistic) cart mirror, or nil
// before the first Load.
func (c *Cart) Cart() *domain.Cart {
	return c.cart
}

// Err returns the current error message, or "".
func (c *Cart) Err() string { return c.errMsg }

// Message returns the current success message, or "".
func (c *Cart) Message() string { return c.message }

// Loading reports whether the initial fetch is in progress.
func (c *Cart) Loading() bool { return c.loading }

// Mutating reports whether a user-triggered write is in flight. It only
// gates UI controls; overlapping mutations are not excluded.
func (c *Cart) Mutating() bool { return c.mutating }

// Load fetches the cart from the server, replacing the mirror.
func (c *Cart) Load(ctx context.Context) error {
	c.loading = true
	c.errMsg = ""
	defer func() { c.loading = false }()

	cart, err := c.api.GetCart(ctx)
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.cart = cart
	return nil
}

// UpdateItem changes one item's quantity or selection, optimistically.
func (c *Cart) UpdateItem(ctx context.Context, itemID int64, patch *domain.CartItemPatch) error {
	if c.cart == nil {
		return nil
	}

	next := cloneCart(c.cart)
	for i := range next.Items {
		if next.Items[i].ID != itemID {
			continue
		}
		if patch.Quantity != nil {
			next.Items[i].Quantity = *patch.Quantity
		}
		if patch.Selected != nil {
			next.Items[i].Selected = *patch.Selected
		}
		next.Items[i].Subtotal = next.Items[i].Price * int64(next.Items[i].Quantity)
	}

	return c.commit(ctx, next, func(ctx context.Context) error {
		return c.api.UpdateCartItem(ctx, itemID, patch)
	})
}

// DeleteItem removes one item, optimistically.
func (c *Cart) DeleteItem(ctx context.Context, itemID int64) error {
	if c.cart == nil {
		return nil
	}

	next := cloneCart(c.cart)
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	next.Items = kept

	return c.commit(ctx, next, func(ctx context.Context) error {
		return c.api.RemoveCartItem(ctx, itemID)
	})
}

// Checkout purchases the selected items. They disappear from the mirror
// immediately and reappear unchanged if the purchase fails.
func (c *Cart) Checkout(ctx context.Context) error {
	if c.cart == nil {
		return nil
	}

	next := cloneCart(c.cart)
	kept := next.Items[:0]
	for _, item := range next.Items {
		if !item.Selected {
			kept = append(kept, item)
		}
	}
	next.Items = kept

	err := c.commit(ctx, next, c.api.CheckoutSelected)
	if err == nil {
		c.message = "Selected items purchased."
	}
	return err
}

// commit is the transactional apply: show next, attempt the remote call,
// restore the snapshot on failure.
func (c *Cart) commit(
	ctx context.Context,
	next *domain.Cart,
	call func(context.Context) error,
) error {
	previous := c.cart
	recalcTotal(next)
	c.cart = next

	c.mutating = true
	c.errMsg = ""
	defer func() { c.mutating = false }()

	if err := call(ctx); err != nil {
		c.cart = previous
		c.errMsg = err.Error()
		metrics.CartRollbacksTotal.Inc()
		return err
	}
	return nil
}

// recalcTotal sets total_amount to the sum of price x quantity over
// selected items.
func recalcTotal(cart *domain.Cart) {
	var total int64
	for _, item := range cart.Items {
		if item.Selected {
			total += item.Price * int64(item.Quantity)
		}
	}
	cart.TotalAmount = total
}

// cloneCart deep-copies the mirror so optimistic edits never touch the
// rollback snapshot.
func cloneCart(cart *domain.Cart) *domain.Cart {
	next := *cart
	next.Items = make([]domain.CartItem, len(cart.Items))
	copy(next.Items, cart.Items)
	return &next
}
