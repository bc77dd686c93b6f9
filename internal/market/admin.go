package market

import (
	"context"
	"fmt"

	domain "github.com/junseo/marketctl/pkg/types"
)

type blindRequest struct {
	Reason string `json:"reason"`
}

// AdminProducts returns every product for the moderation screen,
// including blinded ones.
func (c *Client) AdminProducts(ctx context.Context) ([]domain.AdminProduct, error) {
	var resp struct {
		Items []domain.AdminProduct `json:"items"`
	}
	if err := c.get(ctx, "/admin/products", &resp, true); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// BlindProduct hides a product from normal browsing, recording a reason.
func (c *Client) BlindProduct(ctx context.Context, id int64, reason string) error {
	path := fmt.Sprintf("/admin/products/%d/blind", id)
	return c.post(ctx, path, blindRequest{Reason: reason}, nil, true)
}

// UnblindProduct restores a blinded product to normal browsing.
func (c *Client) UnblindProduct(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/products/%d/unblind", id), nil, nil, true)
}
