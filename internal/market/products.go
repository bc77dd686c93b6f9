package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/junseo/marketctl/pkg/types"
)

// ListProductsParams defines query parameters for browsing products.
type ListProductsParams struct {
	Page     int
	PageSize int
	Sort     string // latest, price_asc, price_desc
	Keyword  string
	Category domain.Category
}

// ListProducts returns a page of products matching the given parameters.
func (c *Client) ListProducts(
	ctx context.Context,
	params *ListProductsParams,
) (*domain.ProductList, error) {
	q := url.Values{}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	q.Set("page_size", strconv.Itoa(pageSize))

	sort := params.Sort
	if sort == "" {
		sort = "latest"
	}
	q.Set("sort", sort)

	if params.Keyword != "" {
		q.Set("keyword", params.Keyword)
	}
	if params.Category != "" {
		q.Set("category", string(params.Category))
	}

	var list domain.ProductList
	if err := c.get(ctx, "/products?"+q.Encode(), &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	var p domain.ProductDetail
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct lists a new product for sale and returns the created record.
func (c *Client) CreateProduct(
	ctx context.Context,
	p *domain.NewProduct,
) (*domain.ProductDetail, error) {
	var created domain.ProductDetail
	if err := c.post(ctx, "/products", p, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct applies a partial update to a product the caller sells.
func (c *Client) UpdateProduct(
	ctx context.Context,
	id int64,
	patch *domain.ProductPatch,
) (*domain.ProductDetail, error) {
	var updated domain.ProductDetail
	if err := c.patch(ctx, fmt.Sprintf("/products/%d", id), patch, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product the caller sells.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/products/%d", id), true)
}
