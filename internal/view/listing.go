package view

import (
	"context"

	"github.com/junseo/marketctl/internal/market"
	domain "github.com/junseo/marketctl/pkg/types"
)

// ListingAPI is the slice of the marketplace client the listing page uses.
type ListingAPI interface {
	ListProducts(ctx context.Context, params *market.ListProductsParams) (*domain.ProductList, error)
}

// Listing is the browse/search page controller.
type Listing struct {
	api ListingAPI

	Keyword  string
	Category domain.Category
	Sort     string
	Page     int
	PageSize int

	result  *domain.ProductList
	loading bool
	errMsg  string
}

// NewListing creates a listing page controller with default paging.
func NewListing(api ListingAPI) *Listing {
	return &Listing{
		api:      api,
		Sort:     "latest",
		Page:     1,
		PageSize: 10,
	}
}

// Result returns the last loaded page, or nil.
func (l *Listing) Result() *domain.ProductList { return l.result }

// Err returns the current error message, or "".
func (l *Listing) Err() string { return l.errMsg }

// Loading reports whether a fetch is in progress.
func (l *Listing) Loading() bool { return l.loading }

// Load fetches the current page of products.
func (l *Listing) Load(ctx context.Context) error {
	l.loading = true
	l.errMsg = ""
	defer func() { l.loading = false }()

	result, err := l.api.ListProducts(ctx, &market.ListProductsParams{
		Page:     l.Page,
		PageSize: l.PageSize,
		Sort:     l.Sort,
		Keyword:  l.Keyword,
		Category: l.Category,
	})
	if err != nil {
		l.errMsg = err.Error()
		return err
	}
	l.result = result
	return nil
}

// HasPrev reports whether a previous page exists.
func (l *Listing) HasPrev() bool {
	return l.Page > 1
}

// HasNext reports whether a next page likely exists. A short page means
// the listing is exhausted.
func (l *Listing) HasNext() bool {
	return l.result != nil && len(l.result.Items) >= l.PageSize
}
