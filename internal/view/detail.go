package view

import (
	"context"

	domain "github.com/junseo/marketctl/pkg/types"
)

// DetailAPI is the slice of the marketplace client the product detail
// page uses.
type DetailAPI interface {
	GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error)
	Me(ctx context.Context) (*domain.User, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	BuyNow(ctx context.Context, productID int64) error
	UpdateProduct(ctx context.Context, id int64, patch *domain.ProductPatch) (*domain.ProductDetail, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// EditForm holds the editable product fields while the detail page is in
// edit mode.
type EditForm struct {
	Title       string
	Price       int64
	Description string
	Category    domain.Category
	Condition   domain.Condition
	ImageURLs   []string
}

// Detail is the product detail page controller.
type Detail struct {
	api DetailAPI

	product    *domain.ProductDetail
	user       *domain.User
	Form       EditForm
	loading    bool
	submitting bool
	errMsg     string
	message    string
}

// NewDetail creates a product detail page controller.
func NewDetail(api DetailAPI) *Detail {
	return &Detail{api: api}
}

// Product returns the loaded product, or nil.
func (d *Detail) Product() *domain.ProductDetail { return d.product }

// User returns the current user, or nil when unauthenticated.
func (d *Detail) User() *domain.User { return d.user }

// Err returns the current error message, or "".
func (d *Detail) Err() string { return d.errMsg }

// Message returns the current success message, or "".
func (d *Detail) Message() string { return d.message }

// Loading reports whether the initial fetch is in progress.
func (d *Detail) Loading() bool { return d.loading }

// Submitting reports whether a user-triggered write is in flight.
func (d *Detail) Submitting() bool { return d.submitting }

// IsSeller reports whether the current user listed this product.
func (d *Detail) IsSeller() bool {
	return d.product != nil && d.user != nil && d.user.ID == d.product.SellerID
}

// Load fetches the product and seeds the edit form from it.
func (d *Detail) Load(ctx context.Context, id int64) error {
	d.loading = true
	d.errMsg = ""
	defer func() { d.loading = false }()

	product, err := d.api.GetProduct(ctx, id)
	if err != nil {
		d.errMsg = err.Error()
		return err
	}
	d.product = product
	d.resetForm()
	return nil
}

// LoadUser fetches the current user. Failure just leaves the page
// unauthenticated; the seller-only controls stay hidden.
func (d *Detail) LoadUser(ctx context.Context) {
	user, err := d.api.Me(ctx)
	if err != nil {
		d.user = nil
		return
	}
	d.user = user
}

// AddToCart puts this product into the cart.
func (d *Detail) AddToCart(ctx context.Context) error {
	if d.product == nil {
		return nil
	}
	return d.submit(ctx, "Added to cart.", func(ctx context.Context) error {
		return d.api.AddToCart(ctx, d.product.ID, 1)
	})
}

// BuyNow purchases this product immediately and reloads it to pick up
// the new sale status.
func (d *Detail) BuyNow(ctx context.Context) error {
	if d.product == nil {
		return nil
	}
	err := d.submit(ctx, "Purchase complete.", func(ctx context.Context) error {
		return d.api.BuyNow(ctx, d.product.ID)
	})
	if err != nil {
		return err
	}
	return d.Load(ctx, d.product.ID)
}

// SaveEdits PATCHes the product with the edit form contents.
func (d *Detail) SaveEdits(ctx context.Context) error {
	if d.product == nil {
		return nil
	}

	urls := d.Form.ImageURLs
	if len(urls) > 5 {
		urls = urls[:5]
	}
	patch := &domain.ProductPatch{
		Title:       &d.Form.Title,
		Price:       &d.Form.Price,
		Description: &d.Form.Description,
		Category:    &d.Form.Category,
		Condition:   &d.Form.Condition,
		ImageURLs:   urls,
	}

	return d.submit(ctx, "Product updated.", func(ctx context.Context) error {
		updated, err := d.api.UpdateProduct(ctx, d.product.ID, patch)
		if err != nil {
			return err
		}
		d.product = updated
		d.resetForm()
		return nil
	})
}

// Delete removes the product. The caller navigates away on success.
func (d *Detail) Delete(ctx context.Context) error {
	if d.product == nil {
		return nil
	}
	return d.submit(ctx, "", func(ctx context.Context) error {
		return d.api.DeleteProduct(ctx, d.product.ID)
	})
}

func (d *Detail) submit(
	ctx context.Context,
	successMsg string,
	call func(context.Context) error,
) error {
	d.submitting = true
	d.errMsg = ""
	d.message = ""
	defer func() { d.submitting = false }()

	if err := call(ctx); err != nil {
		d.errMsg = err.Error()
		return err
	}
	d.message = successMsg
	return nil
}

func (d *Detail) resetForm() {
	d.Form = EditForm{
		Title:       d.product.Title,
		Price:       d.product.Price,
		Description: d.product.Description,
		Category:    d.product.Category,
		Condition:   d.product.Condition,
		ImageURLs:   append([]string(nil), d.product.ImageURLs...),
	}
}
