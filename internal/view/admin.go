package view

import (
	"context"
	"errors"

	domain "github.com/junseo/marketctl/pkg/types"
)

// ErrNotAdmin is returned when the current user lacks the admin role.
var ErrNotAdmin = errors.New("admin role required")

// DefaultBlindReason is recorded when a moderator blinds a product
// without entering a reason.
const DefaultBlindReason = "Suspended by moderator decision"

// AdminAPI is the slice of the marketplace client the moderation page uses.
type AdminAPI interface {
	Me(ctx context.Context) (*domain.User, error)
	AdminProducts(ctx context.Context) ([]domain.AdminProduct, error)
	BlindProduct(ctx context.Context, id int64, reason string) error
	UnblindProduct(ctx context.Context, id int64) error
}

// Admin is the moderation page controller.
type Admin struct {
	api AdminAPI

	items      []domain.AdminProduct
	reasonByID map[int64]string
	loading    bool
	mutating   bool
	errMsg     string
}

// NewAdmin creates a moderation page controller.
func NewAdmin(api AdminAPI) *Admin {
	return &Admin{
		api:        api,
		reasonByID: make(map[int64]string),
	}
}

// Items returns every product, visible and blinded.
func (a *Admin) Items() []domain.AdminProduct { return a.items }

// Visible returns products not currently blinded.
func (a *Admin) Visible() []domain.AdminProduct {
	return a.filter(false)
}

// Blinded returns products currently blinded.
func (a *Admin) Blinded() []domain.AdminProduct {
	return a.filter(true)
}

// Reason returns the working blind reason for a product.
func (a *Admin) Reason(id int64) string { return a.reasonByID[id] }

// SetReason records the working blind reason for a product.
func (a *Admin) SetReason(id int64, reason string) {
	a.reasonByID[id] = reason
}

// Err returns the current error message, or "".
func (a *Admin) Err() string { return a.errMsg }

// Loading reports whether a fetch is in progress.
func (a *Admin) Loading() bool { return a.loading }

// Mutating reports whether a moderation action is in flight.
func (a *Admin) Mutating() bool { return a.mutating }

// EnsureAdmin verifies the current user holds the admin role.
func (a *Admin) EnsureAdmin(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// Load fetches the moderation list and seeds empty working reasons from
// each product's recorded blind reason.
func (a *Admin) Load(ctx context.Context) error {
	a.loading = true
	a.errMsg = ""
	defer func() { a.loading = false }()

	items, err := a.api.AdminProducts(ctx)
	if err != nil {
		a.errMsg = err.Error()
		return err
	}
	a.items = items
	for _, item := range items {
		if a.reasonByID[item.ID] == "" {
			a.reasonByID[item.ID] = item.BlindReason
		}
	}
	return nil
}

// Blind hides a product using its working reason (or the default when
// blank), then reloads the list.
func (a *Admin) Blind(ctx context.Context, id int64) error {
	reason := a.reasonByID[id]
	if reason == "" {
		reason = DefaultBlindReason
	}
	return a.mutate(ctx, func(ctx context.Context) error {
		return a.api.BlindProduct(ctx, id, reason)
	})
}

// Unblind restores a product, then reloads the list.
func (a *Admin) Unblind(ctx context.Context, id int64) error {
	return a.mutate(ctx, func(ctx context.Context) error {
		return a.api.UnblindProduct(ctx, id)
	})
}

func (a *Admin) mutate(ctx context.Context, call func(context.Context) error) error {
	a.mutating = true
	a.errMsg = ""
	defer func() { a.mutating = false }()

	if err := call(ctx); err != nil {
		a.errMsg = err.Error()
		return err
	}
	return a.Load(ctx)
}

func (a *Admin) filter(blinded bool) []domain.AdminProduct {
	var out []domain.AdminProduct
	for _, item := range a.items {
		if item.IsBlinded == blinded {
			out = append(out, item)
		}
	}
	return out
}
