package view

import (
	"context"

	domain "github.com/junseo/marketctl/pkg/types"
)

// MyPageAPI is the slice of the marketplace client the my-page uses.
type MyPageAPI interface {
	MyPurchases(ctx context.Context) (*domain.PurchaseList, error)
	MySales(ctx context.Context) (*domain.PurchaseList, error)
}

// MyPage is the purchase/sale history page controller.
type MyPage struct {
	api MyPageAPI

	purchases *domain.PurchaseList
	sales     *domain.PurchaseList
	loading   bool
	errMsg    string
}

// NewMyPage creates a my-page controller.
func NewMyPage(api MyPageAPI) *MyPage {
	return &MyPage{api: api}
}

// Purchases returns the loaded purchase history, or nil.
func (m *MyPage) Purchases() *domain.PurchaseList { return m.purchases }

// Sales returns the loaded sale history, or nil.
func (m *MyPage) Sales() *domain.PurchaseList { return m.sales }

// Err returns the current error message, or "".
func (m *MyPage) Err() string { return m.errMsg }

// Loading reports whether a fetch is in progress.
func (m *MyPage) Loading() bool { return m.loading }

// Load fetches both histories. The first failure wins the error slot and
// leaves whatever already loaded in place.
func (m *MyPage) Load(ctx context.Context) error {
	m.loading = true
	m.errMsg = ""
	defer func() { m.loading = false }()

	purchases, err := m.api.MyPurchases(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return err
	}
	m.purchases = purchases

	sales, err := m.api.MySales(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return err
	}
	m.sales = sales
	return nil
}
