// Package domain defines the core business types for the secondhand
// marketplace client.
package domain

import "time"

// Role represents a user's role on the marketplace.
type Role string

// Role constants.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Category represents a product category.
type Category string

// Category constants.
const (
	CategoryElectronics Category = "electronics"
	CategoryClothes     Category = "clothes"
	CategoryHome        Category = "home"
	CategoryBooks       Category = "books"
	CategoryEtc         Category = "etc"
)

// Categories lists all product categories in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothes,
		CategoryHome,
		CategoryBooks,
		CategoryEtc,
	}
}

// Condition represents the physical condition of a product.
type Condition string

// Condition constants.
const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// ProductStatus represents the sale state of a product.
type ProductStatus string

// Product status constants.
const (
	StatusOnSale   ProductStatus = "on_sale"
	StatusReserved ProductStatus = "reserved"
	StatusSold     ProductStatus = "sold"
)

// User is the authenticated marketplace user.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProductSummary is one row of a product listing page.
type ProductSummary struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Price          int64         `json:"price"`
	Category       Category      `json:"category"`
	Condition      Condition     `json:"condition"`
	Status         ProductStatus `json:"status"`
	IsBlinded      bool          `json:"is_blinded"`
	SellerNickname string        `json:"seller_nickname"`
	ThumbnailURL   string        `json:"thumbnail_url,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ProductList is a paginated product listing response.
type ProductList struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []ProductSummary `json:"items"`
}

// ProductDetail is the full product record shown on the detail page.
type ProductDetail struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Price          int64         `json:"price"`
	Description    string        `json:"description"`
	Category       Category      `json:"category"`
	Condition      Condition     `json:"condition"`
	Status         ProductStatus `json:"status"`
	IsBlinded      bool          `json:"is_blinded"`
	BlindReason    string        `json:"blind_reason,omitempty"`
	SellerID       int64         `json:"seller_id"`
	SellerNickname string        `json:"seller_nickname"`
	ImageURLs      []string      `json:"image_urls"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewProduct carries the fields for creating a listing.
type NewProduct struct {
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	ImageURLs   []string  `json:"image_urls"`
}

// ProductPatch carries partial updates for a listing. Nil fields are
// omitted from the request body and left unchanged server-side.
type ProductPatch struct {
	Title       *string        `json:"title,omitempty"`
	Price       *int64         `json:"price,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *Category      `json:"category,omitempty"`
	Condition   *Condition     `json:"condition,omitempty"`
	Status      *ProductStatus `json:"status,omitempty"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
}

// CartItem is one product in the cart.
type CartItem struct {
	ID        int64         `json:"id"`
	ProductID int64         `json:"product_id"`
	Title     string        `json:"title"`
	Status    ProductStatus `json:"status"`
	Price     int64         `json:"price"`
	Quantity  int           `json:"quantity"`
	Selected  bool          `json:"selected"`
	Subtotal  int64         `json:"subtotal"`
}

// Cart is the cart contents with the total over selected items.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount int64      `json:"total_amount"`
}

// CartItemPatch carries a quantity or selection change for one cart item.
// Nil fields are omitted and left unchanged server-side.
type CartItemPatch struct {
	Quantity *int  `json:"quantity,omitempty"`
	Selected *bool `json:"selected,omitempty"`
}

// Purchase is one completed purchase or sale record.
type Purchase struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Quantity     int       `json:"quantity"`
	Amount       int64     `json:"amount"`
	PurchasedAt  time.Time `json:"purchased_at"`
}

// PurchaseList wraps a purchase or sale history response.
type PurchaseList struct {
	Purchases []Purchase `json:"purchases"`
}

// AdminProduct is one row of the admin moderation screen.
type AdminProduct struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Status         ProductStatus `json:"status"`
	IsBlinded      bool          `json:"is_blinded"`
	BlindReason    string        `json:"blind_reason,omitempty"`
	SellerNickname string        `json:"seller_nickname"`
}
