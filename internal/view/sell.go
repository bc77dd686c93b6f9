package view

import (
	"context"
	"strings"

	domain "github.com/junseo/marketctl/pkg/types"
)

// SellAPI is the slice of the marketplace client the sell page uses.
type SellAPI interface {
	CreateProduct(ctx context.Context, p *domain.NewProduct) (*domain.ProductDetail, error)
}

// Sell is the new-listing page controller.
type Sell struct {
	api SellAPI

	Title       string
	Price       int64
	Description string
	Category    domain.Category
	Condition   domain.Condition
	ImageURLs   string // one URL per line, capped at 5

	created    *domain.ProductDetail
	submitting bool
	errMsg     string
}

// NewSell creates a sell page controller with form defaults.
func NewSell(api SellAPI) *Sell {
	return &Sell{
		api:       api,
		Category:  domain.CategoryElectronics,
		Condition: domain.ConditionUsed,
	}
}

// Created returns the product created by the last successful Submit.
func (s *Sell) Created() *domain.ProductDetail { return s.created }

// Err returns the current error message, or "".
func (s *Sell) Err() string { return s.errMsg }

// Submitting reports whether a submission is in flight.
func (s *Sell) Submitting() bool { return s.submitting }

// Submit creates the listing from the form contents.
func (s *Sell) Submit(ctx context.Context) error {
	s.submitting = true
	s.errMsg = ""
	defer func() { s.submitting = false }()

	created, err := s.api.CreateProduct(ctx, &domain.NewProduct{
		Title:       s.Title,
		Price:       s.Price,
		Description: s.Description,
		Category:    s.Category,
		Condition:   s.Condition,
		ImageURLs:   SplitImageURLs(s.ImageURLs),
	})
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.created = created
	return nil
}

// SplitImageURLs parses newline-separated image URLs, dropping blanks
// and keeping at most five.
func SplitImageURLs(raw string) []string {
	var urls []string
	for _, line := range strings.Split(raw, "\n") {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
		if len(urls) == 5 {
			break
		}
	}
	return urls
}
