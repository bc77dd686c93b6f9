package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/junseo/marketctl/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductTable(products []domain.ProductSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPRICE\tCATEGORY\tCOND\tSTATUS\tSELLER\n")
	for i := range products {
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			products[i].ID,
			truncate(products[i].Title, 40),
			formatWon(products[i].Price),
			products[i].Category,
			products[i].Condition,
			products[i].Status,
			products[i].SellerNickname,
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.ProductDetail) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", p.ID)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Price:\t%s\n", formatWon(p.Price))
	tw.writef("Category:\t%s\n", p.Category)
	tw.writef("Condition:\t%s\n", p.Condition)
	tw.writef("Status:\t%s\n", p.Status)
	tw.writef("Seller:\t%s\n", p.SellerNickname)
	if p.IsBlinded {
		tw.writef("Blinded:\tY (%s)\n", p.BlindReason)
	}
	tw.writef("Description:\t%s\n", p.Description)
	for _, u := range p.ImageURLs {
		tw.writef("Image:\t%s\n", u)
	}
	return tw.finish()
}

func printCart(cart *domain.Cart) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ITEM\tPRODUCT\tTITLE\tPRICE\tQTY\tSELECTED\tSTATUS\n")
	for i := range cart.Items {
		tw.writef("%d\t%d\t%s\t%s\t%d\t%v\t%s\n",
			cart.Items[i].ID,
			cart.Items[i].ProductID,
			truncate(cart.Items[i].Title, 40),
			formatWon(cart.Items[i].Price),
			cart.Items[i].Quantity,
			cart.Items[i].Selected,
			cart.Items[i].Status,
		)
	}
	tw.writef("\nSelected total:\t%s\n", formatWon(cart.TotalAmount))
	return tw.finish()
}

func printPurchaseTable(purchases []domain.Purchase) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tPRODUCT\tTITLE\tQTY\tAMOUNT\tDATE\n")
	for i := range purchases {
		tw.writef("%d\t%d\t%s\t%d\t%s\t%s\n",
			purchases[i].ID,
			purchases[i].ProductID,
			truncate(purchases[i].ProductTitle, 40),
			purchases[i].Quantity,
			formatWon(purchases[i].Amount),
			purchases[i].PurchasedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printAdminTable(products []domain.AdminProduct) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tSTATUS\tBLINDED\tSELLER\n")
	for i := range products {
		blinded := "N"
		if products[i].IsBlinded {
			blinded = fmt.Sprintf("Y (%s)", products[i].BlindReason)
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\n",
			products[i].ID,
			truncate(products[i].Title, 40),
			products[i].Status,
			blinded,
			products[i].SellerNickname,
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatWon(amount int64) string {
	return fmt.Sprintf("%d won", amount)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
