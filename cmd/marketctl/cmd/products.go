package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/junseo/marketctl/internal/view"
	domain "github.com/junseo/marketctl/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
		Long: "Browse and search the marketplace listing, inspect product detail,\n" +
			"and create, edit, or delete your own listings.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsSellCmd(),
		productsEditCmd(),
		productsDeleteCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		keyword  string
		category string
		sort     string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		Example: `  # Browse the latest products
  marketctl products list

  # Search by keyword within a category
  marketctl products list --keyword camera --category electronics

  # Cheapest first, second page
  marketctl products list --sort price_asc --page 2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			listing := view.NewListing(c)
			listing.Keyword = strings.TrimSpace(keyword)
			listing.Category = domain.Category(category)
			listing.Sort = sort
			listing.Page = page
			listing.PageSize = pageSize

			if err := listing.Load(context.Background()); err != nil {
				return err
			}
			result := listing.Result()

			if jsonOutput() {
				return outputJSON(result)
			}
			if len(result.Items) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			fmt.Printf("Page %d (%d of %d products)\n\n",
				result.Page, len(result.Items), result.Total)
			return printProductTable(result.Items)
		},
	}
	cmd.Flags().StringVar(&keyword, "keyword", "", "keyword filter")
	cmd.Flags().StringVar(&category, "category", "", "category filter (electronics, clothes, home, books, etc)")
	cmd.Flags().StringVar(&sort, "sort", "latest", "sort order (latest, price_asc, price_desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "results per page")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show product detail",
		Example: `  marketctl products get 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			p, err := c.GetProduct(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(p)
		},
	}
}

func productsSellCmd() *cobra.Command {
	var (
		title       string
		price       int64
		description string
		category    string
		condition   string
		imageURLs   []string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List a new product for sale",
		Example: `  marketctl products sell --title "Used camera" --price 150000 \
    --description "Light scratches, works fine" \
    --category electronics --condition used \
    --image https://example.com/1.jpg`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if title == "" || price <= 0 || description == "" {
				return fmt.Errorf("--title, --price and --description are required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}

			sell := view.NewSell(c)
			sell.Title = title
			sell.Price = price
			sell.Description = description
			sell.Category = domain.Category(category)
			sell.Condition = domain.Condition(condition)
			sell.ImageURLs = strings.Join(imageURLs, "\n")

			if err := sell.Submit(context.Background()); err != nil {
				return err
			}
			created := sell.Created()
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Product listed: %s (id %d)\n", created.Title, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "product title")
	cmd.Flags().Int64Var(&price, "price", 0, "price in won")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "electronics", "category (electronics, clothes, home, books, etc)")
	cmd.Flags().StringVar(&condition, "condition", "used", "condition (new, used)")
	cmd.Flags().StringArrayVar(&imageURLs, "image", nil, "image URL (repeatable, up to 5)")

	return cmd
}

func productsEditCmd() *cobra.Command {
	var (
		title       string
		price       int64
		description string
		category    string
		condition   string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product you sell",
		Long: "Edit fields of one of your listings. Only the flags you pass are\n" +
			"changed; everything else keeps its current value.",
		Example: `  marketctl products edit 42 --price 120000
  marketctl products edit 42 --status reserved`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := &domain.ProductPatch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("price") {
				patch.Price = &price
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("category") {
				cat := domain.Category(category)
				patch.Category = &cat
			}
			if cmd.Flags().Changed("condition") {
				cond := domain.Condition(condition)
				patch.Condition = &cond
			}
			if cmd.Flags().Changed("status") {
				st := domain.ProductStatus(status)
				patch.Status = &st
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			updated, err := c.UpdateProduct(context.Background(), id, patch)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			fmt.Printf("Product %d updated.\n", updated.ID)
			return printProductDetail(updated)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "product title")
	cmd.Flags().Int64Var(&price, "price", 0, "price in won")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&condition, "condition", "", "condition (new, used)")
	cmd.Flags().StringVar(&status, "status", "", "sale status (on_sale, reserved, sold)")

	return cmd
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a product you sell",
		Example: `  marketctl products delete 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteProduct(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Product %d deleted.\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
