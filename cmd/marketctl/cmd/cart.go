package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junseo/marketctl/internal/view"
	domain "github.com/junseo/marketctl/pkg/types"
)

func cartCmd() *cobra.Command {
	cartRoot := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
		Long: "Show the cart, add and remove products, change quantity or\n" +
			"selection, and check out the selected items.",
	}

	cartRoot.AddCommand(
		cartShowCmd(),
		cartAddCmd(),
		cartUpdateCmd(),
		cartRemoveCmd(),
		cartCheckoutCmd(),
	)

	return cartRoot
}

// loadCart builds the cart page controller with a fresh mirror.
func loadCart(ctx context.Context) (*view.Cart, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	cart := view.NewCart(c)
	if err := cart.Load(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

// showCart prints the controller's visible mirror, which after a failed
// mutation is the rolled-back pre-action state.
func showCart(cart *view.Cart) error {
	if jsonOutput() {
		return outputJSON(cart.Cart())
	}
	if msg := cart.Message(); msg != "" {
		fmt.Println(msg)
	}
	if len(cart.Cart().Items) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}
	return printCart(cart.Cart())
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(_ *cobra.Command, _ []string) error {
			cart, err := loadCart(context.Background())
			if err != nil {
				return err
			}
			return showCart(cart)
		},
	}
}

func cartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:     "add <product-id>",
		Short:   "Add a product to the cart",
		Example: `  marketctl cart add 42`,
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
			if err := c.AddToCart(context.Background(), id, quantity); err != nil {
				return err
			}
			fmt.Printf("Product %d added to cart.\n", id)
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity")

	return cmd
}

func cartUpdateCmd() *cobra.Command {
	var (
		quantity int
		selected bool
	)

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change a cart item's quantity or selection",
		Example: `  marketctl cart update 7 --selected
  marketctl cart update 7 --selected=false
  marketctl cart update 7 --quantity 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patch := &domain.CartItemPatch{}
			if cmd.Flags().Changed("quantity") {
				patch.Quantity = &quantity
			}
			if cmd.Flags().Changed("selected") {
				patch.Selected = &selected
			}
			if patch.Quantity == nil && patch.Selected == nil {
				return fmt.Errorf("pass --quantity or --selected")
			}

			ctx := context.Background()
			cart, err := loadCart(ctx)
			if err != nil {
				return err
			}
			if err := cart.UpdateItem(ctx, id, patch); err != nil {
				return err
			}
			return showCart(cart)
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "new quantity")
	cmd.Flags().BoolVar(&selected, "selected", false, "select for checkout")

	return cmd
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <item-id>",
		Short:   "Remove an item from the cart",
		Example: `  marketctl cart remove 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			cart, err := loadCart(ctx)
			if err != nil {
				return err
			}
			if err := cart.DeleteItem(ctx, id); err != nil {
				return err
			}
			return showCart(cart)
		},
	}
}

func cartCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Purchase the selected items",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			cart, err := loadCart(ctx)
			if err != nil {
				return err
			}
			if err := cart.Checkout(ctx); err != nil {
				return err
			}
			return showCart(cart)
		},
	}
}
