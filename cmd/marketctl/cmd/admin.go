package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junseo/marketctl/internal/view"
)

func adminCmd() *cobra.Command {
	adminRoot := &cobra.Command{
		Use:   "admin",
		Short: "Moderate listings (admin only)",
		Long: "List every product including blinded ones, hide a listing from\n" +
			"normal browsing with a recorded reason, or restore it.",
	}

	adminRoot.AddCommand(
		adminProductsCmd(),
		adminBlindCmd(),
		adminUnblindCmd(),
	)

	return adminRoot
}

// loadAdmin builds the moderation controller after verifying the admin
// role, mirroring the access gate of the admin page.
func loadAdmin(ctx context.Context) (*view.Admin, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	admin := view.NewAdmin(c)
	if err := admin.EnsureAdmin(ctx); err != nil {
		return nil, err
	}
	return admin, nil
}

func adminProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List all products for moderation",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			admin, err := loadAdmin(ctx)
			if err != nil {
				return err
			}
			if err := admin.Load(ctx); err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(admin.Items())
			}
			if len(admin.Items()) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			return printAdminTable(admin.Items())
		},
	}
}

func adminBlindCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:     "blind <product-id>",
		Short:   "Hide a listing from normal browsing",
		Example: `  marketctl admin blind 42 --reason "Counterfeit goods"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			admin, err := loadAdmin(ctx)
			if err != nil {
				return err
			}
			if reason != "" {
				admin.SetReason(id, reason)
			}
			if err := admin.Blind(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Product %d blinded.\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the blind")

	return cmd
}

func adminUnblindCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unblind <product-id>",
		Short:   "Restore a blinded listing",
		Example: `  marketctl admin unblind 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			admin, err := loadAdmin(ctx)
			if err != nil {
				return err
			}
			if err := admin.Unblind(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Product %d unblinded.\n", id)
			return nil
		},
	}
}
