package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junseo/marketctl/internal/view"
)

func historyCmd() *cobra.Command {
	historyRoot := &cobra.Command{
		Use:   "history",
		Short: "Show purchase and sale history",
	}

	historyRoot.AddCommand(
		historyPurchasesCmd(),
		historySalesCmd(),
	)

	return historyRoot
}

func historyPurchasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purchases",
		Short: "List your purchases",
		RunE: func(_ *cobra.Command, _ []string) error {
			mypage, err := loadMyPage(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(mypage.Purchases())
			}
			if len(mypage.Purchases().Purchases) == 0 {
				fmt.Println("No purchases yet.")
				return nil
			}
			return printPurchaseTable(mypage.Purchases().Purchases)
		},
	}
}

func historySalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "List sales of your products",
		RunE: func(_ *cobra.Command, _ []string) error {
			mypage, err := loadMyPage(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(mypage.Sales())
			}
			if len(mypage.Sales().Purchases) == 0 {
				fmt.Println("No sales yet.")
				return nil
			}
			return printPurchaseTable(mypage.Sales().Purchases)
		},
	}
}

func loadMyPage(ctx context.Context) (*view.MyPage, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	mypage := view.NewMyPage(c)
	if err := mypage.Load(ctx); err != nil {
		return nil, err
	}
	return mypage, nil
}
