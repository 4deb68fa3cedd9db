package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

var orderColumns = []string{"id", "status", "total", "date"}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order", "or"},
		Short:   "Browse orders",
	}

	var page int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List one page of orders",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			v := view{listKey: "orders", columns: orderColumns, empty: "No orders found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Orders.List(ctx, page)
			})
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "Page number (starts at 1)")

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Orders.Get(ctx, orderID)
			})
		}),
	}

	cmd.AddCommand(list, get)
	return cmd
}
