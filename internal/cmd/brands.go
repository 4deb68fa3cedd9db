package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

func newBrandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brands",
		Aliases: []string{"brand", "br"},
		Short:   "Browse brands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List brands",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			v := view{listKey: "brands", columns: []string{"id", "name"}, empty: "No brands found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Brands.List(ctx)
			})
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <brand>",
		Short: "Show a brand (ID or name)",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				brandID, err := env.brandID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Brands.Get(ctx, brandID)
			})
		}),
	})

	return cmd
}
