package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

func newMobileAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mobile-apps",
		Aliases: []string{"mobile-app", "apps"},
		Short:   "Browse mobile apps",
	}

	var (
		brand string
		page  int
	)
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List one page of active mobile apps",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			v := view{listKey: "mobile_apps", columns: []string{"id", "name", "brand_id"}, empty: "No mobile apps found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				brandID, err := env.brandID(ctx, brand)
				if err != nil {
					return nil, err
				}
				return env.Services.MobileApps.List(ctx, brandID, page)
			})
		}),
	}
	list.Flags().StringVar(&brand, "brand", "", "Only apps of this brand (ID or name)")
	list.Flags().IntVar(&page, "page", 1, "Page number (starts at 1)")

	photos := &cobra.Command{
		Use:   "photos <app-id>",
		Short: "List the photos of a mobile app",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			appID, err := parseID(args[0], "mobile app")
			if err != nil {
				return err
			}
			v := view{listKey: "photos", columns: photoColumns, empty: "No photos found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.MobileApps.Photos(ctx, appID)
			})
		}),
	}

	cmd.AddCommand(list, photos)
	return cmd
}
