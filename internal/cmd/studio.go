package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

func newStudioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Studio information and settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show studio information",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Studio.Info(ctx)
			})
		}),
	})
	cmd.AddCommand(newStudioSettingCmd())

	return cmd
}

func newStudioSettingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setting",
		Aliases: []string{"settings"},
		Short:   "Read or change a studio setting",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a studio setting",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Studio.GetSetting(ctx, strings.TrimSpace(args[0]))
			})
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a studio setting",
		Example: strings.TrimSpace(`
  sp studio setting set watermark_enabled 1
`),
		Args: cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			v := view{done: func(api.Result) string { return "Updated setting " + key }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Studio.SetSetting(ctx, key, args[1])
			})
		}),
	})

	return cmd
}
