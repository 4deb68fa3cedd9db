package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/debug"
	"github.com/shootproof/shootproof-cli/internal/dryrun"
	"github.com/shootproof/shootproof-cli/internal/filter"
	"github.com/shootproof/shootproof-cli/internal/iocontext"
	"github.com/shootproof/shootproof-cli/internal/outfmt"
)

const envOutput = "SP_OUTPUT"

// rootFlags holds global CLI flags
type rootFlags struct {
	Output  string
	JSON    bool
	Query   string
	Compact bool
	Debug   bool
	DryRun  bool
	Quiet   bool
	Timeout time.Duration
	Profile string
}

// flags holds the global command flags. It is reset at the start of every
// Execute call; reading it outside a command's run sees the previous call.
var flags = rootFlags{
	Output:  defaultOutput(),
	Timeout: api.DefaultTimeout,
}

func defaultOutput() string {
	if value := strings.TrimSpace(os.Getenv(envOutput)); value != "" {
		return value
	}
	return "text"
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	flags = rootFlags{
		Output:  defaultOutput(),
		Timeout: api.DefaultTimeout,
	}

	root := &cobra.Command{
		Use:           "sp",
		Short:         "CLI for the ShootProof photography studio API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if flags.JSON {
				if flagOrAliasChanged(cmd, "output") && flags.Output != "json" {
					return fmt.Errorf("--json conflicts with --output %s", flags.Output)
				}
				flags.Output = "json"
			}
			if flags.Query != "" && flags.Output == "text" {
				if flagOrAliasChanged(cmd, "output") {
					return fmt.Errorf("--query requires --output json or jsonl (or --json)")
				}
				flags.Output = "json"
			}

			mode, err := outfmt.Parse(strings.TrimSpace(flags.Output))
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			ctx = outfmt.WithCompact(ctx, flags.Compact)

			if flags.Query != "" {
				query := filter.NormalizeExpression(flags.Query)
				if _, err := gojq.Parse(query); err != nil {
					return fmt.Errorf("invalid --query: %w", err)
				}
				ctx = outfmt.WithQuery(ctx, query)
			}

			ioStreams := iocontext.DefaultIO()
			if flags.Quiet {
				ioStreams.ErrOut = io.Discard
				if mode == outfmt.Text {
					ioStreams.Out = io.Discard
				}
			}
			ctx = iocontext.WithIO(ctx, ioStreams)
			cmd.SetOut(ioStreams.Out)
			cmd.SetErr(ioStreams.ErrOut)

			debugEnabled := flags.Debug || debug.FromEnv()
			debug.SetupLogger(debugEnabled)
			ctx = debug.WithDebug(ctx, debugEnabled)

			ctx = dryrun.WithDryRun(ctx, flags.DryRun)

			if flags.Timeout < 0 {
				return fmt.Errorf("--timeout must be >= 0")
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)

	root.PersistentFlags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl|ndjson (env SP_OUTPUT)")
	root.PersistentFlags().BoolVar(&flags.JSON, "json", false, "Shorthand for --output json")
	root.PersistentFlags().StringVarP(&flags.Query, "query", "q", "", "JQ expression to filter JSON output")
	root.PersistentFlags().BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging (env SP_DEBUG)")
	root.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false, "Print the API calls a mutating command would send, without sending them")
	root.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")
	root.PersistentFlags().StringVar(&flags.Profile, "profile", "", "Configuration profile to use (env SP_PROFILE)")
	root.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output")

	flagAlias(root.PersistentFlags(), "output", "out")
	flagAlias(root.PersistentFlags(), "json", "j")
	flagAlias(root.PersistentFlags(), "query", "jq")
	flagAlias(root.PersistentFlags(), "compact-json", "cj")
	flagAlias(root.PersistentFlags(), "dry-run", "dr")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newStudioCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newAlbumsCmd())
	root.AddCommand(newPhotosCmd())
	root.AddCommand(newOrdersCmd())
	root.AddCommand(newBrandsCmd())
	root.AddCommand(newContactsCmd())
	root.AddCommand(newMobileAppsCmd())
	root.AddCommand(newVersionCmd())

	err := root.Execute()
	if err == nil {
		return nil
	}

	// Errors from RunE were already rendered; cobra's own (unknown command,
	// bad flags, wrong arg count) were not.
	var handled *handledError
	if !errors.As(err, &handled) {
		_, _ = fmt.Fprint(os.Stderr, HandleError(err))
	}
	return err
}
