package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
	"github.com/shootproof/shootproof-cli/internal/cli"
	"github.com/shootproof/shootproof-cli/internal/outfmt"
)

var accessLevels = []string{api.AccessPublic, api.AccessPublicPassword, api.AccessPrivatePassword}

var eventColumns = []string{"id", "name", "date", "brand_id", "status"}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event", "ev"},
		Short:   "Manage events",
		Long: strings.TrimSpace(`
Manage the studio's events.

Commands taking an event accept its numeric ID or its name; names are matched
against the event list.
`),
	}

	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsCreateCmd())
	cmd.AddCommand(newEventsDeleteCmd())
	cmd.AddCommand(newEventsPhotoExistsCmd())
	cmd.AddCommand(newEventsAccessCmd())
	cmd.AddCommand(newEventsPhotosCmd())

	return cmd
}

func newEventsListCmd() *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events",
		Example: strings.TrimSpace(`
  sp events list
  sp events list --brand "Main Street Photo"
  sp events list -o jsonl
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			v := view{listKey: "events", columns: eventColumns, empty: "No events found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				brandID, err := env.brandID(ctx, brand)
				if err != nil {
					return nil, err
				}
				return env.Services.Events.List(ctx, brandID)
			})
		}),
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Only events of this brand (ID or name)")
	return cmd
}

func newEventsCreateCmd() *cobra.Command {
	var brand, date string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an event",
		Example: strings.TrimSpace(`
  sp events create "Smith wedding" --date 2024-06-01
  sp events create "Jones portraits" --date "next sat"
  sp events create "Smith wedding" --brand 12 --dry-run
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if date != "" {
				day, err := cli.FormatDate(date, time.Now())
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD, a weekday or an offset like 3d", date)
				}
				date = day
			}
			name := strings.TrimSpace(args[0])
			v := view{done: func(r api.Result) string { return "Created event " + describe(r, "event", name) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				brandID, err := env.brandID(ctx, brand)
				if err != nil {
					return nil, err
				}
				return env.Services.Events.Create(ctx, name, brandID, date)
			})
		}),
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Brand the event belongs to (ID or name)")
	cmd.Flags().StringVar(&date, "date", "", "Event date: YYYY-MM-DD, today, tomorrow, a weekday or an offset like 3d")
	return cmd
}

func newEventsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <event>",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			var eventID int
			v := view{done: func(api.Result) string { return fmt.Sprintf("Deleted event %d", eventID) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				var err error
				if eventID, err = env.eventID(ctx, args[0]); err != nil {
					return nil, err
				}
				return env.Services.Events.Delete(ctx, eventID)
			})
		}),
	}
}

func newEventsPhotoExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photo-exists <event> <filename>",
		Short: "Check whether a file name was already uploaded to an event",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, view{}, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Events.PhotoExists(ctx, eventID, strings.TrimSpace(args[1]))
			})
		}),
	}
}

func newEventsAccessCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "access <event> <level>",
		Short: "Set who can view an event",
		Long: strings.TrimSpace(`
Set the access level of an event: public, public_password or private_password.
The password levels take --password.
`),
		Example: strings.TrimSpace(`
  sp events access 42 public
  sp events access 42 private_password --password s3cret
`),
		Args: cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			level := strings.ToLower(strings.TrimSpace(args[1]))
			if !slices.Contains(accessLevels, level) {
				return api.NewInvalidValueError("access level", args[1], accessLevels)
			}
			if level != api.AccessPublic && password == "" {
				return fmt.Errorf("--password is required for access level %s", level)
			}

			v := view{done: func(api.Result) string { return "Access level set to " + level }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Events.SetAccessLevel(ctx, eventID, level, password)
			})
		}),
	}

	cmd.Flags().StringVar(&password, "password", "", "Event password for the password levels")
	return cmd
}

func newEventsPhotosCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "photos <event>",
		Short: "List one page of an event's photos",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			v := view{listKey: "photos", columns: photoColumns, empty: "No photos found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Events.Photos(ctx, eventID, page)
			})
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (starts at 1)")
	return cmd
}

// describe names the resource a mutation returned, falling back to fallback.
func describe(result api.Result, key, fallback string) string {
	if nested, ok := result[key].(map[string]any); ok {
		result = nested
	}
	id := result["id"]
	if id == nil {
		return fmt.Sprintf("%q", fallback)
	}
	return fmt.Sprintf("%q (ID %s)", fallback, outfmt.Cell(id))
}
