package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

var albumColumns = []string{"id", "name", "parent_id", "photo_count"}

func newAlbumsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "albums",
		Aliases: []string{"album", "al"},
		Short:   "Manage the albums of an event",
	}

	cmd.AddCommand(newAlbumsListCmd())
	cmd.AddCommand(newAlbumsPhotosCmd())
	cmd.AddCommand(newAlbumsCreateCmd())
	cmd.AddCommand(newAlbumsMoveCmd())
	cmd.AddCommand(newAlbumsRenameCmd())
	cmd.AddCommand(newAlbumsDeleteCmd())

	return cmd
}

func newAlbumsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <event>",
		Aliases: []string{"ls"},
		Short:   "List the albums of an event",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			v := view{listKey: "albums", columns: albumColumns, empty: "No albums found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Albums.List(ctx, eventID)
			})
		}),
	}
}

func newAlbumsPhotosCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "photos <album-id>",
		Short: "List one page of an album's photos",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			albumID, err := parseID(args[0], "album")
			if err != nil {
				return err
			}
			v := view{listKey: "photos", columns: photoColumns, empty: "No photos found"}
			return runQuery(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Albums.Photos(ctx, albumID, page)
			})
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (starts at 1)")
	return cmd
}

func newAlbumsCreateCmd() *cobra.Command {
	var (
		password string
		parentID int
	)

	cmd := &cobra.Command{
		Use:   "create <event> <name>",
		Short: "Create an album",
		Example: strings.TrimSpace(`
  sp albums create 42 "Ceremony"
  sp albums create 42 "Portraits" --parent 7 --password s3cret
`),
		Args: cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if parentID < 0 {
				return fmt.Errorf("--parent must be a positive album ID")
			}
			name := strings.TrimSpace(args[1])
			v := view{done: func(r api.Result) string { return "Created album " + describe(r, "album", name) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Albums.Create(ctx, eventID, name, password, parentID)
			})
		}),
	}

	cmd.Flags().StringVar(&password, "password", "", "Album password")
	cmd.Flags().IntVar(&parentID, "parent", 0, "Parent album ID")
	return cmd
}

func newAlbumsMoveCmd() *cobra.Command {
	var parentID int

	cmd := &cobra.Command{
		Use:   "move <album-id>",
		Short: "Move an album under another album, or to the top level without --parent",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			albumID, err := parseID(args[0], "album")
			if err != nil {
				return err
			}
			if parentID < 0 {
				return fmt.Errorf("--parent must be a positive album ID")
			}
			v := view{done: func(api.Result) string {
				if parentID == 0 {
					return fmt.Sprintf("Moved album %d to the top level", albumID)
				}
				return fmt.Sprintf("Moved album %d under album %d", albumID, parentID)
			}}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Albums.Move(ctx, albumID, parentID)
			})
		}),
	}

	cmd.Flags().IntVar(&parentID, "parent", 0, "New parent album ID")
	return cmd
}

func newAlbumsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <album-id> <name>",
		Short: "Rename an album",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			albumID, err := parseID(args[0], "album")
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[1])
			v := view{done: func(api.Result) string { return fmt.Sprintf("Renamed album %d to %q", albumID, name) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Albums.Rename(ctx, albumID, name)
			})
		}),
	}
}

func newAlbumsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <album-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an album",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			albumID, err := parseID(args[0], "album")
			if err != nil {
				return err
			}
			v := view{done: func(api.Result) string { return fmt.Sprintf("Deleted album %d", albumID) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Albums.Delete(ctx, albumID)
			})
		}),
	}
}
