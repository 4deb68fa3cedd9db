package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shootproof/shootproof-cli/internal/api"
)

var photoColumns = []string{"id", "name", "album_id", "width", "height"}

func newPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "photos",
		Aliases: []string{"photo", "ph"},
		Short:   "Upload and delete photos",
	}

	cmd.AddCommand(newPhotosUploadCmd())
	cmd.AddCommand(newPhotosDeleteCmd())

	return cmd
}

func newPhotosUploadCmd() *cobra.Command {
	var albumID int

	cmd := &cobra.Command{
		Use:   "upload <event> <file>",
		Short: "Upload a photo to an event",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if albumID < 0 {
				return fmt.Errorf("--album must be a positive album ID")
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}
			photo := api.File{Name: filepath.Base(args[1]), Content: content}

			v := view{done: func(r api.Result) string { return "Uploaded " + describe(r, "photo", photo.Name) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				eventID, err := env.eventID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return env.Services.Photos.Upload(ctx, eventID, albumID, photo)
			})
		}),
	}

	cmd.Flags().IntVar(&albumID, "album", 0, "Album ID to upload into")
	return cmd
}

func newPhotosDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <photo-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a photo",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			photoID, err := parseID(args[0], "photo")
			if err != nil {
				return err
			}
			v := view{done: func(api.Result) string { return fmt.Sprintf("Deleted photo %d", photoID) }}
			return runMutation(cmd, v, func(ctx context.Context, env *callEnv) (api.Result, error) {
				return env.Services.Photos.Delete(ctx, photoID)
			})
		}),
	}
}
