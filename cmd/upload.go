package main

import (
	"context"
	"fmt"
	"os"

	"graphbox/internal/graph"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-path>",
	Short: "Upload a file to the drive",
	Long: `Uploads a local file to the given root-relative path, replacing any
existing file there. Limited to the simple-upload size (4 MB).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		driveID := filesDriveID
		if driveID == "" {
			driveID = cfg.Drive.DriveID
		}

		return uploadFile(cmd.Context(), client, driveID, args[0], args[1])
	},
}

func uploadFile(ctx context.Context, client *graph.Client, driveID, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	entry, err := client.Upload(ctx, driveID, remotePath, f)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %s to %s (%d bytes, id %s)\n", localPath, remotePath, entry.Size, entry.ID)

	return nil
}

func init() {
	filesCmd.AddCommand(uploadCmd)
}
