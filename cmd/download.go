package main

import (
	"context"
	"fmt"
	"io"
	"os"
	gopath "path"

	"graphbox/internal/graph"

	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <remote-path>",
	Short: "Download a file from the drive",
	Args:  cobra.ExactArgs(1),
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

		return downloadFile(cmd.Context(), client, driveID, args[0], downloadOutput)
	},
}

// downloadFile streams a remote file to disk. An empty output falls back to
// the remote base name in the current directory.
func downloadFile(ctx context.Context, client *graph.Client, driveID, remotePath, output string) error {
	if output == "" {
		// Remote paths always use forward slashes.
		output = gopath.Base(remotePath)
	}

	body, err := client.Download(ctx, driveID, remotePath)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer out.Close()

	n, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Downloaded %s (%d bytes) to %s\n", remotePath, n, output)

	return nil
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Local destination (default: remote file name)")
	filesCmd.AddCommand(downloadCmd)
}
