package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"graphbox/internal/config"

	"github.com/spf13/cobra"
)

var (
	configDir string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "graphbox",
	Short: "Console client for Microsoft Graph mail and OneDrive",
	Long: `graphbox signs a user in with the device-code flow and exercises the
Microsoft Graph mail and file surface from the terminal.

Commands:
  files    Inventory, download and upload OneDrive files
  mail     List inbox messages and send mail
  token    Display the current access token
  setup    Verify authentication and show the signed-in user
  menu     Run the same operations from an interactive menu
  ipwatch  Email a notification when the public IP changes
  config   Manage the configuration file`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugMode {
			level = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		if configDir != "" {
			config.SetCustomConfigDir(configDir)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Custom configuration directory")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
