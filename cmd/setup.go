package main

import (
	"context"
	"fmt"

	"graphbox/internal/graph"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Verify authentication and show the signed-in user",
	Long: `Runs the device-code sign-in if no cached token exists, then fetches
the signed-in user's profile to prove the token works.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return showProfile(cmd.Context(), client)
	},
}

func showProfile(ctx context.Context, client *graph.Client) error {
	user, err := client.Me(ctx)
	if err != nil {
		return err
	}

	address := user.Mail
	if address == "" {
		address = user.UserPrincipalName
	}

	fmt.Printf("Signed in as %s <%s>\n", user.DisplayName, address)
	fmt.Println("Authentication OK")

	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
