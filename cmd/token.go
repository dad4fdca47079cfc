package main

import (
	"context"
	"fmt"
	"time"

	"graphbox/internal/graph"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Display the current access token",
	Long: `Prints the raw access token for the signed-in account, refreshing it
first if the cached one has expired. Useful for poking at the API with
curl or Graph Explorer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return showToken(cmd.Context(), client)
	},
}

func showToken(_ context.Context, client *graph.Client) error {
	tok, err := client.Token()
	if err != nil {
		return err
	}

	fmt.Println(tok.AccessToken)

	if !tok.Expiry.IsZero() {
		fmt.Printf("\nExpires %s (%s from now)\n", tok.Expiry.Local().Format(time.RFC1123), time.Until(tok.Expiry).Round(time.Second))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
