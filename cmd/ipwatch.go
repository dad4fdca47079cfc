package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"graphbox/internal/config"
	"graphbox/internal/ipwatch"

	"github.com/spf13/cobra"
)

var (
	ipwInterval  time.Duration
	ipwRecipient string
	ipwStateFile string
	ipwLookupURL string
	ipwOnce      bool
)

var ipwatchCmd = &cobra.Command{
	Use:   "ipwatch",
	Short: "Email a notification when the public IP changes",
	Long: `Polls a public-IP echo service and mails the configured recipient
whenever the address differs from the last observed one. The first run
only records the address. Runs until interrupted unless --once is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		lookupURL := ipwLookupURL
		if lookupURL == "" {
			lookupURL = cfg.IPWatch.LookupURL
		}

		recipient := ipwRecipient
		if recipient == "" {
			recipient = cfg.IPWatch.Recipient
		}

		interval := ipwInterval
		if interval == 0 {
			interval = cfg.IPWatch.Interval
		}

		stateFile := ipwStateFile
		if stateFile == "" {
			stateFile = cfg.IPWatch.StateFile
		}

		if stateFile == "" {
			path, err := config.GetIPStatePath()
			if err != nil {
				return fmt.Errorf("failed to resolve state file location: %w", err)
			}

			stateFile = path
		}

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		watcher, err := ipwatch.New(ipwatch.Config{
			LookupURL: lookupURL,
			StateFile: stateFile,
			Recipient: recipient,
			Interval:  interval,
		}, client)
		if err != nil {
			return err
		}

		if ipwOnce {
			ip, changed, err := watcher.CheckOnce(cmd.Context())
			if err != nil {
				return err
			}

			if changed {
				fmt.Printf("Public IP changed to %s, notified %s\n", ip, recipient)
			} else {
				fmt.Printf("Public IP is %s (unchanged)\n", ip)
			}

			return nil
		}

		err = watcher.Run(cmd.Context())
		if errors.Is(err, context.Canceled) {
			// Ctrl-C is the normal way to stop the watch.
			return nil
		}

		return err
	},
}

func init() {
	ipwatchCmd.Flags().DurationVar(&ipwInterval, "interval", 0, "Poll interval (default: config value)")
	ipwatchCmd.Flags().StringVar(&ipwRecipient, "to", "", "Notification recipient (default: config value)")
	ipwatchCmd.Flags().StringVar(&ipwStateFile, "state-file", "", "Where to record the last observed address")
	ipwatchCmd.Flags().StringVar(&ipwLookupURL, "lookup-url", "", "Public-IP echo service URL")
	ipwatchCmd.Flags().BoolVar(&ipwOnce, "once", false, "Check once and exit instead of polling")

	rootCmd.AddCommand(ipwatchCmd)
}
