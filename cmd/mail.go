package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"graphbox/internal/graph"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	mailSince   string
	mailLimit   int
	mailTo      []string
	mailSubject string
	mailBody    string
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "List inbox messages and send mail",
}

var mailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent inbox messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		since := mailSince
		if since == "" {
			since = cfg.Mail.DefaultSince
		}

		var sinceTime time.Time

		if since != "" {
			t, err := parseSinceTime(since)
			if err != nil {
				return err
			}

			sinceTime = t
		}

		limit := mailLimit
		if limit == 0 {
			limit = cfg.Mail.DefaultLimit
		}

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return listInbox(cmd.Context(), client, sinceTime, limit)
	},
}

var mailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a plain-text message",
	Long: `Sends a message from the signed-in account. The body comes from --body,
or from stdin when it is piped in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(mailTo) == 0 {
			return fmt.Errorf("at least one --to recipient is required")
		}

		body := mailBody
		if body == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read body from stdin: %w", err)
			}

			body = string(data)
		}

		if strings.TrimSpace(body) == "" {
			return fmt.Errorf("message body is empty: pass --body or pipe it on stdin")
		}

		cfg := loadConfig()

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return sendMail(cmd.Context(), client, mailTo, mailSubject, body)
	},
}

func listInbox(ctx context.Context, client *graph.Client, since time.Time, limit int) error {
	messages, err := client.ListInbox(ctx, since, limit)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("No messages.")

		return nil
	}

	for _, msg := range messages {
		from := "(unknown sender)"
		if msg.From != nil {
			from = msg.From.EmailAddress.Address
			if msg.From.EmailAddress.Name != "" {
				from = msg.From.EmailAddress.Name
			}
		}

		marker := " "
		if !msg.IsRead {
			marker = "*"
		}

		fmt.Printf("%s %s  %-25s  %s\n", marker, msg.ReceivedDateTime.Local().Format("2006-01-02 15:04"), truncate(from, 25), msg.Subject)
	}

	fmt.Fprintf(os.Stderr, "\n%d messages\n", len(messages))

	return nil
}

func sendMail(ctx context.Context, client *graph.Client, to []string, subject, body string) error {
	if err := client.SendMail(ctx, to, subject, body); err != nil {
		return err
	}

	fmt.Printf("Sent %q to %s\n", subject, strings.Join(to, ", "))

	return nil
}

// truncate shortens s to at most n characters, counting runes so a cut
// never lands inside a multibyte sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}

func init() {
	mailListCmd.Flags().StringVar(&mailSince, "since", "", "Only messages received since (7d, 2006-01-02, \"last week\")")
	mailListCmd.Flags().IntVar(&mailLimit, "limit", 0, "Maximum number of messages")

	mailSendCmd.Flags().StringSliceVar(&mailTo, "to", nil, "Recipient address (repeatable)")
	mailSendCmd.Flags().StringVar(&mailSubject, "subject", "", "Message subject")
	mailSendCmd.Flags().StringVar(&mailBody, "body", "", "Message body (default: stdin when piped)")

	mailCmd.AddCommand(mailListCmd)
	mailCmd.AddCommand(mailSendCmd)
	rootCmd.AddCommand(mailCmd)
}
