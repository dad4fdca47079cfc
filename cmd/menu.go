package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"graphbox/internal/graph"
	"graphbox/pkg/models"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const (
	menuListMail  = "mail-list"
	menuSendMail  = "mail-send"
	menuInventory = "files-list"
	menuDownload  = "files-download"
	menuUpload    = "files-upload"
	menuToken     = "token"
	menuQuit      = "quit"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run operations from an interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		client, err := newGraphClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return runMenu(cmd, client, cfg)
	},
}

func runMenu(cmd *cobra.Command, client *graph.Client, cfg *models.Config) error {
	for {
		var choice string

		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("graphbox").
				Options(
					huh.NewOption("List inbox messages", menuListMail),
					huh.NewOption("Send a message", menuSendMail),
					huh.NewOption("Inventory drive files", menuInventory),
					huh.NewOption("Download a file", menuDownload),
					huh.NewOption("Upload a file", menuUpload),
					huh.NewOption("Show access token", menuToken),
					huh.NewOption("Quit", menuQuit),
				).
				Value(&choice),
		))

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}

			return err
		}

		if choice == menuQuit {
			return nil
		}

		if err := runMenuChoice(cmd, client, cfg, choice); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}

			// Keep the menu alive; one failed operation should not end
			// the session.
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
}

func runMenuChoice(cmd *cobra.Command, client *graph.Client, cfg *models.Config, choice string) error {
	ctx := cmd.Context()

	switch choice {
	case menuListMail:
		var since time.Time

		if cfg.Mail.DefaultSince != "" {
			t, err := parseSinceTime(cfg.Mail.DefaultSince)
			if err != nil {
				return err
			}

			since = t
		}

		return listInbox(ctx, client, since, cfg.Mail.DefaultLimit)

	case menuSendMail:
		var to, subject, body string

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("To").Value(&to),
			huh.NewInput().Title("Subject").Value(&subject),
			huh.NewText().Title("Body").Value(&body),
		))
		if err := form.Run(); err != nil {
			return err
		}

		return sendMail(ctx, client, []string{to}, subject, body)

	case menuInventory:
		return inventoryDrive(ctx, client, cfg.Drive.DriveID, cfg.Drive.SkipFailedSubtrees, false)

	case menuDownload:
		var remote string

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Remote path").Value(&remote),
		))
		if err := form.Run(); err != nil {
			return err
		}

		return downloadFile(ctx, client, cfg.Drive.DriveID, remote, "")

	case menuUpload:
		var local, remote string

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Local file").Value(&local),
			huh.NewInput().Title("Remote path").Value(&remote),
		))
		if err := form.Run(); err != nil {
			return err
		}

		return uploadFile(ctx, client, cfg.Drive.DriveID, local, remote)

	case menuToken:
		return showToken(ctx, client)
	}

	return fmt.Errorf("unknown menu choice %q", choice)
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
