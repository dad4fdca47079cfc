package main

import (
	"fmt"
	"os"

	"graphbox/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	initClientID string
	initTenantID string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the configuration file",
	Long: `Writes the configuration file with the given app registration. The
client ID identifies your own Azure AD app registration; create one in
the Azure portal with device-code flow enabled and the delegated
User.Read, Mail.Read, Mail.Send and Files.ReadWrite permissions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if initClientID == "" && term.IsTerminal(int(os.Stdin.Fd())) {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Application (client) ID").
					Placeholder(cfg.Auth.ClientID).
					Value(&initClientID),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		if initClientID != "" {
			cfg.Auth.ClientID = initClientID
		}

		if initTenantID != "" {
			cfg.Auth.TenantID = initTenantID
		}

		if cfg.Auth.ClientID == "" {
			return fmt.Errorf("a client ID is required: pass --client-id")
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}

		path, err := config.GetConfigFilePath()
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigFilePath()
		if err != nil {
			return err
		}

		fmt.Println(path)

		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&initClientID, "client-id", "", "Azure AD application (client) ID")
	configInitCmd.Flags().StringVar(&initTenantID, "tenant", "", "Tenant ID (default: common)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
