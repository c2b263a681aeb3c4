package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin password and bulk operations",
	}

	cmd.AddCommand(newAdminStatusCmd())
	cmd.AddCommand(newAdminInitCmd())
	cmd.AddCommand(newAdminLoginCmd())
	cmd.AddCommand(newAdminChangePasswordCmd())
	cmd.AddCommand(newAdminResetScoresCmd())
	cmd.AddCommand(newAdminDeletePlayersCmd())

	return cmd
}

func newAdminStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the admin password has been set",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result InitStatus

			if err := client.Get("/api/check-init", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAdminInitCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set the admin password on a fresh server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TokenResult

			if err := client.Post("/api/init-password", map[string]string{"password": pass}, &result); err != nil {
				return err
			}

			return saveToken(cmd, result.Token)
		},
	}

	cmd.Flags().StringVar(&pass, "pass", "", "Admin password (required)")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAdminLoginCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TokenResult

			if err := client.Post("/api/auth", map[string]string{"password": pass}, &result); err != nil {
				return err
			}

			return saveToken(cmd, result.Token)
		},
	}

	cmd.Flags().StringVar(&pass, "pass", "", "Admin password (required)")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAdminChangePasswordCmd() *cobra.Command {
	var oldPass, newPass string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"oldPassword": oldPass,
				"newPassword": newPass,
			}
			var result TokenResult

			if err := client.Post("/api/change-password", req, &result); err != nil {
				return err
			}

			return saveToken(cmd, result.Token)
		},
	}

	cmd.Flags().StringVar(&oldPass, "old", "", "Current password (required)")
	cmd.Flags().StringVar(&newPass, "new", "", "New password (required)")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func newAdminResetScoresCmd() *cobra.Command {
	return newConfirmedCmd("reset-scores", "Set every player's score to 0", "/api/reset-scores")
}

func newAdminDeletePlayersCmd() *cobra.Command {
	return newConfirmedCmd("delete-players", "Delete every player", "/api/delete-all-players")
}

// newConfirmedCmd builds a command for a destructive endpoint that requires
// the admin password on top of the token
func newConfirmedCmd(use, short, path string) *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("not logged in: run 'scoreboard admin login' first")
			}

			var result MessageResult
			if err := client.Post(path, map[string]string{"password": pass}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "pass", "", "Admin password to confirm (required)")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
