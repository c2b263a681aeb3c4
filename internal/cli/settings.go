package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Table settings (horse points and return point)",
	}

	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the table settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings

			if err := client.Get("/api/settings", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var horsePoints []int
	var returnPoint int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the table settings",
		Example: `  scoreboard settings set --horse-points=20,10,-10,-20 --return-point 30000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(horsePoints) != 4 {
				return fmt.Errorf("--horse-points needs exactly 4 values, got %d", len(horsePoints))
			}

			req := Settings{
				HorsePoints: horsePoints,
				ReturnPoint: returnPoint,
			}
			var result MessageResult

			if err := client.Post("/api/settings", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&horsePoints, "horse-points", nil, "Four comma-separated placement bonuses (required)")
	cmd.Flags().IntVar(&returnPoint, "return-point", 0, "Return point (required)")
	_ = cmd.MarkFlagRequired("horse-points")
	_ = cmd.MarkFlagRequired("return-point")

	return cmd
}
