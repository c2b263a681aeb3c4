package cli

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player score commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersSetCmd())
	cmd.AddCommand(newPlayersSearchCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every player and score",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := PlayerList{}

			if err := client.Get("/api/get-all", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a player's score (0 if unknown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreResult

			if err := client.Get("/api/get-single", url.Values{"name": {args[0]}}, &result); err != nil {
				return err
			}

			result.Name = args[0]
			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayersSetCmd() *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "set <name> --score <n>",
		Short: "Set a player's score, creating the player if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":     args[0],
				"newScore": score,
			}
			var result UpdateResult

			status, err := client.Put("/api/update", req, &result.Player)
			if err != nil {
				return err
			}

			result.Created = status == http.StatusCreated
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "New score (required)")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newPlayersSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find player names containing query, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := NameList{}

			if err := client.Get("/api/search-names", url.Values{"q": {args[0]}}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
