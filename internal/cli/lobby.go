package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Lobby management commands",
	}

	cmd.AddCommand(newLobbyCreateCmd())
	cmd.AddCommand(newLobbyGetCmd())
	cmd.AddCommand(newLobbyJoinCmd())
	cmd.AddCommand(newLobbyLeaveCmd())
	cmd.AddCommand(newLobbyConfigCmd())
	cmd.AddCommand(newLobbyTransferHostCmd())

	return cmd
}

func newLobbyCreateCmd() *cobra.Command {
	var width, height, targetScore int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req any
			if width > 0 || height > 0 || targetScore > 0 {
				req = map[string]any{
					"config": map[string]int{
						"board_width":  width,
						"board_height": height,
						"target_score": targetScore,
					},
				}
			}

			var result Lobby

			if err := client.Post("/api/v1/lobbies", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Board width (odd, at least 5; default: server default)")
	cmd.Flags().IntVar(&height, "height", 0, "Board height (odd, at least 5; default: server default)")
	cmd.Flags().IntVar(&targetScore, "target-score", 0, "Targets needed to win (default: server default)")

	return cmd
}

func newLobbyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get lobby details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Lobby

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Lobby

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/join", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/leave", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left lobby %s", code))
			return nil
		},
	}
}

func newLobbyConfigCmd() *cobra.Command {
	var width, height, targetScore int

	cmd := &cobra.Command{
		Use:   "config <code>",
		Short: "Update lobby configuration (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]int{
				"board_width":  width,
				"board_height": height,
				"target_score": targetScore,
			}
			var result Lobby

			if err := client.Patch(fmt.Sprintf("/api/v1/lobbies/%s/config", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Board width (odd, at least 5)")
	cmd.Flags().IntVar(&height, "height", 0, "Board height (odd, at least 5)")
	cmd.Flags().IntVar(&targetScore, "target-score", 0, "Targets needed to win")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("target-score")

	return cmd
}

func newLobbyTransferHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer-host <code> <player-id>",
		Short: "Transfer host role to another member (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]string{"new_host_id": args[1]}
			var result Lobby

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/transfer-host", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
