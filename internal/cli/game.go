package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameStageCmd())
	cmd.AddCommand(newGameRotateCmd())
	cmd.AddCommand(newGameInsertCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start a new game in the lobby (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/game", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result GameState

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s/game", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage <code> <dir> <lane>",
		Short: "Stage the loose tile at an insertion lane",
		Long: `Stage the loose tile at an insertion lane.

dir is the edge the tile enters from: north, east, south or west.
lane is the guide index along that edge, starting at 0. Staging a
different lane replaces the previous choice.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			dir := strings.ToLower(args[1])

			lane, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid lane: %w", err)
			}

			req := map[string]any{"dir": dir, "guide_index": lane}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/game/stage", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <code>",
		Short: "Rotate the loose tile 90 degrees clockwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/game/rotate", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameInsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <code>",
		Short: "Commit the staged insertion, shifting the lane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/game/insert", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <code> <row> <col>",
		Short: "Move your token to a reachable cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}

			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			req := map[string]int{"row": row, "col": col}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/game/move", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <code>",
		Short: "Abandon the current game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/lobbies/%s/game", code)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game abandoned")
			return nil
		},
	}
}
