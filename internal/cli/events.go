package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <code>",
		Short: "Stream lobby events over a websocket",
		Long: `Connect to the lobby's websocket endpoint and stream events in real-time.

Events include:
  - lobby_updated: Member list or configuration changed
  - game_started: Game has started
  - tile_staged: Current player staged an insertion lane
  - tile_rotated: Loose tile was rotated
  - tile_inserted: Insertion committed, lane shifted
  - token_moved: Player moved their token
  - game_completed: A player reached the target score
  - game_abandoned: Game was abandoned

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			return streamEvents(code, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// Event mirrors the server's websocket event envelope
type Event struct {
	LobbyCode string          `json:"lobby_code"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func streamEvents(lobbyCode string, jsonOutput bool) error {
	wsURL := strings.TrimSuffix(cfg.ServerURL, "/")
	wsURL = strings.Replace(wsURL, "http", "ws", 1)
	wsURL += "/api/v1/lobbies/" + lobbyCode + "/events"

	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: %w (HTTP %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Close the connection on interrupt so ReadMessage unblocks
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	if !jsonOutput {
		fmt.Printf("Connected to lobby %s\n", lobbyCode)
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !jsonOutput {
				fmt.Println("Disconnected")
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			// Interrupt closes the connection out from under the read
			select {
			case <-sigCh:
				return nil
			default:
			}
			return nil
		}

		// The server batches queued events newline-separated in one frame
		for _, line := range strings.Split(string(message), "\n") {
			if line == "" {
				continue
			}
			printEvent(line, jsonOutput)
		}
	}
}

func printEvent(raw string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(raw)
		return
	}

	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		fmt.Println(raw)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	display := string(event.Data)
	if len(display) > 100 {
		display = display[:100] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", timestamp, event.Type, display)
}
