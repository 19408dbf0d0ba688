// Command bruteforcer plays tangosim sessions through the REST API. It takes
// the first seat of every session it creates, plays it with a systematic
// strategy against automated opponents and reports how often it won.
//
// Usage:
//
//	go run ./cmd/bruteforcer --url http://localhost:8080 --opponents lookahead --games 20
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/strategy"
)

// Client talks to a tangosim server on behalf of one session.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configName string, seats []string, seed int64) (*service.SessionInfo, error) {
	req := service.CreateSessionRequest{ConfigName: configName, Seats: seats, Seed: seed}

	var info service.SessionInfo
	if err := c.do("POST", "/api/sessions", req, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = info.ID
	return &info, nil
}

func (c *Client) GetState() (*service.GameView, error) {
	var state service.GameView
	if err := c.do("GET", c.path("state"), nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) LegalMoves() (*service.LegalMoves, error) {
	var moves service.LegalMoves
	if err := c.do("GET", c.path("legal"), nil, &moves); err != nil {
		return nil, fmt.Errorf("legal moves: %w", err)
	}
	return &moves, nil
}

func (c *Client) Place(req service.PlaceRequest) (*service.TurnResult, error) {
	return c.executeTurn("place", req)
}

func (c *Client) Move(req service.MoveRequest) (*service.TurnResult, error) {
	return c.executeTurn("move", req)
}

func (c *Client) Pass(player int) (*service.TurnResult, error) {
	return c.executeTurn("pass", map[string]int{"player": player})
}

func (c *Client) Advance(maxTurns int) (*service.TurnResult, error) {
	return c.executeTurn("advance", map[string]int{"max_turns": maxTurns})
}

func (c *Client) executeTurn(action string, body any) (*service.TurnResult, error) {
	var result service.TurnResult
	if err := c.do("POST", c.path(action), body, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return &result, nil
}

func (c *Client) path(action string) string {
	return fmt.Sprintf("/api/sessions/%s/%s", c.sessionID, action)
}

func (c *Client) do(method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s - %s", resp.Status, errResp.Error)
		}
		return fmt.Errorf("%s - %s", resp.Status, string(data))
	}
	return json.Unmarshal(data, result)
}

// PlayGame plays the client's seat until the session's game is over and
// returns the final state.
func PlayGame(client *Client, state *service.GameView, player int, maxTurns int, verbose bool) (*service.GameView, error) {
	systematic := NewSystematicStrategy(player)

	for turns := 0; !state.Finished; turns++ {
		if turns >= maxTurns {
			return state, fmt.Errorf("no result after %d turns", maxTurns)
		}

		if !state.AwaitingHuman {
			result, err := client.Advance(0)
			if err != nil {
				return state, err
			}
			state = result.State
			continue
		}

		moves, err := client.LegalMoves()
		if err != nil {
			return state, err
		}

		var result *service.TurnResult
		switch choice := systematic.Choose(state, moves); {
		case choice.Place != nil:
			result, err = client.Place(*choice.Place)
		case choice.Move != nil:
			result, err = client.Move(*choice.Move)
		default:
			result, err = client.Pass(player)
		}
		if err != nil {
			return state, err
		}
		if verbose {
			log.Printf("Round %d, turn %d: %s", result.State.Round, result.State.Turn, result.Message)
		}
		state = result.State
	}
	return state, nil
}

func main() {
	app := &cli.Command{
		Name:  "bruteforcer",
		Usage: "Play tangosim sessions through the REST API with a systematic strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("TANGOSIM_API_URL")},
			&cli.StringFlag{Name: "config", Usage: "Ruleset name (server default when empty)"},
			&cli.StringSliceFlag{Name: "opponents", Value: []string{strategy.NameGreedy}, Usage: "One automated strategy per opponent seat"},
			&cli.IntFlag{Name: "games", Value: 10, Usage: "Number of sessions to play"},
			&cli.Int64Flag{Name: "seed", Usage: "Seed for the opponents of the first game"},
			&cli.IntFlag{Name: "max-turns", Value: 3000, Usage: "Maximum turns per game"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Printf("Connecting to game server at %s", cmd.String("url"))

	seats := append([]string{service.SeatHuman}, cmd.StringSlice("opponents")...)
	games := cmd.Int("games")
	wins, ties := 0, 0

	for game := 1; game <= games; game++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		client := NewClient(cmd.String("url"))
		seed := cmd.Int64("seed")
		if seed != 0 {
			seed += int64(game - 1)
		}
		info, err := client.CreateSession(cmd.String("config"), seats, seed)
		if err != nil {
			return err
		}

		state, err := PlayGame(client, info.State, 0, cmd.Int("max-turns"), cmd.Bool("v"))
		if err != nil {
			return fmt.Errorf("session %s: %w", client.sessionID, err)
		}

		r := state.Result
		switch {
		case r.Winner == 0:
			wins++
		case r.Winner < 0:
			ties++
		}
		log.Printf("Game %d/%d (%s): scores %v, %s", game, games, client.sessionID, r.Scores, r.Reason)
	}

	log.Printf("Won %d/%d games (%d ties)", wins, games, ties)
	if wins == 0 && games > 0 {
		return fmt.Errorf("no game won against %v", seats[1:])
	}
	return nil
}
