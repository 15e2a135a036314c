package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/freeeve/mutual-annihilation/internal/model"
)

// WSEvent is the server's websocket frame envelope.
type WSEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client is an HTTP+WebSocket client for a single bot player.
type Client struct {
	name      string
	baseURL   string
	token     string
	playerID  string
	wsConn    *websocket.Conn
	events    chan WSEvent
	done      chan struct{}
	httpC     *http.Client
	reconnect *rate.Limiter
	mu        sync.Mutex
	closedWS  bool
}

// NewClient creates a new bot client targeting the given server URL.
func NewClient(name, baseURL string) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpC:   &http.Client{Timeout: 30 * time.Second},
		// One reconnect attempt per 5s, small initial burst.
		reconnect: rate.NewLimiter(rate.Every(5*time.Second), 2),
	}
}

// Name returns the bot name.
func (c *Client) Name() string { return c.name }

// PlayerID returns the player id claimed by the login token, if any.
func (c *Client) PlayerID() string { return c.playerID }

// Login authenticates via the dev login endpoint.
func (c *Client) Login() error {
	resp, err := c.httpC.Get(c.baseURL + "/auth/dev?name=" + url.QueryEscape(c.name))
	if err != nil {
		return fmt.Errorf("dev login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("dev login status %d: %s", resp.StatusCode, body)
	}

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return fmt.Errorf("decode tokens: %w", err)
	}
	c.token = tokens.AccessToken
	c.inspectToken()

	log.Debug().Str("bot", c.name).Str("playerId", c.playerID).Msg("Bot logged in")
	return nil
}

// inspectToken reads the login token's claims without verifying the
// signature (the server verifies; we only want identity and expiry).
func (c *Client) inspectToken() {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		log.Debug().Err(err).Msg("Login token is not a JWT, skipping claim inspection")
		return
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		c.playerID = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		log.Debug().Str("playerId", c.playerID).Time("expires", exp.Time).Msg("Login token parsed")
	}
}

// ConnectWS opens a WebSocket connection and starts listening for events.
func (c *Client) ConnectWS() error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws?token=" + url.QueryEscape(c.token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("ws dial: %w", err)
	}

	c.mu.Lock()
	c.wsConn = conn
	c.closedWS = false
	c.events = make(chan WSEvent, 64)
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readWSLoop(conn, c.events, c.done)
	return nil
}

// CloseWS closes the WebSocket connection.
func (c *Client) CloseWS() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wsConn != nil && !c.closedWS {
		c.closedWS = true
		close(c.done)
		c.wsConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.wsConn.Close()
	}
}

// SubmitTurn sends the decided turn for the current state.
func (c *Client) SubmitTurn(turn model.Turn) error {
	frame := struct {
		Type string     `json:"type"`
		Data model.Turn `json:"data"`
	}{Type: "turn", Data: turn}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wsConn == nil {
		return fmt.Errorf("not connected")
	}
	return c.wsConn.WriteJSON(frame)
}

// Play runs the game loop: every state event is answered with the
// strategy's turn. A dropped connection is redialed under the reconnect
// limiter. Play returns when the server reports game over, the connection
// was closed deliberately, or the context is cancelled.
func (c *Client) Play(ctx context.Context, strategy Strategy) error {
	log.Info().Str("bot", c.name).Str("strategy", strategy.Name()).Msg("Starting websocket game loop")
	turnNum := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-c.events:
			if !ok {
				c.mu.Lock()
				deliberate := c.closedWS
				c.mu.Unlock()
				if deliberate {
					return nil
				}
				if err := c.redial(ctx); err != nil {
					return err
				}
				continue
			}

			switch event.Type {
			case "state":
				turnNum++
				var gs model.GameState
				if err := json.Unmarshal(event.Data, &gs); err != nil {
					log.Warn().Err(err).Int("turn", turnNum).Msg("Malformed state event, skipping")
					continue
				}
				turn, err := strategy.NextTurn(&gs)
				if err != nil {
					return fmt.Errorf("turn %d: %w", turnNum, err)
				}
				if err := c.SubmitTurn(turn); err != nil {
					log.Warn().Err(err).Int("turn", turnNum).Msg("Turn submission failed, continuing")
					continue
				}
				log.Debug().Int("turn", turnNum).Int("moves", len(turn.Moves)).Msg("Turn submitted")
			case "game_over":
				log.Info().RawJSON("result", event.Data).Msg("Game over")
				return nil
			default:
				log.Debug().Str("type", event.Type).Msg("Ignoring event")
			}
		}
	}
}

// redial waits out the reconnect limiter and reopens the websocket.
func (c *Client) redial(ctx context.Context) error {
	log.Warn().Str("bot", c.name).Msg("WebSocket dropped, reconnecting")
	if err := c.reconnect.Wait(ctx); err != nil {
		return err
	}
	if err := c.ConnectWS(); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	return nil
}

func (c *Client) readWSLoop(conn *websocket.Conn, events chan WSEvent, done chan struct{}) {
	defer close(events)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			deliberate := c.closedWS
			c.mu.Unlock()
			if !deliberate {
				log.Debug().Err(err).Str("bot", c.name).Msg("WS read error")
			}
			return
		}
		var event WSEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}
		// A stalled consumer must not pin the goroutine past CloseWS.
		select {
		case events <- event:
		case <-done:
			return
		}
	}
}
