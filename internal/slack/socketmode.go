package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"slack_shifumi/internal/logger"

	"github.com/gorilla/websocket"
)

const connectionsOpenURL = "https://slack.com/api/apps.connections.open"

// envelope is one Socket Mode frame. Every non-hello envelope must be
// acknowledged with its id.
type envelope struct {
	EnvelopeID string          `json:"envelope_id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
}

// CommandFunc handles one slash command received over Socket Mode.
type CommandFunc func(ctx context.Context, cmd SlashCommand)

// SocketListener is the development-mode transport: instead of exposing
// a public URL it dials Slack's Socket Mode endpoint and feeds incoming
// slash commands to the same command router the HTTP handlers use.
type SocketListener struct {
	appToken string
	client   *http.Client
	handler  CommandFunc
}

func NewSocketListener(appToken string, handler CommandFunc) *SocketListener {
	return &SocketListener{
		appToken: appToken,
		client:   &http.Client{Timeout: 10 * time.Second},
		handler:  handler,
	}
}

// Run keeps a Socket Mode connection alive until the context is
// canceled, reconnecting with a flat backoff on any failure.
func (l *SocketListener) Run(ctx context.Context) {
	for {
		if err := l.connectAndServe(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("socket mode connection lost", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *SocketListener) connectAndServe(ctx context.Context) error {
	wsURL, err := l.openConnection(ctx)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// unblock ReadMessage when the context ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	logger.Info("socket mode connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warn("socket mode: bad envelope", "error", err)
			continue
		}

		if env.EnvelopeID != "" {
			ack := map[string]string{"envelope_id": env.EnvelopeID}
			if err := conn.WriteJSON(ack); err != nil {
				return err
			}
		}

		switch env.Type {
		case "hello":
		case "disconnect":
			// Slack asks clients to reconnect periodically
			return errors.New("server requested disconnect")
		case "slash_commands":
			var cmd SlashCommand
			if err := json.Unmarshal(env.Payload, &cmd); err != nil {
				logger.Warn("socket mode: bad slash payload", "error", err)
				continue
			}
			go l.handler(ctx, cmd)
		default:
			logger.Debug("socket mode: ignoring envelope", "type", env.Type)
		}
	}
}

// openConnection asks Slack for a fresh wss URL.
func (l *SocketListener) openConnection(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, connectionsOpenURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+l.appToken)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		OK    bool   `json:"ok"`
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if !body.OK {
		return "", fmt.Errorf("apps.connections.open: %s", body.Error)
	}
	return body.URL, nil
}
