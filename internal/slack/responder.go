package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"slack_shifumi/internal/logger"
)

const (
	ResponseEphemeral = "ephemeral"
	ResponseInChannel = "in_channel"
)

// Message is a delayed response posted back to a response_url.
type Message struct {
	ResponseType    string `json:"response_type"`
	Text            string `json:"text"`
	ReplaceOriginal bool   `json:"replace_original,omitempty"`
}

// Responder delivers delayed responses. Delivery is independent of the
// request's immediate acknowledgment; a failed post is logged and
// dropped.
type Responder struct {
	client *http.Client
}

func NewResponder() *Responder {
	return &Responder{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Post sends a message to the response URL synchronously.
func (r *Responder) Post(ctx context.Context, responseURL string, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, responseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delayed response rejected: %s", resp.Status)
	}
	return nil
}

// PostAsync fires the delayed response without blocking the caller.
func (r *Responder) PostAsync(responseURL string, msg Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.Post(ctx, responseURL, msg); err != nil {
			logger.Error("delayed response failed", "error", err)
		}
	}()
}
