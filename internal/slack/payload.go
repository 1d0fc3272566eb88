package slack

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SlashCommand is the decoded body of a slash-command request, whether
// it arrived as an HTTP form post or a Socket Mode payload.
type SlashCommand struct {
	Command     string `form:"command" json:"command"`
	Text        string `form:"text" json:"text"`
	ResponseURL string `form:"response_url" json:"response_url"`
	TriggerID   string `form:"trigger_id" json:"trigger_id"`
	UserID      string `form:"user_id" json:"user_id"`
	UserName    string `form:"user_name" json:"user_name"`
	TeamID      string `form:"team_id" json:"team_id"`
	ChannelID   string `form:"channel_id" json:"channel_id"`
	ChannelName string `form:"channel_name" json:"channel_name"`
}

// Mention is one <@U123|name> reference found in command text.
type Mention struct {
	UserID string
	Name   string
}

var mentionRe = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|([^>]*))?>`)

// Mentions extracts every user mention from command text, in order.
func Mentions(text string) []Mention {
	var res []Mention
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		res = append(res, Mention{UserID: m[1], Name: m[2]})
	}
	return res
}

// StripMentions removes all user mentions from the text, leaving the
// remaining tokens (e.g. the gesture of a challenge command).
func StripMentions(text string) string {
	return strings.TrimSpace(mentionRe.ReplaceAllString(text, " "))
}

// InteractionPayload is the decoded JSON payload of a block-action
// request (button clicks).
type InteractionPayload struct {
	Type    string `json:"type"`
	Actions []struct {
		ActionID string `json:"action_id"`
		Value    string `json:"value"`
	} `json:"actions"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Channel struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channel"`
	ResponseURL string `json:"response_url"`
}

// ParseInteraction decodes the payload field of an interactive request.
func ParseInteraction(payload string) (*InteractionPayload, error) {
	var p InteractionPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
