package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"slack_shifumi/internal/game"
	"slack_shifumi/internal/service"
	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// actionGestures maps button action ids to gestures.
var actionGestures = map[string]game.Gesture{
	"play_rock":     game.Rock,
	"play_paper":    game.Paper,
	"play_scissors": game.Scissors,
}

// Interaction handles block-action button clicks. The action value
// carries either "match:<id>" for an open match (re-validated by id
// before completing) or "challenge:<challenger_id>" for a challenge
// response.
func (h *Handler) Interaction(c *gin.Context) {
	raw := c.PostForm("payload")
	p, err := slack.ParseInteraction(raw)
	if err != nil || len(p.Actions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction payload"})
		return
	}

	action := p.Actions[0]
	g, ok := actionGestures[action.ActionID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}

	ctx := c.Request.Context()
	var res *service.PlayResult

	switch {
	case strings.HasPrefix(action.Value, "challenge:"):
		challengerID := strings.TrimPrefix(action.Value, "challenge:")
		res, err = h.Matches.AnswerChallenge(ctx, challengerID, p.User.ID, p.User.Username, g)

	case strings.HasPrefix(action.Value, "match:"):
		var matchID int64
		matchID, err = strconv.ParseInt(strings.TrimPrefix(action.Value, "match:"), 10, 64)
		if err == nil {
			res, err = h.Matches.CompleteByID(ctx, matchID, p.User.ID, p.User.Username, g)
		}

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action value"})
		return
	}

	if err != nil {
		h.Responder.PostAsync(p.ResponseURL, slack.Message{
			ResponseType: slack.ResponseEphemeral,
			Text:         userErrorText(err),
		})
		ack(c)
		return
	}

	p1Name := h.Nicknames.Resolve(ctx, res.Match.Player1ID)
	p2Name := h.Nicknames.Resolve(ctx, p.User.ID)
	h.Responder.PostAsync(p.ResponseURL, slack.Message{
		ResponseType:    slack.ResponseInChannel,
		Text:            formatResult(res.Match, res.Outcome, p1Name, p2Name),
		ReplaceOriginal: true,
	})
	ack(c)
}
