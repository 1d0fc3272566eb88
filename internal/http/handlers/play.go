package handlers

import (
	"context"

	"slack_shifumi/internal/game"
	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// Play handles the plain move command: complete the channel's open
// match, or start a new one when none is pending.
func (h *Handler) Play(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runPlay(c.Request.Context(), cmd))
}

func (h *Handler) runPlay(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	g, err := game.ParseGesture(cmd.Text)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	res, err := h.Matches.Play(ctx, cmd.ChannelID, cmd.ChannelName, cmd.UserID, cmd.UserName, g)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	playerName := h.Nicknames.Resolve(ctx, cmd.UserID)
	if res.Started {
		return inChannel(formatWaiting(playerName, g))
	}
	p1Name := h.Nicknames.Resolve(ctx, res.Match.Player1ID)
	return inChannel(formatResult(res.Match, res.Outcome, p1Name, playerName))
}
