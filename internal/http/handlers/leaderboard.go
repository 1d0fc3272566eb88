package handlers

import (
	"context"

	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// Leaderboard handles /shifumi-classement: the ranked list for the
// current year plus the players still short of the qualifying count.
func (h *Handler) Leaderboard(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runLeaderboard(c.Request.Context(), cmd))
}

func (h *Handler) runLeaderboard(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	w := currentWindow()

	board, err := h.Analytics.Leaderboard(ctx, w)
	if err != nil {
		return ephemeral(userErrorText(err))
	}
	unranked, err := h.Analytics.UnrankedPlayers(ctx, w)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	resolve := func(id string) string { return h.Nicknames.Resolve(ctx, id) }
	return inChannel(formatLeaderboard(board, unranked, resolve))
}
