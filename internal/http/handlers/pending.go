package handlers

import (
	"context"

	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// PendingChallenges handles /shifumi-defis: every challenge still
// waiting for its target to answer.
func (h *Handler) PendingChallenges(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runPendingChallenges(c.Request.Context(), cmd))
}

func (h *Handler) runPendingChallenges(ctx context.Context, _ slack.SlashCommand) slack.Message {
	challenges, err := h.Matches.PendingChallenges(ctx)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	resolve := func(id string) string { return h.Nicknames.Resolve(ctx, id) }
	return ephemeral(formatPendingChallenges(challenges, resolve))
}
