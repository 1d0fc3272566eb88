package handlers

import (
	"context"
	"strings"

	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// Nickname handles /shifumi-pseudo <pseudo>: a cosmetic display-name
// override, upserted per player.
func (h *Handler) Nickname(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runNickname(c.Request.Context(), cmd))
}

func (h *Handler) runNickname(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	nickname := strings.TrimSpace(cmd.Text)
	if nickname == "" {
		return ephemeral("Tu dois spécifier un pseudo. Utilisation: /shifumi-pseudo <ton-pseudo>")
	}

	if err := h.Nicknames.Set(ctx, cmd.UserID, nickname, cmd.UserName); err != nil {
		return ephemeral(userErrorText(err))
	}
	return ephemeral("Ton pseudo est maintenant: " + nickname)
}
