package handlers

import (
	"context"

	"slack_shifumi/internal/logger"
	"slack_shifumi/internal/slack"
)

// HandleSocketCommand routes a slash command received over Socket Mode
// through the same command cores as the HTTP endpoints. Every reply
// goes through the response_url; there is no inline ack body to use.
func (h *Handler) HandleSocketCommand(ctx context.Context, cmd slack.SlashCommand) {
	var msg slack.Message
	switch cmd.Command {
	case "/shifumi":
		msg = h.runPlay(ctx, cmd)
	case "/shifumi-defi":
		msg = h.runChallenge(ctx, cmd)
	case "/shifumi-riposte":
		msg = h.runAnswerChallenge(ctx, cmd)
	case "/shifumi-stats":
		msg = h.runStats(ctx, cmd)
	case "/shifumi-bilan":
		msg = h.runFullStats(ctx, cmd)
	case "/shifumi-classement":
		msg = h.runLeaderboard(ctx, cmd)
	case "/shifumi-pseudo":
		msg = h.runNickname(ctx, cmd)
	case "/shifumi-defis":
		msg = h.runPendingChallenges(ctx, cmd)
	default:
		logger.Warn("socket: unknown command", "command", cmd.Command)
		msg = ephemeral("Commande inconnue: " + cmd.Command)
	}
	h.Responder.PostAsync(cmd.ResponseURL, msg)
}
