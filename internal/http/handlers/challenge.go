package handlers

import (
	"context"

	"slack_shifumi/internal/game"
	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

// Challenge handles the directed-challenge command:
// /shifumi-defi @user <gesture>.
func (h *Handler) Challenge(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runChallenge(c.Request.Context(), cmd))
}

func (h *Handler) runChallenge(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	mentions := slack.Mentions(cmd.Text)
	if len(mentions) != 1 {
		return ephemeral("Utilisation: /shifumi-defi @joueur <geste>")
	}
	target := mentions[0]

	g, err := game.ParseGesture(slack.StripMentions(cmd.Text))
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	_, err = h.Matches.Challenge(ctx, cmd.ChannelID, cmd.ChannelName,
		cmd.UserID, cmd.UserName, target.UserID, target.Name, g)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	challengerName := h.Nicknames.Resolve(ctx, cmd.UserID)
	targetName := h.Nicknames.Resolve(ctx, target.UserID)
	return inChannel(formatChallengeCreated(challengerName, targetName, g))
}

// AnswerChallenge handles the challenge response command:
// /shifumi-riposte @challenger <gesture>.
func (h *Handler) AnswerChallenge(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runAnswerChallenge(c.Request.Context(), cmd))
}

func (h *Handler) runAnswerChallenge(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	mentions := slack.Mentions(cmd.Text)
	if len(mentions) != 1 {
		return ephemeral("Utilisation: /shifumi-riposte @joueur <geste>")
	}
	challenger := mentions[0]

	g, err := game.ParseGesture(slack.StripMentions(cmd.Text))
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	res, err := h.Matches.AnswerChallenge(ctx, challenger.UserID, cmd.UserID, cmd.UserName, g)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	p1Name := h.Nicknames.Resolve(ctx, res.Match.Player1ID)
	p2Name := h.Nicknames.Resolve(ctx, cmd.UserID)
	return inChannel("Résultat du défi !\n" + formatResult(res.Match, res.Outcome, p1Name, p2Name))
}
