package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slack_shifumi/internal/slack"
	"slack_shifumi/internal/stats"

	"github.com/gin-gonic/gin"
)

// currentWindow is the default analytics window: the current calendar
// year at query time.
func currentWindow() stats.Window {
	return stats.CurrentYear(time.Now())
}

// Stats handles /shifumi-stats:
//   - no mention: the global gesture meta-game
//   - one mention: that player's per-gesture breakdown
//   - two mentions: head-to-head from the first player's perspective
//
// Prefixing the text with "detail" switches to the first/second-mover
// breakdown variants.
func (h *Handler) Stats(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runStats(c.Request.Context(), cmd))
}

func (h *Handler) runStats(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	w := currentWindow()
	mentions := slack.Mentions(cmd.Text)
	rest := strings.ToLower(slack.StripMentions(cmd.Text))
	detailed := strings.HasPrefix(rest, "detail") || strings.HasPrefix(rest, "détail")
	resolve := func(id string) string { return h.Nicknames.Resolve(ctx, id) }

	var text string
	switch len(mentions) {
	case 2:
		a, b := mentions[0].UserID, mentions[1].UserID
		if detailed {
			h2h, err := h.Analytics.HeadToHeadBreakdown(ctx, w, a, b)
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			if h2h == nil {
				text = fmt.Sprintf("Aucune partie jouée entre %s et %s cette année ! 😢", resolve(a), resolve(b))
			} else {
				text = formatHeadToHeadBreakdown(h2h, resolve)
			}
		} else {
			h2h, err := h.Analytics.HeadToHead(ctx, w, a, b)
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			if h2h == nil {
				text = fmt.Sprintf("Aucune partie jouée entre %s et %s cette année ! 😢", resolve(a), resolve(b))
			} else {
				text = formatHeadToHead(h2h, resolve)
			}
		}

	case 1:
		target := mentions[0].UserID
		header := fmt.Sprintf("📊 *Statistiques des coups joués par %s* 📊", resolve(target))
		if detailed {
			b, err := h.Analytics.MoveStatsBreakdown(ctx, w, target)
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			text = formatBreakdown(header, b)
		} else {
			moves, err := h.Analytics.PlayerStats(ctx, w, target)
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			text = formatMoveStats(header, moves)
		}

	default:
		header := "📊 *Statistiques des coups joués* 📊"
		if detailed {
			b, err := h.Analytics.MoveStatsBreakdown(ctx, w, "")
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			text = formatBreakdown(header, b)
		} else {
			moves, err := h.Analytics.MoveStats(ctx, w)
			if err != nil {
				return ephemeral(userErrorText(err))
			}
			text = formatMoveStats(header, moves)
		}
	}

	return inChannel(text)
}

// FullStats handles /shifumi-bilan [@user]: a player's overall record
// plus nemesis, favorite victim and most-drawn opponent.
func (h *Handler) FullStats(c *gin.Context) {
	cmd, ok := bindCommand(c)
	if !ok {
		return
	}
	h.deliver(c, cmd, h.runFullStats(c.Request.Context(), cmd))
}

func (h *Handler) runFullStats(ctx context.Context, cmd slack.SlashCommand) slack.Message {
	target := cmd.UserID
	if mentions := slack.Mentions(cmd.Text); len(mentions) == 1 {
		target = mentions[0].UserID
	}

	full, err := h.Analytics.UserFullStats(ctx, currentWindow(), target)
	if err != nil {
		return ephemeral(userErrorText(err))
	}

	resolve := func(id string) string { return h.Nicknames.Resolve(ctx, id) }
	if full == nil {
		return inChannel(fmt.Sprintf("%s n'a pas encore joué cette année ! 😢", resolve(target)))
	}
	return inChannel(formatFullStats(full, resolve))
}
