package handlers

import (
	"net/http"
	"strconv"
	"time"

	"slack_shifumi/internal/stats"

	"github.com/gin-gonic/gin"
)

// queryWindow reads the optional ?year= parameter; without it the
// window is the current calendar year.
func queryWindow(c *gin.Context) stats.Window {
	if v := c.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			return stats.Window{Start: start, End: start.AddDate(1, 0, 0)}
		}
	}
	return currentWindow()
}

// APILeaderboard returns the ranked and unranked lists as JSON.
func (h *Handler) APILeaderboard(c *gin.Context) {
	ctx := c.Request.Context()
	w := queryWindow(c)

	board, err := h.Analytics.Leaderboard(ctx, w)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute leaderboard"})
		return
	}
	unranked, err := h.Analytics.UnrankedPlayers(ctx, w)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": board,
		"unranked":    unranked,
	})
}

// APIMoveStats returns the global gesture meta-game, with an optional
// first/second-mover breakdown.
func (h *Handler) APIMoveStats(c *gin.Context) {
	ctx := c.Request.Context()
	w := queryWindow(c)

	if c.Query("breakdown") == "true" {
		b, err := h.Analytics.MoveStatsBreakdown(ctx, w, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		c.JSON(http.StatusOK, b)
		return
	}

	moves, err := h.Analytics.MoveStats(ctx, w)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": moves})
}

// APIPlayerStats returns one player's per-gesture breakdown.
func (h *Handler) APIPlayerStats(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := c.Param("id")
	w := queryWindow(c)

	if c.Query("breakdown") == "true" {
		b, err := h.Analytics.MoveStatsBreakdown(ctx, w, playerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		c.JSON(http.StatusOK, b)
		return
	}

	moves, err := h.Analytics.PlayerStats(ctx, w, playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"player_id": playerID, "moves": moves})
}

// APIPlayerSummary returns a player's record with nemesis, best-against
// and most-draws relationships.
func (h *Handler) APIPlayerSummary(c *gin.Context) {
	full, err := h.Analytics.UserFullStats(c.Request.Context(), queryWindow(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	if full == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no games for player"})
		return
	}
	c.JSON(http.StatusOK, full)
}

// APIHeadToHead returns the two-player restriction, from the first
// player's perspective.
func (h *Handler) APIHeadToHead(c *gin.Context) {
	ctx := c.Request.Context()
	a, b := c.Param("id"), c.Param("opponent")
	w := queryWindow(c)

	if c.Query("breakdown") == "true" {
		h2h, err := h.Analytics.HeadToHeadBreakdown(ctx, w, a, b)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		if h2h == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no games between players"})
			return
		}
		c.JSON(http.StatusOK, h2h)
		return
	}

	h2h, err := h.Analytics.HeadToHead(ctx, w, a, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	if h2h == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no games between players"})
		return
	}
	c.JSON(http.StatusOK, h2h)
}
