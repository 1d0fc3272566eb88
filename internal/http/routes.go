package http

import (
	"time"

	"slack_shifumi/internal/config"
	"slack_shifumi/internal/http/handlers"
	"slack_shifumi/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the command surface, the read-only analytics API
// and the health probes.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *handlers.Handler {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	// health checks, no rate limiting
	r.GET("/health", healthHandler.Liveness)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rateLimit := middleware.RedisRateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second)

	// slash commands and interactions: signed by Slack
	cmds := r.Group("/slack")
	cmds.Use(rateLimit)
	cmds.Use(middleware.VerifySlackSignature(cfg.SlackSigningSecret))
	{
		cmds.POST("/commands/shifumi", h.Play)
		cmds.POST("/commands/defi", h.Challenge)
		cmds.POST("/commands/riposte", h.AnswerChallenge)
		cmds.POST("/commands/stats", h.Stats)
		cmds.POST("/commands/bilan", h.FullStats)
		cmds.POST("/commands/classement", h.Leaderboard)
		cmds.POST("/commands/pseudo", h.Nickname)
		cmds.POST("/commands/defis", h.PendingChallenges)
		cmds.POST("/interactions", h.Interaction)
	}

	// read-only analytics API
	api := r.Group("/api/v1")
	api.Use(rateLimit)
	{
		api.GET("/leaderboard", h.APILeaderboard)
		api.GET("/moves", h.APIMoveStats)
		api.GET("/players/:id/moves", h.APIPlayerStats)
		api.GET("/players/:id/summary", h.APIPlayerSummary)
		api.GET("/players/:id/vs/:opponent", h.APIHeadToHead)
	}

	return h
}
