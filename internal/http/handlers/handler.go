package handlers

import (
	"net/http"

	"slack_shifumi/internal/repository"
	"slack_shifumi/internal/service"
	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler carries the services shared by all command endpoints.
type Handler struct {
	DB        *pgxpool.Pool
	Matches   *service.MatchService
	Analytics *service.StatsService
	Nicknames *service.NicknameService
	Responder *slack.Responder
}

func NewHandler(db *pgxpool.Pool) *Handler {
	matchRepo := repository.NewMatchRepository(db)
	return &Handler{
		DB:        db,
		Matches:   service.NewMatchService(matchRepo),
		Analytics: service.NewStatsService(matchRepo),
		Nicknames: service.NewNicknameService(repository.NewNicknameRepository(db)),
		Responder: slack.NewResponder(),
	}
}

// bindCommand decodes the slash-command form body; a failure is
// answered directly since there is no response_url to use yet.
func bindCommand(c *gin.Context) (slack.SlashCommand, bool) {
	var cmd slack.SlashCommand
	if err := c.ShouldBind(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid command payload"})
		return cmd, false
	}
	return cmd, true
}

// deliver sends a command reply. Ephemeral messages ride the immediate
// acknowledgment; channel messages go through the response_url while
// the ack stays empty, so either path can fail without the other.
func (h *Handler) deliver(c *gin.Context, cmd slack.SlashCommand, msg slack.Message) {
	if msg.ResponseType == slack.ResponseEphemeral {
		c.JSON(http.StatusOK, msg)
		return
	}
	h.Responder.PostAsync(cmd.ResponseURL, msg)
	c.Data(http.StatusOK, "application/json", nil)
}

// ack ends an interaction request with the empty 200 Slack expects.
func ack(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", nil)
}

func ephemeral(text string) slack.Message {
	return slack.Message{ResponseType: slack.ResponseEphemeral, Text: text}
}

func inChannel(text string) slack.Message {
	return slack.Message{ResponseType: slack.ResponseInChannel, Text: text}
}
