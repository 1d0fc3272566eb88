package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"slack_shifumi/internal/domain"
	"slack_shifumi/internal/game"
	"slack_shifumi/internal/service"
	"slack_shifumi/internal/slack"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memMatchStore is an in-memory MatchStore with the same observable
// semantics as the SQL repository.
type memMatchStore struct {
	nextID  int64
	matches []*domain.Match
}

func (s *memMatchStore) Create(_ context.Context, m *domain.Match) error {
	s.nextID++
	m.ID = s.nextID
	m.Status = domain.MatchPending
	m.CreatedAt = time.Now()
	s.matches = append(s.matches, m)
	return nil
}

func (s *memMatchStore) FindOpen(_ context.Context, channelID string) (*domain.Match, error) {
	for i := len(s.matches) - 1; i >= 0; i-- {
		m := s.matches[i]
		if m.ChannelID == channelID && m.Status == domain.MatchPending && m.Challenge == nil {
			return m, nil
		}
	}
	return nil, nil
}

func (s *memMatchStore) FindPendingChallenge(_ context.Context, a, b string) (*domain.Match, error) {
	for i := len(s.matches) - 1; i >= 0; i-- {
		m := s.matches[i]
		if m.Status != domain.MatchPending || m.Challenge == nil {
			continue
		}
		if (m.Player1ID == a && m.Challenge.TargetID == b) ||
			(m.Player1ID == b && m.Challenge.TargetID == a) {
			return m, nil
		}
	}
	return nil, nil
}

func (s *memMatchStore) GetPending(_ context.Context, id int64) (*domain.Match, error) {
	for _, m := range s.matches {
		if m.ID == id && m.Status == domain.MatchPending {
			return m, nil
		}
	}
	return nil, nil
}

func (s *memMatchStore) Complete(_ context.Context, id int64, p2 domain.PlayerSide) error {
	for _, m := range s.matches {
		if m.ID == id && m.Status == domain.MatchPending {
			m.Player2 = &p2
			m.Status = domain.MatchComplete
			return nil
		}
	}
	return service.ErrMatchUnavailable
}

func (s *memMatchStore) ListPendingChallenges(_ context.Context) ([]*domain.Match, error) {
	var res []*domain.Match
	for i := len(s.matches) - 1; i >= 0; i-- {
		m := s.matches[i]
		if m.Status == domain.MatchPending && m.Challenge != nil {
			res = append(res, m)
		}
	}
	return res, nil
}

// memHistory serves a fixed completed-match history.
type memHistory struct {
	matches []*domain.Match
}

func (h *memHistory) ListCompletedBetween(_ context.Context, start, end time.Time) ([]*domain.Match, error) {
	var res []*domain.Match
	for _, m := range h.matches {
		if !m.CreatedAt.Before(start) && m.CreatedAt.Before(end) {
			res = append(res, m)
		}
	}
	return res, nil
}

type memNickStore struct {
	byUser map[string]*domain.Nickname
}

func (s *memNickStore) Set(_ context.Context, userID, nickname, displayName string) error {
	if s.byUser == nil {
		s.byUser = make(map[string]*domain.Nickname)
	}
	s.byUser[userID] = &domain.Nickname{UserID: userID, Nickname: nickname, DisplayName: displayName}
	return nil
}

func (s *memNickStore) Get(_ context.Context, userID string) (*domain.Nickname, error) {
	return s.byUser[userID], nil
}

func testHandler(history *memHistory) *Handler {
	return &Handler{
		Matches:   service.NewMatchService(&memMatchStore{}),
		Analytics: service.NewStatsService(history),
		Nicknames: service.NewNicknameService(&memNickStore{}),
		Responder: slack.NewResponder(),
	}
}

func completedNow(channel, p1 string, g1 game.Gesture, p2 string, g2 game.Gesture) *domain.Match {
	return &domain.Match{
		ChannelID:      channel,
		Player1ID:      p1,
		Player1Name:    p1,
		Player1Gesture: g1,
		Player2:        &domain.PlayerSide{ID: p2, Name: p2, Gesture: g2},
		Status:         domain.MatchComplete,
		CreatedAt:      time.Now(),
	}
}

// postCommand sends a form-encoded slash command to the handler.
func postCommand(handler gin.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/cmd", handler)

	req := httptest.NewRequest(http.MethodPost, "/cmd", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func commandForm(userID, channelID, text, responseURL string) url.Values {
	return url.Values{
		"user_id":      {userID},
		"user_name":    {userID},
		"channel_id":   {channelID},
		"channel_name": {"general"},
		"text":         {text},
		"response_url": {responseURL},
	}
}

// captureResponses returns a test server that forwards every message
// posted to it into the channel.
func captureResponses(t *testing.T) (*httptest.Server, chan slack.Message) {
	t.Helper()
	got := make(chan slack.Message, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg slack.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode delayed response: %v", err)
		}
		got <- msg
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func waitMessage(t *testing.T, ch chan slack.Message) slack.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no delayed response delivered")
		return slack.Message{}
	}
}

func TestPlay_InvalidGesture(t *testing.T) {
	h := testHandler(&memHistory{})

	w := postCommand(h.Play, commandForm("U1", "C1", "banana", "http://unused"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ResponseType != slack.ResponseEphemeral {
		t.Fatalf("response type = %q, want ephemeral", msg.ResponseType)
	}
	if !strings.Contains(msg.Text, "Geste invalide") {
		t.Fatalf("text = %q, want invalid-gesture message", msg.Text)
	}
}

func TestPlay_StartThenResolve(t *testing.T) {
	h := testHandler(&memHistory{})
	srv, got := captureResponses(t)

	w := postCommand(h.Play, commandForm("U1", "C1", "pierre", srv.URL))
	if w.Code != http.StatusOK {
		t.Fatalf("first move status = %d, want 200", w.Code)
	}
	msg := waitMessage(t, got)
	if msg.ResponseType != slack.ResponseInChannel {
		t.Fatalf("response type = %q, want in_channel", msg.ResponseType)
	}
	if !strings.Contains(msg.Text, "En attente") {
		t.Fatalf("first move text = %q, want waiting message", msg.Text)
	}

	w = postCommand(h.Play, commandForm("U2", "C1", "feuille", srv.URL))
	if w.Code != http.StatusOK {
		t.Fatalf("second move status = %d, want 200", w.Code)
	}
	msg = waitMessage(t, got)
	if !strings.Contains(msg.Text, "<@U2> gagne") {
		t.Fatalf("result text = %q, want U2 winning (paper beats rock)", msg.Text)
	}
}

func TestPlay_SelfPlayRejected(t *testing.T) {
	h := testHandler(&memHistory{})
	srv, got := captureResponses(t)

	postCommand(h.Play, commandForm("U1", "C1", "rock", srv.URL))
	waitMessage(t, got)

	w := postCommand(h.Play, commandForm("U1", "C1", "paper", srv.URL))
	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ResponseType != slack.ResponseEphemeral || !strings.Contains(msg.Text, "toi-même") {
		t.Fatalf("msg = %+v, want ephemeral self-play refusal", msg)
	}
}

func TestChallengeFlow(t *testing.T) {
	h := testHandler(&memHistory{})
	srv, got := captureResponses(t)

	w := postCommand(h.Challenge, commandForm("U1", "C1", "<@U2|bob> ciseaux", srv.URL))
	if w.Code != http.StatusOK {
		t.Fatalf("challenge status = %d, want 200", w.Code)
	}
	msg := waitMessage(t, got)
	if !strings.Contains(msg.Text, "défie") {
		t.Fatalf("challenge text = %q, want announcement", msg.Text)
	}
	if strings.Contains(msg.Text, "ciseaux") {
		t.Fatalf("challenge text %q leaks the gesture", msg.Text)
	}

	w = postCommand(h.AnswerChallenge, commandForm("U2", "C1", "<@U1|alice> pierre", srv.URL))
	if w.Code != http.StatusOK {
		t.Fatalf("answer status = %d, want 200", w.Code)
	}
	msg = waitMessage(t, got)
	if !strings.Contains(msg.Text, "<@U2> gagne") {
		t.Fatalf("result text = %q, want U2 winning (rock beats scissors)", msg.Text)
	}
}

func TestChallenge_MissingMention(t *testing.T) {
	h := testHandler(&memHistory{})

	w := postCommand(h.Challenge, commandForm("U1", "C1", "pierre", "http://unused"))
	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ResponseType != slack.ResponseEphemeral || !strings.Contains(msg.Text, "Utilisation") {
		t.Fatalf("msg = %+v, want ephemeral usage hint", msg)
	}
}

func TestNickname_SetAndUsedInResults(t *testing.T) {
	h := testHandler(&memHistory{})

	w := postCommand(h.Nickname, commandForm("U1", "C1", "Le Stratège", "http://unused"))
	var msg slack.Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ResponseType != slack.ResponseEphemeral || !strings.Contains(msg.Text, "Le Stratège") {
		t.Fatalf("msg = %+v, want ephemeral confirmation", msg)
	}

	srv, got := captureResponses(t)
	postCommand(h.Play, commandForm("U1", "C1", "pierre", srv.URL))
	waiting := waitMessage(t, got)
	if !strings.Contains(waiting.Text, "Le Stratège") {
		t.Fatalf("waiting text = %q, want nickname used", waiting.Text)
	}
}

func TestInteraction_ButtonCompletesChallenge(t *testing.T) {
	h := testHandler(&memHistory{})
	srvCh, got := captureResponses(t)

	postCommand(h.Challenge, commandForm("U1", "C1", "<@U2|bob> ciseaux", srvCh.URL))
	waitMessage(t, got)

	payload := `{
		"type": "block_actions",
		"user": {"id": "U2", "username": "bob"},
		"actions": [{"action_id": "play_rock", "value": "challenge:U1"}],
		"response_url": "` + srvCh.URL + `"
	}`

	r := gin.New()
	r.POST("/interactions", h.Interaction)
	form := url.Values{"payload": {payload}}
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("interaction status = %d, want 200", w.Code)
	}
	msg := waitMessage(t, got)
	if !strings.Contains(msg.Text, "<@U2> gagne") {
		t.Fatalf("result text = %q, want U2 winning", msg.Text)
	}
	if !msg.ReplaceOriginal {
		t.Fatal("interactive result should replace the original message")
	}
}

func TestSocketCommand_RoutesAndReplies(t *testing.T) {
	h := testHandler(&memHistory{})
	srv, got := captureResponses(t)

	h.HandleSocketCommand(context.Background(), slack.SlashCommand{
		Command:     "/shifumi",
		Text:        "pierre",
		UserID:      "U1",
		UserName:    "alice",
		ChannelID:   "C1",
		ChannelName: "general",
		ResponseURL: srv.URL,
	})

	msg := waitMessage(t, got)
	if msg.ResponseType != slack.ResponseInChannel || !strings.Contains(msg.Text, "En attente") {
		t.Fatalf("msg = %+v, want in_channel waiting message", msg)
	}

	h.HandleSocketCommand(context.Background(), slack.SlashCommand{
		Command:     "/shifumi-inconnu",
		ResponseURL: srv.URL,
	})
	msg = waitMessage(t, got)
	if msg.ResponseType != slack.ResponseEphemeral || !strings.Contains(msg.Text, "Commande inconnue") {
		t.Fatalf("msg = %+v, want ephemeral unknown-command reply", msg)
	}
}

func apiRequest(t *testing.T, h *Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/api/v1/leaderboard", h.APILeaderboard)
	r.GET("/api/v1/moves", h.APIMoveStats)
	r.GET("/api/v1/players/:id/moves", h.APIPlayerStats)
	r.GET("/api/v1/players/:id/summary", h.APIPlayerSummary)
	r.GET("/api/v1/players/:id/vs/:opponent", h.APIHeadToHead)

	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// seededHistory builds six completed games between U1 and U2 so both
// players qualify for the leaderboard.
func seededHistory() *memHistory {
	h := &memHistory{}
	for i := 0; i < 5; i++ {
		h.matches = append(h.matches, completedNow("C1", "U1", game.Rock, "U2", game.Scissors))
	}
	h.matches = append(h.matches, completedNow("C1", "U1", game.Rock, "U2", game.Paper))
	return h
}

func TestAPILeaderboard(t *testing.T) {
	h := testHandler(seededHistory())

	w := apiRequest(t, h, http.MethodGet, "/api/v1/leaderboard")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Leaderboard []struct {
			PlayerID string  `json:"player_id"`
			WinRate  float64 `json:"win_rate"`
		} `json:"leaderboard"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Leaderboard) != 2 {
		t.Fatalf("leaderboard size = %d, want 2", len(body.Leaderboard))
	}
	if body.Leaderboard[0].PlayerID != "U1" {
		t.Fatalf("leader = %s, want U1", body.Leaderboard[0].PlayerID)
	}
}

func TestAPIPlayerSummary_NotFound(t *testing.T) {
	h := testHandler(seededHistory())

	if w := apiRequest(t, h, http.MethodGet, "/api/v1/players/UNKNOWN/summary"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w := apiRequest(t, h, http.MethodGet, "/api/v1/players/U1/summary"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAPIHeadToHead(t *testing.T) {
	h := testHandler(seededHistory())

	w := apiRequest(t, h, http.MethodGet, "/api/v1/players/U1/vs/U2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var h2h struct {
		TotalGames int `json:"total_games"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &h2h); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if h2h.TotalGames != 6 {
		t.Fatalf("total games = %d, want 6", h2h.TotalGames)
	}

	if w := apiRequest(t, h, http.MethodGet, "/api/v1/players/U1/vs/UNKNOWN"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAPIMoveStats_YearFilter(t *testing.T) {
	h := testHandler(seededHistory())

	// an old year has no games, so every rate is zero
	w := apiRequest(t, h, http.MethodGet, "/api/v1/moves?year=2001")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Moves []struct {
			PlayRate float64 `json:"play_rate"`
		} `json:"moves"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Moves) != 3 {
		t.Fatalf("moves = %d, want every gesture reported", len(body.Moves))
	}
	for _, mv := range body.Moves {
		if mv.PlayRate != 0 {
			t.Fatalf("play rate = %v, want 0 outside the window", mv.PlayRate)
		}
	}
}
