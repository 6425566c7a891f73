package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/memory"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/internal/service"
	"fantasy-hoops-be/pkg/database"
	"fantasy-hoops-be/pkg/directory"
	"fantasy-hoops-be/pkg/events"
	"fantasy-hoops-be/pkg/llm"
	"fantasy-hoops-be/pkg/roster"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFetcher struct {
	players []directory.Player
	err     error
}

func (f staticFetcher) FetchActivePlayers(ctx context.Context) ([]directory.Player, error) {
	return f.players, f.err
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, e events.Event) error { return nil }

type scriptedStream struct {
	fragments []string
	tailErr   error
}

func (s *scriptedStream) Next() (string, error) {
	if len(s.fragments) == 0 {
		if s.tailErr != nil {
			return "", s.tailErr
		}
		return "", io.EOF
	}
	f := s.fragments[0]
	s.fragments = s.fragments[1:]
	return f, nil
}

func (s *scriptedStream) Close() error { return nil }

type scriptedProvider struct {
	stream *scriptedStream
	conv   llm.Conversation
}

func (p *scriptedProvider) ChatStream(ctx context.Context, conv llm.Conversation, opts ...llm.Option) (llm.Stream, error) {
	p.conv = conv
	return p.stream, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

type testApp struct {
	app      *fiber.App
	guard    *serverutils.JwtGuard
	provider *scriptedProvider
}

func newTestApp(t *testing.T, provider *scriptedProvider) *testApp {
	t.Helper()
	db, err := database.NewGormDB(database.GormConfig{Driver: database.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	log := logger.NewNopLogger()
	factory := unitofwork.NewRepositoryFactory(db)
	denylist := memory.NewTokenDenylist()
	guard := serverutils.NewJwtGuard("test-secret", denylist)

	dir := directory.New(staticFetcher{players: []directory.Player{
		{Name: "LeBron James", Team: "Los Angeles Lakers"},
		{Name: "Luka Doncic", Team: "Los Angeles Lakers"},
	}})

	var llmProvider llm.LLMProvider
	if provider != nil {
		llmProvider = provider
	}

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	api := app.Group("/api")
	NewScheduleController(service.NewScheduleService(factory, log)).RegisterRoutes(api)
	NewPlayerController(service.NewPlayerService(dir, log)).RegisterRoutes(api)
	NewRosterController(service.NewRosterService(factory, roster.NewValidator(dir), nopPublisher{}, log), guard).RegisterRoutes(api)
	NewChatbotController(service.NewChatbotService(factory, llmProvider, memory.NewRosterContextCache(), log), guard, log, StreamConfig{}).RegisterRoutes(api)
	NewAuthController(service.NewAuthService(factory, guard, denylist, time.Hour, log), guard).RegisterRoutes(api)

	return &testApp{app: app, guard: guard, provider: provider}
}

func (a *testApp) token(t *testing.T) (string, uuid.UUID) {
	t.Helper()
	user := uuid.New()
	tok, _, err := a.guard.Issue(user, time.Hour)
	require.NoError(t, err)
	return tok, user
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func envelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestGames_ValidatesDates(t *testing.T) {
	a := newTestApp(t, nil)

	for _, q := range []string{"", "?start=2025-12-01", "?start=12-01-2025&end=2025-12-07", "?start=2025-12-07&end=2025-12-01"} {
		resp, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/games"+q, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, false, envelope(t, body)["success"])
	}
}

func TestGames_EmptyRange(t *testing.T) {
	a := newTestApp(t, nil)

	resp, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/games?start=2025-12-01&end=2025-12-07", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := envelope(t, body)
	assert.Equal(t, float64(0), out["totalGames"])
	assert.Len(t, out["gameCounts"], 30)
	assert.Equal(t, map[string]interface{}{"start": "2025-12-01", "end": "2025-12-07"}, out["dateRange"])
}

func TestPlayers_Search(t *testing.T) {
	a := newTestApp(t, nil)

	resp, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/players?search=ja", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"name":"LeBron James","team":"Los Angeles Lakers"}]`, string(body))

	_, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/players?search=j", nil))
	assert.JSONEq(t, `[]`, string(body))
}

func TestRoster_RequiresAuth(t *testing.T) {
	a := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/roster", strings.NewReader("player_name=LeBron+James"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body := a.do(t, req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "You must be signed in.", envelope(t, body)["message"])
}

func TestRoster_AddDuplicateRemove(t *testing.T) {
	a := newTestApp(t, nil)
	tok, _ := a.token(t)

	add := func() (*http.Response, []byte) {
		form := url.Values{"player_name": {"LeBron James"}, "nba_team": {"Boston Celtics"}}
		req := httptest.NewRequest(http.MethodPost, "/api/roster", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "Bearer "+tok)
		return a.do(t, req)
	}

	resp, body := add()
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	data := envelope(t, body)["data"].(map[string]interface{})
	player := data["player"].(map[string]interface{})
	assert.Equal(t, "Los Angeles Lakers", player["nba_team"])
	id := player["id"].(string)

	resp, body = add()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	out := envelope(t, body)
	assert.Equal(t, "LeBron James is already on your roster.", out["message"])
	assert.Equal(t, map[string]interface{}{"player_name": "LeBron James is already on your roster."}, out["data"])

	req := httptest.NewRequest(http.MethodGet, "/api/roster", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	_, body = a.do(t, req)
	assert.Len(t, envelope(t, body)["data"], 1)

	req = httptest.NewRequest(http.MethodPost, "/api/roster/remove", strings.NewReader("player_id="+id))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, body = a.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"removed": true}, envelope(t, body)["data"])
}

func TestRoster_RemoveValidatesId(t *testing.T) {
	a := newTestApp(t, nil)
	tok, _ := a.token(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/roster/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, body := a.do(t, req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope(t, body)["data"], "player_id")
}

func TestChat_UnconfiguredProvider(t *testing.T) {
	a := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := a.do(t, req)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestChat_RejectsEmptyMessages(t *testing.T) {
	a := newTestApp(t, &scriptedProvider{stream: &scriptedStream{}})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := a.do(t, req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChat_StreamsPlainText(t *testing.T) {
	provider := &scriptedProvider{stream: &scriptedStream{fragments: []string{"Start ", "Jokić ", "tonight."}}}
	a := newTestApp(t, provider)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"who?"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := a.do(t, req)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "Start Jokić tonight.", string(body))
	assert.Equal(t, "who?", provider.conv.Prompt)
}

func TestChat_MidStreamFailureKeepsPrefix(t *testing.T) {
	provider := &scriptedProvider{stream: &scriptedStream{
		fragments: []string{"partial "},
		tailErr:   errors.New("upstream reset"),
	}}
	a := newTestApp(t, provider)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"who?"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := a.do(t, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "partial ", string(body))
}

func TestAuth_RegisterLoginLogout(t *testing.T) {
	a := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"fan@example.com","password":"hoops2026","confirm_password":"hoops2026"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := a.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"fan2@example.com","password":"hoops2026","confirm_password":"nope2026"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = a.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "passwords do not match", envelope(t, body)["message"])

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"fan@example.com","password":"hoops2026"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = a.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok := envelope(t, body)["data"].(map[string]interface{})["access_token"].(string)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ = a.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/roster", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ = a.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
