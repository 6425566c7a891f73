package controller

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/memory"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/internal/service"
	"fantasy-hoops-be/pkg/database"
	"fantasy-hoops-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pacedProvider emits "tick " every interval until its context ends. With a
// zero interval it never sends anything.
type pacedProvider struct {
	interval time.Duration

	mu     sync.Mutex
	ctx    context.Context
	opened chan struct{}
}

func newPacedProvider(interval time.Duration) *pacedProvider {
	return &pacedProvider{interval: interval, opened: make(chan struct{})}
}

func (p *pacedProvider) ChatStream(ctx context.Context, conv llm.Conversation, opts ...llm.Option) (llm.Stream, error) {
	p.mu.Lock()
	p.ctx = ctx
	p.mu.Unlock()
	close(p.opened)
	return &pacedStream{ctx: ctx, interval: p.interval}, nil
}

func (p *pacedProvider) Name() string { return "paced" }

// upstream returns the context the provider call was opened with.
func (p *pacedProvider) upstream(t *testing.T) context.Context {
	t.Helper()
	select {
	case <-p.opened:
	case <-time.After(2 * time.Second):
		t.Fatal("provider was never called")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

type pacedStream struct {
	ctx      context.Context
	interval time.Duration
}

func (s *pacedStream) Next() (string, error) {
	if s.interval == 0 {
		<-s.ctx.Done()
		return "", s.ctx.Err()
	}
	select {
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	case <-time.After(s.interval):
		return "tick ", nil
	}
}

func (s *pacedStream) Close() error { return nil }

func newChatApp(t *testing.T, provider llm.LLMProvider, streams StreamConfig) *fiber.App {
	t.Helper()
	db, err := database.NewGormDB(database.GormConfig{Driver: database.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	log := logger.NewNopLogger()
	guard := serverutils.NewJwtGuard("test-secret", memory.NewTokenDenylist())
	chatService := service.NewChatbotService(unitofwork.NewRepositoryFactory(db), provider, memory.NewRosterContextCache(), log)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	NewChatbotController(chatService, guard, log, streams).RegisterRoutes(app.Group("/api"))
	return app
}

func chatRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"who?"}]}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func requireCancelledBy(t *testing.T, ctx context.Context, cause error) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("upstream context was not cancelled")
	}
	assert.ErrorIs(t, context.Cause(ctx), cause)
}

func TestChat_SilentProviderIsCancelledAfterIdleTimeout(t *testing.T) {
	provider := newPacedProvider(0)
	app := newChatApp(t, provider, StreamConfig{IdleTimeout: 50 * time.Millisecond})

	resp, err := app.Test(chatRequest(), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	requireCancelledBy(t, provider.upstream(t), errStreamIdle)
}

func TestChat_ShutdownCancelsOpenStreams(t *testing.T) {
	lifetime, stop := context.WithCancel(context.Background())
	defer stop()

	provider := newPacedProvider(0)
	app := newChatApp(t, provider, StreamConfig{Lifetime: lifetime, IdleTimeout: time.Minute})

	done := make(chan error, 1)
	go func() {
		_, err := app.Test(chatRequest(), 5000)
		done <- err
	}()

	upstream := provider.upstream(t)
	stop()

	requireCancelledBy(t, upstream, errServerStopping)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("response did not finish after shutdown")
	}
}

func TestChat_ClientDisconnectCancelsProvider(t *testing.T) {
	provider := newPacedProvider(10 * time.Millisecond)
	app := newChatApp(t, provider, StreamConfig{IdleTimeout: time.Minute})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.ShutdownWithTimeout(time.Second) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)

	body := `{"messages":[{"role":"user","content":"who?"}]}`
	_, err = fmt.Fprintf(conn, "POST /api/chat HTTP/1.1\r\nHost: test\r\nContent-Type: application/json\r\nContent-Length: %d\r\n\r\n%s", len(body), body)
	require.NoError(t, err)

	// wait for the reply to start streaming, then walk away
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	status, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, status, "200")
	require.NoError(t, conn.Close())

	requireCancelledBy(t, provider.upstream(t), errClientGone)
}
