package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/repository/memory"
	"fantasy-hoops-be/pkg/chat"
	"fantasy-hoops-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceStream struct {
	fragments []string
}

func (s *sliceStream) Next() (string, error) {
	if len(s.fragments) == 0 {
		return "", io.EOF
	}
	f := s.fragments[0]
	s.fragments = s.fragments[1:]
	return f, nil
}

func (s *sliceStream) Close() error { return nil }

type fakeProvider struct {
	conv    llm.Conversation
	options *llm.Options
	calls   int
	openErr error
}

func (p *fakeProvider) ChatStream(ctx context.Context, conv llm.Conversation, opts ...llm.Option) (llm.Stream, error) {
	p.calls++
	p.conv = conv
	p.options = llm.ApplyOptions(opts)
	if p.openErr != nil {
		return nil, p.openErr
	}
	return &sliceStream{fragments: []string{"ok"}}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func userTurn(content string) dto.ChatRequest {
	return dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "user", Content: content}}}
}

func TestChatbotService_UnconfiguredProviderIs503(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewChatbotService(factory, nil, memory.NewRosterContextCache(), testLogger)

	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), nil, &req)
	requireAppError(t, err, 503)
}

func TestChatbotService_InvalidMessagesNeverReachProvider(t *testing.T) {
	factory, _ := newTestFactory(t)
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger)

	for _, req := range []dto.ChatRequest{
		{},
		{Messages: []dto.ChatMessage{{Role: "system", Content: "x"}}},
		{Messages: []dto.ChatMessage{{Role: "user", Content: " "}}},
	} {
		req := req
		_, err := svc.OpenStream(context.Background(), nil, &req)
		requireAppError(t, err, 400)
	}
	assert.Equal(t, 0, provider.calls)
}

func TestChatbotService_AnonymousGetsNoRosterSection(t *testing.T) {
	factory, _ := newTestFactory(t)
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger)

	req := userTurn("who should I stream?")
	stream, err := svc.OpenStream(context.Background(), nil, &req)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, "who should I stream?", provider.conv.Prompt)
	assert.Equal(t, chat.SystemInstruction(chat.RosterContext{}), provider.conv.System)
}

func TestChatbotService_RosterIsInjectedAndCached(t *testing.T) {
	factory, _ := newTestFactory(t)
	user := uuid.New()
	err := factory.NewUnitOfWork(context.Background()).RosterPlayerRepository().Create(context.Background(), &entity.RosterPlayer{
		UserId:     user,
		PlayerName: "LeBron James",
		NbaTeam:    "Los Angeles Lakers",
	})
	require.NoError(t, err)

	cache := memory.NewRosterContextCache()
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, cache, testLogger)

	req := userTurn("trade ideas?")
	_, err = svc.OpenStream(context.Background(), &user, &req)
	require.NoError(t, err)
	assert.Contains(t, provider.conv.System, "LeBron James (Los Angeles Lakers)")

	cached, ok := cache.Get(user)
	require.True(t, ok)
	assert.Equal(t, []chat.RosterEntry{{Name: "LeBron James", Team: "Los Angeles Lakers"}}, cached)
}

func TestChatbotService_RosterLookupFailureDegrades(t *testing.T) {
	factory, db := newTestFactory(t)
	require.NoError(t, db.Migrator().DropTable("roster_players"))

	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger)

	user := uuid.New()
	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), &user, &req)
	require.NoError(t, err, "chat proceeds without the roster")
	assert.Equal(t, 1, provider.calls)
	assert.NotContains(t, provider.conv.System, "current fantasy roster:")
}

func TestChatbotService_ProviderOpenFailureIs500(t *testing.T) {
	factory, _ := newTestFactory(t)
	provider := &fakeProvider{openErr: errors.New("gemini error: status 500")}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger)

	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), nil, &req)
	appErr := requireAppError(t, err, 500)
	assert.NotContains(t, appErr.Message, "gemini", "upstream detail is not shown to callers")
}

// evictingCache simulates a roster write landing while the chat request is
// still reading the roster from the database.
type evictingCache struct {
	*memory.RosterContextCache
}

func (c evictingCache) Generation(userID uuid.UUID) uint64 {
	gen := c.RosterContextCache.Generation(userID)
	c.RosterContextCache.Delete(userID)
	return gen
}

func TestChatbotService_EvictionDuringReadIsNotCached(t *testing.T) {
	factory, _ := newTestFactory(t)
	user := uuid.New()

	cache := memory.NewRosterContextCache()
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, evictingCache{cache}, testLogger)

	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), &user, &req)
	require.NoError(t, err)

	_, ok := cache.Get(user)
	assert.False(t, ok, "a roster read that raced a write must not be cached")
}

func TestChatbotService_PassesConfiguredOptions(t *testing.T) {
	factory, _ := newTestFactory(t)
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(512),
	)

	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), nil, &req)
	require.NoError(t, err)
	assert.Equal(t, 0.2, provider.options.Temperature)
	assert.Equal(t, 512, provider.options.MaxTokens)
}

func TestChatbotService_ValidatesOnlyTheSentWindow(t *testing.T) {
	factory, _ := newTestFactory(t)
	provider := &fakeProvider{}
	svc := NewChatbotService(factory, provider, memory.NewRosterContextCache(), testLogger)

	req := dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "system", Content: "stale"}}}
	for i := 0; i < 24; i++ {
		req.Messages = append(req.Messages, dto.ChatMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	_, err := svc.OpenStream(context.Background(), nil, &req)
	require.NoError(t, err)
	assert.Equal(t, "m23", provider.conv.Prompt)
}

func TestChatbotService_RosterContextIsCapped(t *testing.T) {
	factory, _ := newTestFactory(t)
	user := uuid.New()
	repo := factory.NewUnitOfWork(context.Background()).RosterPlayerRepository()
	for i := 0; i < maxRosterContext+5; i++ {
		require.NoError(t, repo.Create(context.Background(), &entity.RosterPlayer{
			UserId:     user,
			PlayerName: fmt.Sprintf("Player %c%c", 'A'+i/26, 'a'+i%26),
			NbaTeam:    "Utah Jazz",
		}))
	}

	cache := memory.NewRosterContextCache()
	svc := NewChatbotService(factory, &fakeProvider{}, cache, testLogger)
	req := userTurn("hi")
	_, err := svc.OpenStream(context.Background(), &user, &req)
	require.NoError(t, err)

	cached, ok := cache.Get(user)
	require.True(t, ok)
	assert.Len(t, cached, maxRosterContext)
}
