package service

import (
	"context"
	"errors"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/specification"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/pkg/chat"
	"fantasy-hoops-be/pkg/llm"

	"github.com/google/uuid"
)

// maxRosterContext bounds how many roster rows go into the prompt.
const maxRosterContext = 40

// RosterContextStore caches the roster section per user. Delete changes the
// user's generation; SaveIfCurrent refuses entries read under an older one.
type RosterContextStore interface {
	Get(userID uuid.UUID) ([]chat.RosterEntry, bool)
	Generation(userID uuid.UUID) uint64
	SaveIfCurrent(userID uuid.UUID, gen uint64, entries []chat.RosterEntry) bool
	Delete(userID uuid.UUID)
}

type IChatbotService interface {
	// OpenStream validates the conversation, builds the prompt and opens the
	// provider stream. userId is nil for anonymous callers.
	OpenStream(ctx context.Context, userId *uuid.UUID, req *dto.ChatRequest) (llm.Stream, error)
}

type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	rosterCache RosterContextStore
	logger      logger.ILogger
	llmOptions  []llm.Option
}

// NewChatbotService passes llmOptions (temperature, token limit) to every
// provider call.
func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	rosterCache RosterContextStore,
	logger logger.ILogger,
	llmOptions ...llm.Option,
) IChatbotService {
	return &chatbotService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		rosterCache: rosterCache,
		logger:      logger,
		llmOptions:  llmOptions,
	}
}

func (s *chatbotService) OpenStream(ctx context.Context, userId *uuid.UUID, req *dto.ChatRequest) (llm.Stream, error) {
	if s.llmProvider == nil {
		return nil, serverutils.Unavailable(msgChatUnavailable, llm.ErrNotConfigured)
	}

	turns := make([]chat.Turn, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, chat.Turn{Role: m.Role, Content: m.Content})
	}
	// only the turns that will be sent are validated
	if err := chat.ValidateTurns(chat.Trim(turns)); err != nil {
		return nil, serverutils.BadRequest(err.Error()).OnField("messages")
	}

	rosterCtx := s.rosterContext(ctx, userId)
	if rosterCtx.Degraded && userId != nil {
		s.logger.Warn("CHATBOT", "Proceeding without roster context", map[string]interface{}{
			"user_id": userId.String(),
			"reason":  rosterCtx.Reason,
		})
	}

	conv, err := chat.Build(rosterCtx, turns)
	if err != nil {
		return nil, serverutils.BadRequest(err.Error()).OnField("messages")
	}

	stream, err := s.llmProvider.ChatStream(ctx, conv, s.llmOptions...)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, serverutils.Unavailable(msgChatUnavailable, err)
		}
		s.logger.Error("CHATBOT", "Failed to open provider stream", map[string]interface{}{
			"provider": s.llmProvider.Name(),
			"error":    err.Error(),
		})
		return nil, serverutils.Internal(msgChatFailed, err)
	}
	return stream, nil
}

// rosterContext never fails. Anonymous callers and lookup failures get a
// degraded context with no roster section.
func (s *chatbotService) rosterContext(ctx context.Context, userId *uuid.UUID) chat.RosterContext {
	if userId == nil {
		return chat.DegradedRoster("unauthenticated")
	}
	if entries, ok := s.rosterCache.Get(*userId); ok {
		return chat.RosterContext{Entries: entries}
	}

	gen := s.rosterCache.Generation(*userId)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	players, err := uow.RosterPlayerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: *userId},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: maxRosterContext},
	)
	if err != nil {
		return chat.DegradedRoster("roster lookup failed: " + err.Error())
	}

	entries := make([]chat.RosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, chat.RosterEntry{Name: p.PlayerName, Team: p.NbaTeam})
	}
	// a roster write during the read bumped the generation; keep the
	// result for this request only
	s.rosterCache.SaveIfCurrent(*userId, gen, entries)
	return chat.RosterContext{Entries: entries}
}
