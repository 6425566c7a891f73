package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/specification"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/pkg/events"
	"fantasy-hoops-be/pkg/roster"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RosterValidator resolves the name and team to persist for a roster add.
type RosterValidator interface {
	Resolve(ctx context.Context, name, requestedTeam string) (roster.Resolution, error)
}

type IRosterService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.RosterPlayerResponse, error)
	Add(ctx context.Context, userId uuid.UUID, req *dto.AddRosterPlayerRequest) (*dto.AddRosterPlayerResponse, error)
	Remove(ctx context.Context, userId uuid.UUID, req *dto.RemoveRosterPlayerRequest) (*dto.RemoveRosterPlayerResponse, error)
}

type rosterService struct {
	uowFactory       unitofwork.RepositoryFactory
	validator        RosterValidator
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewRosterService(
	uowFactory unitofwork.RepositoryFactory,
	validator RosterValidator,
	publisherService IPublisherService,
	logger logger.ILogger,
) IRosterService {
	return &rosterService{
		uowFactory:       uowFactory,
		validator:        validator,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *rosterService) List(ctx context.Context, userId uuid.UUID) ([]*dto.RosterPlayerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	players, err := uow.RosterPlayerRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.logger.Error("ROSTER", "Failed to list roster", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, serverutils.Internal(msgLoadRoster, err)
	}

	result := make([]*dto.RosterPlayerResponse, 0, len(players))
	for _, p := range players {
		result = append(result, toRosterPlayerResponse(p))
	}
	return result, nil
}

func (s *rosterService) Add(ctx context.Context, userId uuid.UUID, req *dto.AddRosterPlayerRequest) (*dto.AddRosterPlayerResponse, error) {
	resolution, err := s.validator.Resolve(ctx, req.PlayerName, req.NbaTeam)
	if err != nil {
		return nil, rosterValidationError(err)
	}
	if resolution.Degraded() {
		s.logger.Warn("ROSTER", "Player directory unavailable, using submitted team", map[string]interface{}{
			"user_id":     userId.String(),
			"player_name": resolution.Name,
			"nba_team":    resolution.Team,
			"cause":       errString(resolution.Cause),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.RosterPlayerRepository()

	existing, err := repo.Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByPlayerName{Name: resolution.Name},
	)
	if err != nil {
		return nil, s.saveFailed(userId, resolution.Name, err)
	}
	if existing > 0 {
		return nil, alreadyOnRoster(resolution.Name)
	}

	player := &entity.RosterPlayer{
		Id:         uuid.New(),
		UserId:     userId,
		PlayerName: resolution.Name,
		NbaTeam:    resolution.Team,
		CreatedAt:  time.Now(),
	}
	if err := repo.Create(ctx, player); err != nil {
		// a concurrent add can still lose the race to the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, alreadyOnRoster(resolution.Name)
		}
		return nil, s.saveFailed(userId, resolution.Name, err)
	}

	s.publishChange(ctx, userId, events.RosterActionAdded, player.PlayerName)

	return &dto.AddRosterPlayerResponse{
		Player:     *toRosterPlayerResponse(player),
		TeamSource: string(resolution.Source),
	}, nil
}

// Remove reports removed=false, not an error, when the row does not exist
// or belongs to someone else.
func (s *rosterService) Remove(ctx context.Context, userId uuid.UUID, req *dto.RemoveRosterPlayerRequest) (*dto.RemoveRosterPlayerResponse, error) {
	id, err := uuid.Parse(req.PlayerId)
	if err != nil {
		return nil, serverutils.BadRequest("invalid player_id").OnField("player_id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.RosterPlayerRepository().DeleteOwned(ctx, userId, id)
	if err != nil {
		s.logger.Error("ROSTER", "Failed to remove roster player", map[string]interface{}{
			"user_id":   userId.String(),
			"player_id": id.String(),
			"error":     err.Error(),
		})
		return nil, serverutils.Internal(msgRemoveRoster, err)
	}

	if removed > 0 {
		s.publishChange(ctx, userId, events.RosterActionRemoved, "")
	}

	return &dto.RemoveRosterPlayerResponse{Removed: removed > 0}, nil
}

func (s *rosterService) publishChange(ctx context.Context, userId uuid.UUID, action, playerName string) {
	err := s.publisherService.Publish(ctx, events.RosterChanged{
		UserID:     userId,
		Action:     action,
		PlayerName: playerName,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("ROSTER", "Failed to publish roster change", map[string]interface{}{
			"user_id": userId.String(),
			"action":  action,
			"error":   err.Error(),
		})
	}
}

func (s *rosterService) saveFailed(userId uuid.UUID, name string, err error) error {
	s.logger.Error("ROSTER", "Failed to save roster player", map[string]interface{}{
		"user_id":     userId.String(),
		"player_name": name,
		"error":       err.Error(),
	})
	return serverutils.Internal(msgSaveRoster, err)
}

func alreadyOnRoster(name string) error {
	return serverutils.Conflict(fmt.Sprintf(msgAlreadyOnRoster, name)).OnField("player_name")
}

var rosterFieldMessages = []struct {
	err     error
	field   string
	message string
}{
	{roster.ErrInvalidName, "player_name", "Player name must be 2-60 letters, separated by single spaces, hyphens, or apostrophes."},
	{roster.ErrPlayerNotFound, "player_name", "Player not found on an active NBA roster. Please select a player from the suggestions."},
	{roster.ErrUnresolvableTeam, "player_name", "Could not determine a valid team for this player."},
	{roster.ErrInvalidTeam, "nba_team", "Please select a valid NBA team."},
}

func rosterValidationError(err error) error {
	for _, m := range rosterFieldMessages {
		if errors.Is(err, m.err) {
			return serverutils.BadRequest(m.message).OnField(m.field)
		}
	}
	return serverutils.Internal(msgSaveRoster, err)
}

func toRosterPlayerResponse(p *entity.RosterPlayer) *dto.RosterPlayerResponse {
	return &dto.RosterPlayerResponse{
		Id:         p.Id,
		PlayerName: p.PlayerName,
		NbaTeam:    p.NbaTeam,
		CreatedAt:  p.CreatedAt,
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
