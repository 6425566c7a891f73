package service

import (
	"context"
	"strings"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/specification"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/pkg/nba"
	"fantasy-hoops-be/pkg/schedule"
)

type IScheduleService interface {
	GameCounts(ctx context.Context, req *dto.GameCountsQuery) (*dto.GameCountsResponse, error)
}

type scheduleService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewScheduleService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IScheduleService {
	return &scheduleService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *scheduleService) GameCounts(ctx context.Context, req *dto.GameCountsQuery) (*dto.GameCountsResponse, error) {
	rng, err := schedule.ParseRange(req.Start, req.End)
	if err != nil {
		return nil, serverutils.BadRequest(err.Error())
	}

	filter, err := parseTeamFilter(req.Teams)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	games, err := uow.GameRepository().FindAll(ctx, specification.GameDateBetween{Start: rng.Start, End: rng.End})
	if err != nil {
		s.logger.Error("SCHEDULE", "Failed to load games", map[string]interface{}{
			"start": rng.StartString(),
			"end":   rng.EndString(),
			"error": err.Error(),
		})
		return nil, serverutils.Internal(msgFetchGames, err)
	}

	matchups := make([]schedule.Matchup, 0, len(games))
	for _, g := range games {
		matchups = append(matchups, schedule.Matchup{HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam})
	}
	counts := schedule.CountGames(matchups)

	ranked := schedule.Rank(counts.GameCounts, filter)
	rankings := make([]dto.TeamRanking, 0, len(ranked))
	for _, r := range ranked {
		rankings = append(rankings, dto.TeamRanking{Team: r.Team, Games: r.Games})
	}

	return &dto.GameCountsResponse{
		GameCounts: counts.GameCounts,
		TotalGames: counts.TotalGames,
		DateRange: dto.DateRange{
			Start: rng.StartString(),
			End:   rng.EndString(),
		},
		Rankings: rankings,
	}, nil
}

// parseTeamFilter returns nil when no filter was given.
func parseTeamFilter(raw string) (map[string]bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	filter := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		team := strings.TrimSpace(part)
		if team == "" {
			continue
		}
		if !nba.IsCanonical(team) {
			return nil, serverutils.BadRequest("unknown team: " + team).OnField("teams")
		}
		filter[team] = true
	}
	return filter, nil
}
