package service

import (
	"context"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/pkg/directory"
)

// PlayerDirectory is the part of directory.Directory used for search.
type PlayerDirectory interface {
	Snapshot(ctx context.Context) (*directory.Snapshot, error)
}

type IPlayerService interface {
	Search(ctx context.Context, query string) ([]dto.PlayerResponse, error)
}

type playerService struct {
	directory PlayerDirectory
	logger    logger.ILogger
}

func NewPlayerService(dir PlayerDirectory, logger logger.ILogger) IPlayerService {
	return &playerService{
		directory: dir,
		logger:    logger,
	}
}

// Search never touches the directory for queries under two characters.
func (s *playerService) Search(ctx context.Context, query string) ([]dto.PlayerResponse, error) {
	result := make([]dto.PlayerResponse, 0)
	if directory.QueryTooShort(query) {
		return result, nil
	}

	snap, err := s.directory.Snapshot(ctx)
	if err != nil {
		s.logger.Error("PLAYERS", "Player directory unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.Internal(msgSearchPlayers, err)
	}

	for _, p := range snap.Search(query, directory.SearchLimit) {
		result = append(result, dto.PlayerResponse{Name: p.Name, Team: p.Team})
	}
	return result, nil
}
