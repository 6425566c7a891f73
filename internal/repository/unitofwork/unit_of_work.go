package unitofwork

import (
	"context"

	"fantasy-hoops-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	GameRepository() contract.GameRepository
	RosterPlayerRepository() contract.RosterPlayerRepository
}
