package service

import (
	"context"
	"sync"
	"testing"

	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/pkg/database"
	"fantasy-hoops-be/pkg/directory"
	"fantasy-hoops-be/pkg/events"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(database.GormConfig{Driver: database.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	db := newTestDB(t)
	return unitofwork.NewRepositoryFactory(db), db
}

var testLogger = logger.NewNopLogger()

// requireAppError asserts err is an AppError with the given status and
// returns it for further checks.
func requireAppError(t *testing.T, err error, code int) *serverutils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fakeDirectory struct {
	players map[string]directory.Player
	err     error
}

func newFakeDirectory(players ...directory.Player) *fakeDirectory {
	d := &fakeDirectory{players: map[string]directory.Player{}}
	for _, p := range players {
		d.players[directory.Key(p.Name)] = p
	}
	return d
}

func (d *fakeDirectory) Lookup(ctx context.Context, name string) (directory.Player, bool, error) {
	if d.err != nil {
		return directory.Player{}, false, d.err
	}
	p, ok := d.players[directory.Key(name)]
	return p, ok, nil
}
