// Package directory holds the point-in-time snapshot of active NBA players
// used to validate roster additions and to serve autocomplete.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultTTL matches the post trade-deadline refresh cadence.
const DefaultTTL = 30 * 24 * time.Hour

var ErrUnavailable = errors.New("player directory unavailable")

type Player struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// Fetcher loads the active player list from the upstream source.
type Fetcher interface {
	FetchActivePlayers(ctx context.Context) ([]Player, error)
}

// Store persists a fetched list across process restarts. Load returns
// (nil, zero, nil) when nothing usable is stored.
type Store interface {
	Load(ctx context.Context) ([]Player, time.Time, error)
	Save(ctx context.Context, players []Player, fetchedAt time.Time, ttl time.Duration) error
}

type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

// Snapshot is immutable once published.
type Snapshot struct {
	players   []Player
	byKey     map[string]Player
	FetchedAt time.Time
	ExpiresAt time.Time
}

func newSnapshot(players []Player, fetchedAt time.Time, ttl time.Duration) *Snapshot {
	sorted := make([]Player, 0, len(players))
	for _, p := range players {
		sorted = append(sorted, Player{Name: norm.NFC.String(p.Name), Team: p.Team})
	}
	col := collate.New(language.English)
	sortPlayers(sorted, col)

	byKey := make(map[string]Player, len(sorted))
	for _, p := range sorted {
		byKey[Key(p.Name)] = p
	}
	return &Snapshot{
		players:   sorted,
		byKey:     byKey,
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}

// Key is the comparison form of a player name: NFC, lower-cased.
func Key(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

func (s *Snapshot) Len() int { return len(s.players) }

// Players returns a copy; the snapshot itself is never handed out mutable.
func (s *Snapshot) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
}

// Lookup performs the exact, normalized, case-insensitive name match.
func (s *Snapshot) Lookup(name string) (Player, bool) {
	p, ok := s.byKey[Key(name)]
	return p, ok
}

// Directory serves snapshots to concurrent readers. A refresh builds a new
// snapshot and swaps the pointer; readers never see a partial update.
type Directory struct {
	fetcher Fetcher
	store   Store
	logger  Logger
	ttl     time.Duration
	now     func() time.Time

	current atomic.Pointer[Snapshot]
	group   singleflight.Group
}

type Option func(*Directory)

func WithStore(store Store) Option {
	return func(d *Directory) { d.store = store }
}

func WithTTL(ttl time.Duration) Option {
	return func(d *Directory) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

func WithLogger(logger Logger) Option {
	return func(d *Directory) { d.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

func New(fetcher Fetcher, opts ...Option) *Directory {
	d := &Directory{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot returns the current snapshot, refreshing it first when it is
// missing or expired. Concurrent callers share a single refresh.
func (d *Directory) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s := d.current.Load(); s != nil && d.now().Before(s.ExpiresAt) {
		return s, nil
	}

	ch := d.group.DoChan("refresh", func() (interface{}, error) {
		// The refresh outlives any single caller's cancellation.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return d.refresh(rctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// Lookup resolves a name against the current snapshot. An error means the
// directory could not be consulted at all.
func (d *Directory) Lookup(ctx context.Context, name string) (Player, bool, error) {
	s, err := d.Snapshot(ctx)
	if err != nil {
		return Player{}, false, err
	}
	p, ok := s.Lookup(name)
	return p, ok, nil
}

func (d *Directory) refresh(ctx context.Context) (*Snapshot, error) {
	if s := d.current.Load(); s != nil && d.now().Before(s.ExpiresAt) {
		return s, nil
	}

	if d.store != nil {
		players, fetchedAt, err := d.store.Load(ctx)
		switch {
		case err != nil:
			d.warn("stored snapshot unreadable", map[string]interface{}{"error": err.Error()})
		case len(players) > 0 && d.now().Before(fetchedAt.Add(d.ttl)):
			s := newSnapshot(players, fetchedAt, d.ttl)
			d.current.Store(s)
			d.info("snapshot restored from store", map[string]interface{}{"players": s.Len()})
			return s, nil
		}
	}

	players, err := d.fetcher.FetchActivePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	fetchedAt := d.now()
	s := newSnapshot(players, fetchedAt, d.ttl)
	d.current.Store(s)
	d.info("snapshot refreshed", map[string]interface{}{"players": s.Len()})

	if d.store != nil {
		if err := d.store.Save(ctx, s.players, fetchedAt, d.ttl); err != nil {
			d.warn("failed to persist snapshot", map[string]interface{}{"error": err.Error()})
		}
	}
	return s, nil
}

func (d *Directory) info(msg string, details map[string]interface{}) {
	if d.logger != nil {
		d.logger.Info("directory", msg, details)
	}
}

func (d *Directory) warn(msg string, details map[string]interface{}) {
	if d.logger != nil {
		d.logger.Warn("directory", msg, details)
	}
}
