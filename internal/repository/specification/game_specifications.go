package specification

import (
	"time"

	"gorm.io/gorm"
)

// GameDateBetween is inclusive on both ends.
type GameDateBetween struct {
	Start time.Time
	End   time.Time
}

func (s GameDateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("game_date >= ? AND game_date <= ?", s.Start, s.End)
}

type BySeason struct {
	Season string
}

func (s BySeason) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("season = ?", s.Season)
}
