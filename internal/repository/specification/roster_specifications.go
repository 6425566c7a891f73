package specification

import (
	"fantasy-hoops-be/pkg/directory"

	"gorm.io/gorm"
)

// ByPlayerName matches case-insensitively, the same way the directory
// compares names.
type ByPlayerName struct {
	Name string
}

func (s ByPlayerName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("player_key = ?", directory.Key(s.Name))
}
