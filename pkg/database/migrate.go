package database

import (
	"fantasy-hoops-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the application, in creation order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Game{},
		&model.RosterPlayer{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
