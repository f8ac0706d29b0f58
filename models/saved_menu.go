package models

import (
	"gorm.io/gorm"
)

// SavedMenu is a reusable meal-plan template, independent of any calendar
// day. MenuID is caller-supplied, typically a millisecond timestamp
// string; writing an existing id replaces the stored menu.
type SavedMenu struct {
	gorm.Model  `json:"-"`
	UserID      uint      `gorm:"index:idx_menus_user_menu,unique;not null" json:"-"`
	MenuID      string    `gorm:"index:idx_menus_user_menu,unique;size:64;not null" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Goals       TargetMap `gorm:"type:jsonb" json:"goals"`
	Meals       MealList  `gorm:"type:jsonb" json:"meals"`
	CreatedAtMS int64     `gorm:"column:menu_created_at" json:"createdAt"` // unix millis
	MigratedAt  int64     `json:"migrated_at,omitempty"`
}
