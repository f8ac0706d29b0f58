package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `json:"display_name"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	Targets     TargetMap      `gorm:"type:jsonb" json:"targets"`
	Settings    datatypes.JSON `json:"settings,omitempty"` // free-form UI settings (theme etc.)
	Onboarded   bool           `json:"onboarded"`
	Disabled    bool           `json:"-"`
}

// DefaultTargets seeds a fresh profile's daily portion targets. A value
// of 0 means unlimited. The vegetable target is stored under both the
// "veggies" alias and the "color" category id the dashboards key on.
var DefaultTargets = TargetMap{
	"protein": 4,
	"carbs":   4,
	"fats":    2,
	"veggies": 2,
	"color":   2,
	"fruit":   0,
	"magic":   0,
}
