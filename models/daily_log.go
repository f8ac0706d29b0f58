package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// TargetMap maps category id to daily portion target. 0 means unlimited.
// Stored as a JSON document column.
type TargetMap map[string]int

func (t TargetMap) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TargetMap) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into TargetMap", src)
	}
}

// Clone returns an independent copy.
func (t TargetMap) Clone() TargetMap {
	if t == nil {
		return nil
	}
	out := make(TargetMap, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// MealList is the ordered meal list of a log or menu, stored as JSON.
type MealList []Meal

func (l MealList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]Meal{})
	}
	return json.Marshal(l)
}

func (l *MealList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into MealList", src)
	}
}

// DailyLog is the authoritative record of one calendar day for one user.
// Created lazily on the first meal or goal write; once created the row is
// never deleted, even when every meal has been removed.
type DailyLog struct {
	gorm.Model `json:"-"`
	UserID     uint      `gorm:"index:idx_logs_user_date,unique;not null" json:"-"`
	Date       string    `gorm:"index:idx_logs_user_date,unique;size:10;not null" json:"date"` // YYYY-MM-DD
	Goals      TargetMap `gorm:"type:jsonb" json:"goals"`
	Meals      MealList  `gorm:"type:jsonb" json:"meals"`
	MigratedAt int64     `json:"migrated_at,omitempty"`
}
