package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// SelectionDetail is one group's worth of a meal: how many portions and
// which ingredients. Count always equals len(Ingredients) for entries
// written by this backend; legacy records stored a bare portion count
// with no ingredient list, which UnmarshalJSON still accepts.
type SelectionDetail struct {
	Count       int      `json:"count"`
	Ingredients []string `json:"ingredients"`
}

func (d *SelectionDetail) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		// legacy shape: the entry is just a number
		var n int
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		d.Count = n
		d.Ingredients = nil
		return nil
	}

	type plain SelectionDetail
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = SelectionDetail(p)
	return nil
}

// Selection maps category id to group id to detail. A group with zero
// portions is removed from the map, never stored as a zero entry.
type Selection map[string]map[string]SelectionDetail

// Clone returns a deep copy: mutating the copy never touches the source.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	out := make(Selection, len(s))
	for catID, groups := range s {
		cat := make(map[string]SelectionDetail, len(groups))
		for groupID, detail := range groups {
			ingredients := make([]string, len(detail.Ingredients))
			copy(ingredients, detail.Ingredients)
			cat[groupID] = SelectionDetail{Count: detail.Count, Ingredients: ingredients}
		}
		out[catID] = cat
	}
	return out
}

// IsEmpty reports whether no group in any category holds a portion.
func (s Selection) IsEmpty() bool {
	for _, groups := range s {
		if len(groups) > 0 {
			return false
		}
	}
	return true
}

// Meal is one recorded eating event.
type Meal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp int64     `json:"timestamp"`
	Selection Selection `json:"selection"`
}

// Clone copies the meal under a fresh id. Meals copied between a daily
// log and a saved menu are value copies with single ownership per
// container; the selections must not alias each other.
func (m Meal) Clone() Meal {
	return Meal{
		ID:        NewMealID(),
		Name:      m.Name,
		Timestamp: m.Timestamp,
		Selection: m.Selection.Clone(),
	}
}

// NewMealID returns an opaque unique meal id.
func NewMealID() string {
	return uuid.NewString()
}
