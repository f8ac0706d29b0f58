package services

import "backend/models"

// Pure portion arithmetic shared by the day dashboard, the sticky
// progress bar during meal building, and saved-menu previews. Takes
// meals and goals as plain inputs, touches no store state.

// CountForCategory sums consumed portions for one category across a
// meal list. Legacy group entries carrying only a bare count are summed
// the same as structured ones.
func CountForCategory(meals []models.Meal, categoryID string) int {
	total := 0
	for _, meal := range meals {
		for _, detail := range meal.Selection[categoryID] {
			total += detail.Count
		}
	}
	return total
}

// Remaining is target minus consumed. A target of 0 means unlimited;
// callers suppress remaining/over displays for it regardless of sign.
func Remaining(consumed, target int) int {
	return target - consumed
}

// IsOverTarget reports whether consumption exceeded a finite target.
// The vegetable category is exempt: going over on vegetables is shown as
// a success state, never a warning.
func IsOverTarget(consumed, target int, categoryID string) bool {
	if target == 0 {
		return false
	}
	if categoryID == models.CategoryVegetables {
		return false
	}
	return consumed > target
}

// CategoryProgress is one dashboard row.
type CategoryProgress struct {
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Consumed   int    `json:"consumed"`
	Target     int    `json:"target"`
	Remaining  int    `json:"remaining"`
	Unlimited  bool   `json:"unlimited"`
	Over       bool   `json:"over"`
}

// Summarize rolls a meal list up against a goal set, one row per
// taxonomy category, in taxonomy order.
func Summarize(meals []models.Meal, goals models.TargetMap) []CategoryProgress {
	out := make([]CategoryProgress, 0, len(models.FoodData))
	for _, cat := range models.FoodData {
		consumed := CountForCategory(meals, cat.ID)
		target := goals[cat.ID]
		out = append(out, CategoryProgress{
			CategoryID: cat.ID,
			Title:      cat.Title,
			Consumed:   consumed,
			Target:     target,
			Remaining:  Remaining(consumed, target),
			Unlimited:  target == 0,
			Over:       IsOverTarget(consumed, target, cat.ID),
		})
	}
	return out
}
