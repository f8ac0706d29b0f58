package services

import (
	"context"
	"encoding/json"
	"fmt"

	"backend/models"
	"backend/utils"
)

// MealBuilder accumulates one meal's selection before it is committed to
// a daily log. Pure in-memory state; persistence of drafts is the
// BuilderService's concern.
type MealBuilder struct {
	foods     *FoodService
	selection models.Selection
}

func NewMealBuilder(foods *FoodService) *MealBuilder {
	return &MealBuilder{foods: foods, selection: make(models.Selection)}
}

// AddIngredient records one portion of an ingredient. For single-select
// categories the whole category is replaced by the new pick; selections
// made under other groups of that category are discarded.
func (b *MealBuilder) AddIngredient(categoryID, groupID, ingredient string) {
	cat := b.selection[categoryID]

	if !b.foods.AllowMultiple(categoryID) {
		b.selection[categoryID] = map[string]models.SelectionDetail{
			groupID: {Count: 1, Ingredients: []string{ingredient}},
		}
		return
	}

	if cat == nil {
		cat = make(map[string]models.SelectionDetail)
		b.selection[categoryID] = cat
	}

	detail := cat[groupID]
	detail.Count++
	detail.Ingredients = append(detail.Ingredients, ingredient)
	cat[groupID] = detail
}

// RemoveIngredient drops the first occurrence of ingredient from the
// group, or the whole group entry when ingredient is empty. A group left
// with no ingredients is deleted outright; no zero-count entry remains.
func (b *MealBuilder) RemoveIngredient(categoryID, groupID, ingredient string) {
	cat := b.selection[categoryID]
	if cat == nil {
		return
	}

	if ingredient == "" {
		delete(cat, groupID)
		return
	}

	detail, ok := cat[groupID]
	if !ok {
		return
	}

	for i, name := range detail.Ingredients {
		if name == ingredient {
			detail.Ingredients = append(detail.Ingredients[:i], detail.Ingredients[i+1:]...)
			detail.Count = len(detail.Ingredients)
			break
		}
	}

	if len(detail.Ingredients) == 0 {
		delete(cat, groupID)
		return
	}
	cat[groupID] = detail
}

// Finalize snapshots the current selection into a new Meal. Builder
// state is left intact; callers clear it once persistence succeeded.
func (b *MealBuilder) Finalize(name string) models.Meal {
	return models.Meal{
		ID:        models.NewMealID(),
		Name:      name,
		Timestamp: utils.NowMillis(),
		Selection: b.selection.Clone(),
	}
}

func (b *MealBuilder) IsEmpty() bool {
	return b.selection.IsEmpty()
}

func (b *MealBuilder) Clear() {
	b.selection = make(models.Selection)
}

// Selection exposes the working state for progress previews.
func (b *MealBuilder) Selection() models.Selection {
	return b.selection
}

// BuilderService persists one meal draft per user in the local store, so
// a meal in progress survives reloads and app restarts.
type BuilderService struct {
	store LocalStore
	foods *FoodService
}

func NewBuilderService(store LocalStore, foods *FoodService) *BuilderService {
	return &BuilderService{store: store, foods: foods}
}

func draftKey(userID uint) string {
	return fmt.Sprintf("draft_selection:%d", userID)
}

// Load restores the user's draft, or an empty builder if none exists.
func (s *BuilderService) Load(ctx context.Context, userID uint) (*MealBuilder, error) {
	b := NewMealBuilder(s.foods)

	raw, err := s.store.Get(ctx, draftKey(userID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return b, nil
	}

	var sel models.Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		// an unreadable draft is discarded, not an error the user can act on
		return b, nil
	}
	b.selection = sel
	return b, nil
}

func (s *BuilderService) Save(ctx context.Context, userID uint, b *MealBuilder) error {
	raw, err := json.Marshal(b.selection)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, draftKey(userID), string(raw))
}

func (s *BuilderService) Reset(ctx context.Context, userID uint) error {
	return s.store.Delete(ctx, draftKey(userID))
}
